package sequencer

import (
	"slices"
	"sync"

	"go-abcplay/lyric"
	"go-abcplay/music"
)

// SignalKind identifies a song-level broadcast.
type SignalKind int

const (
	SongStart SignalKind = iota
	SongEnd
	SongChange
	LyricChange
)

func (k SignalKind) String() string {
	switch k {
	case SongStart:
		return "start"
	case SongEnd:
		return "end"
	case SongChange:
		return "change"
	case LyricChange:
		return "lyric"
	}
	return "unknown"
}

// Signal is delivered to every registered Listener.
type Signal struct {
	Kind  SignalKind
	Song  *music.Song
	Lyric lyric.Lyric // LyricChange only
	Beat  float64     // beat the sink fired at; 0 for SongChange
}

// Listener receives signals. Notify may be called from any goroutine.
type Listener interface {
	Notify(s Signal)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Signal)

func (f ListenerFunc) Notify(s Signal) {
	f(s)
}

// ChanListener forwards signals to a channel. Notify blocks until the
// signal is received, so the reader must keep draining it.
type ChanListener chan Signal

func (c ChanListener) Notify(s Signal) {
	c <- s
}

// ListenerID identifies a registration for Remove.
type ListenerID uint64

type registration struct {
	id ListenerID
	l  Listener
}

// Broadcaster is a listener registry safe for concurrent use. The zero
// value is ready to use.
type Broadcaster struct {
	mu        sync.Mutex
	next      ListenerID
	listeners []registration // replaced, never modified in place
}

// Add registers l and returns its id.
func (b *Broadcaster) Add(l Listener) ListenerID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.listeners = append(slices.Clip(b.listeners), registration{id: b.next, l: l})
	return b.next
}

// Remove unregisters id. It reports whether id was registered.
func (b *Broadcaster) Remove(id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.listeners, func(r registration) bool { return r.id == id })
	if i < 0 {
		return false
	}
	b.listeners = slices.Delete(slices.Clone(b.listeners), i, i+1)
	return true
}

// Len returns the number of registered listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Broadcast delivers s to the listeners registered when it is called.
// Listeners added or removed during delivery do not affect it.
func (b *Broadcaster) Broadcast(s Signal) {
	b.mu.Lock()
	snapshot := b.listeners
	b.mu.Unlock()

	for _, r := range snapshot {
		r.l.Notify(s)
	}
}
