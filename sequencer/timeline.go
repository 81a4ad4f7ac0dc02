package sequencer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"go-abcplay/debug"
	"go-abcplay/midi"
	"go-abcplay/music"
)

// DefaultPPQ is the number of ticks per beat.
const DefaultPPQ = 96

// DefaultVelocity is used for every note on.
const DefaultVelocity = 100

// ErrPlaying is returned when Play is called on a timeline that is running.
var ErrPlaying = errors.New("timeline is already playing")

// Timeline is a Sink that quantizes beats to a tick grid and sends the
// resulting MIDI events to an Output. Set PPQ, Velocity and Clock before
// Play.
type Timeline struct {
	PPQ      int
	Velocity uint8
	Clock    Clock

	out midi.Output
	bpm float64

	mu       sync.Mutex
	entries  []entry
	seq      int
	channels map[music.Instrument]uint8
	programs []music.Instrument // in channel order
	tick     int64              // tick being dispatched
	playing  bool
}

type entry struct {
	beat  float64
	start float64 // note-offs: the matching note-on beat
	seq   int
	evt   midi.Event
	fn    func(actual float64)
}

// rank puts note-offs ahead of anything else on the same tick so a
// repeated pitch is released before it sounds again.
func (e *entry) rank() int {
	if e.fn == nil && e.evt.Type == midi.NoteOff {
		return 0
	}
	return 1
}

// NewTimeline plays at bpm beats per minute. A non-positive bpm falls back
// to the default tempo.
func NewTimeline(out midi.Output, bpm float64) *Timeline {
	if bpm <= 0 {
		bpm = float64(music.DefaultTempoBPM)
	}
	return &Timeline{
		PPQ:      DefaultPPQ,
		Velocity: DefaultVelocity,
		Clock:    WallClock{},
		out:      out,
		bpm:      bpm,
		channels: make(map[music.Instrument]uint8),
	}
}

// BPM returns the playback rate.
func (t *Timeline) BPM() float64 {
	return t.bpm
}

// ScheduleNote queues a note on and its note off. Zero-length notes are
// dropped.
func (t *Timeline) ScheduleNote(n NoteEvent) {
	if n.Duration <= 0 {
		debug.Log("sched", "dropped zero-length note", "pitch", n.Pitch.String(), "beat", n.Beat)
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := t.channel(n.Instrument)
	key := n.Pitch.MIDI()
	t.add(entry{beat: n.Beat, evt: midi.Event{Type: midi.NoteOn, Channel: ch, Note: key}})
	t.add(entry{beat: n.Beat + n.Duration, start: n.Beat, evt: midi.Event{Type: midi.NoteOff, Channel: ch, Note: key}})
}

// ScheduleCallback queues fn at beat. fn receives the beat of the tick it
// was rounded to.
func (t *Timeline) ScheduleCallback(beat float64, fn func(actual float64)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.add(entry{beat: beat, fn: fn})
}

func (t *Timeline) add(e entry) {
	t.seq++
	e.seq = t.seq
	t.entries = append(t.entries, e)
}

// channel assigns MIDI channels to instruments in order of first use,
// skipping the drum channel. Past 15 instruments channels are shared.
func (t *Timeline) channel(inst music.Instrument) uint8 {
	if ch, ok := t.channels[inst]; ok {
		return ch
	}
	ch := uint8(len(t.programs) % 15)
	if ch >= midi.DrumChannel {
		ch++
	}
	t.channels[inst] = ch
	t.programs = append(t.programs, inst)
	return ch
}

// Position returns the tick currently being dispatched. Callbacks use it to
// stamp events of their own.
func (t *Timeline) Position() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tick
}

// Ticks converts a beat to the tick grid.
func (t *Timeline) Ticks(beat float64) int64 {
	return int64(math.Round(beat * float64(t.PPQ)))
}

// Beat converts a tick back to beats.
func (t *Timeline) Beat(tick int64) float64 {
	return float64(tick) / float64(t.PPQ)
}

// TickToDuration returns the time from the start of playback to tick.
func (t *Timeline) TickToDuration(tick int64) time.Duration {
	return time.Duration(float64(tick) * float64(time.Minute) / (t.bpm * float64(t.PPQ)))
}

type dispatch struct {
	tick int64
	*entry
}

// queue returns the entries sorted by (tick, rank, seq).
func (t *Timeline) queue() []dispatch {
	q := make([]dispatch, len(t.entries))
	for i := range t.entries {
		e := &t.entries[i]
		tick := t.Ticks(e.beat)
		if e.fn == nil && e.evt.Type == midi.NoteOff {
			tick = max(tick, t.Ticks(e.start)+1)
		}
		q[i] = dispatch{tick: tick, entry: e}
	}
	slices.SortFunc(q, func(a, b dispatch) int {
		if c := cmp.Compare(a.tick, b.tick); c != 0 {
			return c
		}
		if c := cmp.Compare(a.rank(), b.rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return q
}

// Play dispatches every scheduled event, pacing them with Clock. It returns
// when the last event is sent, or with ctx.Err() after silencing any
// sounding notes.
func (t *Timeline) Play(ctx context.Context) error {
	t.mu.Lock()
	if t.playing {
		t.mu.Unlock()
		return ErrPlaying
	}
	t.playing = true
	q := t.queue()
	programs := make([]midi.Event, 0, len(t.programs))
	for _, inst := range t.programs {
		programs = append(programs, midi.Event{Type: midi.ProgramChange, Channel: t.channels[inst], Program: uint8(inst)})
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.playing = false
		t.mu.Unlock()
	}()

	for _, evt := range programs {
		if err := t.out.Send(evt); err != nil {
			return fmt.Errorf("program change: %w", err)
		}
	}

	debug.Log("dispatch", "play", "events", len(q), "bpm", t.bpm, "ppq", t.PPQ)

	sounding := make(map[[2]uint8]int)
	t0 := t.Clock.Now()
	for _, d := range q {
		if err := t.Clock.SleepUntil(ctx, t0.Add(t.TickToDuration(d.tick))); err != nil {
			if serr := t.silence(sounding, d.tick); serr != nil {
				return errors.Join(err, serr)
			}
			return err
		}

		t.mu.Lock()
		t.tick = d.tick
		t.mu.Unlock()

		if d.fn != nil {
			d.fn(t.Beat(d.tick))
			continue
		}

		evt := d.evt
		evt.Tick = d.tick
		k := [2]uint8{evt.Channel, evt.Note}
		switch evt.Type {
		case midi.NoteOn:
			evt.Velocity = t.Velocity
			sounding[k]++
		case midi.NoteOff:
			sounding[k]--
		}
		if err := t.out.Send(evt); err != nil {
			return errors.Join(fmt.Errorf("send tick %d: %w", d.tick, err), t.silence(sounding, d.tick))
		}
		debug.LogEvery(32, "dispatch", "sent", "tick", d.tick, "type", evt.Type, "ch", evt.Channel, "note", evt.Note)
	}
	return nil
}

// silence releases notes left sounding by an interrupted Play.
func (t *Timeline) silence(sounding map[[2]uint8]int, tick int64) error {
	var errs []error
	for k, n := range sounding {
		for ; n > 0; n-- {
			if err := t.out.Send(midi.Event{Tick: tick, Type: midi.NoteOff, Channel: k[0], Note: k[1]}); err != nil {
				debug.Log("dispatch", "release failed", "ch", k[0], "note", k[1], "err", err)
				errs = append(errs, fmt.Errorf("release ch %d note %d: %w", k[0], k[1], err))
			}
		}
	}
	return errors.Join(errs...)
}
