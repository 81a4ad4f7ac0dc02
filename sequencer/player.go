package sequencer

import (
	"context"
	"errors"
	"sync"

	"go-abcplay/lyric"
	"go-abcplay/music"
)

// ErrNoSong is returned by Play before any song is loaded.
var ErrNoSong = errors.New("no song loaded")

// Player holds the current song and announces playback through Signals.
type Player struct {
	Signals *Broadcaster

	mu   sync.Mutex
	song *music.Song
}

// NewPlayer returns a player with an empty listener registry.
func NewPlayer() *Player {
	return &Player{Signals: &Broadcaster{}}
}

// Load replaces the current song and broadcasts SongChange.
func (p *Player) Load(song *music.Song) {
	p.mu.Lock()
	p.song = song
	p.mu.Unlock()
	p.Signals.Broadcast(Signal{Kind: SongChange, Song: song})
}

// Song returns the loaded song, or nil.
func (p *Player) Song() *music.Song {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.song
}

// Schedule puts the loaded song on sink: SongStart at beat 0, a
// LyricChange for every lyric, and SongEnd once the music is over.
func (p *Player) Schedule(sink Sink) (*Scheduler, error) {
	song := p.Song()
	if song == nil {
		return nil, ErrNoSong
	}

	s := New(song.Music(), sink)
	s.AddCallback(0, func(beat float64) {
		p.Signals.Broadcast(Signal{Kind: SongStart, Song: song, Beat: beat})
	})
	s.Schedule(0, func(l lyric.Lyric, beat float64) {
		p.Signals.Broadcast(Signal{Kind: LyricChange, Song: song, Lyric: l, Beat: beat})
	})
	s.AddCallback(s.Duration(), func(beat float64) {
		p.Signals.Broadcast(Signal{Kind: SongEnd, Song: song, Beat: beat})
	})
	return s, nil
}

// Play schedules the loaded song on sink and runs it.
func (p *Player) Play(ctx context.Context, sink Sink) error {
	if _, err := p.Schedule(sink); err != nil {
		return err
	}
	return sink.Play(ctx)
}
