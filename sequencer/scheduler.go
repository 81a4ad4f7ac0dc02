// Package sequencer turns a Music tree into timed note events and
// callbacks, and plays them through a Sink.
package sequencer

import (
	"context"

	"go-abcplay/debug"
	"go-abcplay/lyric"
	"go-abcplay/music"
)

// NoteEvent is one sounding note. Beat and Duration are in default note
// lengths.
type NoteEvent struct {
	Instrument music.Instrument
	Pitch      music.Pitch
	Beat       float64
	Duration   float64
}

// Sink executes scheduled notes and callbacks. Implementations must fire
// them in beat order; callbacks run on whatever goroutine Play uses. A sink
// may round beats to its own grid and passes each callback the beat it
// actually fired at.
type Sink interface {
	ScheduleNote(n NoteEvent)
	ScheduleCallback(beat float64, fn func(actual float64))
	Play(ctx context.Context) error
}

// Scheduler walks a Music tree onto a Sink.
type Scheduler struct {
	music music.Music
	sink  Sink
}

// New returns a scheduler for m that writes to sink.
func New(m music.Music, sink Sink) *Scheduler {
	return &Scheduler{music: m, sink: sink}
}

// Duration is the length of the whole tree in beats.
func (s *Scheduler) Duration() float64 {
	return s.music.Duration()
}

// AddCallback registers fn at an arbitrary beat.
func (s *Scheduler) AddCallback(beat float64, fn func(actual float64)) {
	s.sink.ScheduleCallback(beat, fn)
}

// Schedule places every note of the tree starting at atBeat. onLyric, if
// not nil, is called at the start of every note carrying a lyric with the
// beat the sink fired it at.
func (s *Scheduler) Schedule(atBeat float64, onLyric func(l lyric.Lyric, actual float64)) {
	count := 0
	music.Walk(s.music, atBeat, func(m music.Music, at float64) {
		n, ok := m.(music.Note)
		if !ok {
			return
		}
		s.sink.ScheduleNote(NoteEvent{
			Instrument: n.Instrument,
			Pitch:      n.Pitch,
			Beat:       at,
			Duration:   n.Length,
		})
		count++
		if n.HasLyric() && onLyric != nil {
			l := n.Lyric
			s.sink.ScheduleCallback(at, func(actual float64) { onLyric(l, actual) })
		}
	})
	debug.Log("sched", "scheduled", "notes", count, "from", atBeat, "beats", s.Duration())
}
