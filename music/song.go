package music

import (
	"fmt"
	"strings"
)

// Fraction is a note length or meter such as 3/8.
type Fraction struct {
	Num, Den int
}

// Value returns the fraction as a float.
func (f Fraction) Value() float64 {
	if f.Den == 0 {
		return 0
	}
	return float64(f.Num) / float64(f.Den)
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Meter is a time signature.
type Meter struct {
	Fraction
	Symbol string // "C" or "C|" when written symbolically
}

func (m Meter) String() string {
	if m.Symbol != "" {
		return m.Symbol
	}
	return m.Fraction.String()
}

// Tempo is the number of Beat-length notes per minute.
type Tempo struct {
	Beat Fraction
	BPM  int
}

func (t Tempo) String() string {
	return fmt.Sprintf("%s=%d", t.Beat, t.BPM)
}

// Header defaults.
var (
	DefaultMeter    = Meter{Fraction: Fraction{4, 4}}
	DefaultTempoBPM = 100
	UnknownComposer = "Unknown"
)

// DefaultLength returns the default note length implied by a meter.
func DefaultLength(m Meter) Fraction {
	if m.Value() < 0.75 {
		return Fraction{1, 16}
	}
	return Fraction{1, 8}
}

// Song is a fully parsed tune. It is built once and not mutated afterwards.
type Song struct {
	Index         int
	Title         string
	Composer      string
	Key           Key
	Meter         Meter
	DefaultLength Fraction
	Tempo         Tempo
	VoiceNames    []string         // declaration order; "" is the unnamed voice
	Voices        map[string]Music // one tree per voice
}

// BeatsPerMinute is the playback rate in default note lengths per minute.
func (s *Song) BeatsPerMinute() float64 {
	dl := s.DefaultLength.Value()
	if dl == 0 {
		return float64(s.Tempo.BPM)
	}
	return float64(s.Tempo.BPM) * s.Tempo.Beat.Value() / dl
}

// Music plays every voice together.
func (s *Song) Music() Music {
	ms := make([]Music, 0, len(s.VoiceNames))
	for _, name := range s.VoiceNames {
		ms = append(ms, s.Voices[name])
	}
	return Chord(ms...)
}

// Duration of the combined voices. Together takes the first voice's length.
func (s *Song) Duration() float64 {
	return s.Music().Duration()
}

func (s *Song) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "X:%d %q by %s", s.Index, s.Title, s.Composer)
	fmt.Fprintf(&sb, " K:%s M:%s L:%s Q:%s", s.Key, s.Meter, s.DefaultLength, s.Tempo)
	fmt.Fprintf(&sb, " voices=%d", len(s.VoiceNames))
	return sb.String()
}
