package midi

// MIDI message types
const (
	NoteOn        uint8 = 0x90
	NoteOff       uint8 = 0x80
	ProgramChange uint8 = 0xC0
	Lyric         uint8 = 0x05 // meta event, only meaningful for file output
)

// DrumChannel is skipped when assigning melodic instruments.
const DrumChannel uint8 = 9

// Event represents a MIDI event on the playback timeline
type Event struct {
	Tick     int64
	Type     uint8 // NoteOn, NoteOff, ProgramChange, Lyric
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8
	Program  uint8
	Text     string // Lyric only
}

// Output receives timeline events in dispatch order.
type Output interface {
	Send(e Event) error
	Close() error
}

// Discard is an Output that drops every event.
var Discard Output = discard{}

type discard struct{}

func (discard) Send(Event) error { return nil }
func (discard) Close() error     { return nil }
