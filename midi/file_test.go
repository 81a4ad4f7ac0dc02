package midi

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type heard struct {
	Tick  int64
	Kind  string
	Key   uint8
	Lyric string
}

func readBack(t *testing.T, data []byte) (*smf.SMF, []heard) {
	t.Helper()
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(s.Tracks) != 1 {
		t.Fatalf("tracks = %d, want 1", len(s.Tracks))
	}

	var out []heard
	var tick int64
	for _, ev := range s.Tracks[0] {
		tick += int64(ev.Delta)
		var ch, key, vel uint8
		var text string
		msg := gomidi.Message(ev.Message)
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			out = append(out, heard{Tick: tick, Kind: "on", Key: key})
		case msg.GetNoteEnd(&ch, &key):
			out = append(out, heard{Tick: tick, Kind: "off", Key: key})
		case ev.Message.GetMetaLyric(&text):
			out = append(out, heard{Tick: tick, Kind: "lyric", Lyric: text})
		}
	}
	return s, out
}

func TestFileOutputRoundTrip(t *testing.T) {
	f := NewFileOutput(96, 200, "hi", 4, 4)
	events := []Event{
		{Tick: 0, Type: ProgramChange, Channel: 0, Program: 73},
		{Tick: 0, Type: Lyric, Text: "la"},
		{Tick: 0, Type: NoteOn, Note: 60, Velocity: 100},
		{Tick: 96, Type: NoteOff, Note: 60},
		{Tick: 96, Type: NoteOn, Note: 62, Velocity: 100},
		{Tick: 240, Type: NoteOff, Note: 62},
	}
	for _, e := range events {
		if err := f.Send(e); err != nil {
			t.Fatalf("Send(%+v): %v", e, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	s, got := readBack(t, buf.Bytes())

	if tf, ok := s.TimeFormat.(smf.MetricTicks); !ok || tf.Resolution() != 96 {
		t.Errorf("time format = %v, want 96 ticks per beat", s.TimeFormat)
	}
	want := []heard{
		{Tick: 0, Kind: "lyric", Lyric: "la"},
		{Tick: 0, Kind: "on", Key: 60},
		{Tick: 96, Kind: "off", Key: 60},
		{Tick: 96, Kind: "on", Key: 62},
		{Tick: 240, Kind: "off", Key: 62},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestFileOutputRejectsBackwardsTicks(t *testing.T) {
	f := NewFileOutput(96, 120, "", 0, 0)
	if err := f.Send(Event{Tick: 10, Type: NoteOn, Note: 60, Velocity: 1}); err != nil {
		t.Fatal(err)
	}
	if err := f.Send(Event{Tick: 5, Type: NoteOff, Note: 60}); err == nil {
		t.Error("expected error for event before the previous tick")
	}
}

func TestFileOutputWriteFile(t *testing.T) {
	f := NewFileOutput(480, 120, "file", 3, 4)
	f.Send(Event{Tick: 0, Type: NoteOn, Note: 64, Velocity: 90})
	f.Send(Event{Tick: 480, Type: NoteOff, Note: 64})

	path := filepath.Join(t.TempDir(), "out.mid")
	if err := f.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	s, err := smf.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var bpm float64
	found := false
	for _, ev := range s.Tracks[0] {
		if ev.Message.GetMetaTempo(&bpm) {
			found = true
		}
	}
	if !found || bpm < 119.9 || bpm > 120.1 {
		t.Errorf("tempo = %v (found %v), want 120", bpm, found)
	}
}

func TestMessage(t *testing.T) {
	if Message(Event{Type: Lyric, Text: "x"}) != nil {
		t.Error("lyric events have no channel message")
	}
	var ch, prog uint8
	if !Message(Event{Type: ProgramChange, Channel: 2, Program: 40}).GetProgramChange(&ch, &prog) || ch != 2 || prog != 40 {
		t.Errorf("program change = %d %d", ch, prog)
	}
}
