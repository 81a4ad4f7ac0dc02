package midi

import (
	"fmt"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// FileOutput collects events into a single-track Standard MIDI File.
// Ticks must arrive in non-decreasing order, as the timeline sends them.
type FileOutput struct {
	ppq   uint16
	track smf.Track
	last  int64
}

// NewFileOutput starts a track named title. bpm counts ppq-tick beats.
func NewFileOutput(ppq int, bpm float64, title string, meterNum, meterDen uint8) *FileOutput {
	f := &FileOutput{ppq: uint16(ppq)}
	if title != "" {
		f.track.Add(0, smf.MetaTrackSequenceName(title))
	}
	if meterNum > 0 && meterDen > 0 {
		f.track.Add(0, smf.MetaMeter(meterNum, meterDen))
	}
	f.track.Add(0, smf.MetaTempo(bpm))
	return f
}

// Send appends e at its tick.
func (f *FileOutput) Send(e Event) error {
	if e.Tick < f.last {
		return fmt.Errorf("event at tick %d after tick %d", e.Tick, f.last)
	}
	delta := uint32(e.Tick - f.last)

	if e.Type == Lyric {
		f.track.Add(delta, smf.MetaLyric(e.Text))
	} else {
		msg := Message(e)
		if msg == nil {
			return fmt.Errorf("unsupported event type 0x%X", e.Type)
		}
		f.track.Add(delta, msg)
	}
	f.last = e.Tick
	return nil
}

// Close is a no-op; use WriteTo or WriteFile to get the data out.
func (f *FileOutput) Close() error {
	return nil
}

func (f *FileOutput) build() (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(f.ppq)
	tr := make(smf.Track, len(f.track))
	copy(tr, f.track)
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("add track: %w", err)
	}
	return s, nil
}

// WriteTo writes the file as SMF format 0.
func (f *FileOutput) WriteTo(w io.Writer) (int64, error) {
	s, err := f.build()
	if err != nil {
		return 0, err
	}
	return s.WriteTo(w)
}

// WriteFile writes the file to path.
func (f *FileOutput) WriteFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
