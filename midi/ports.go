package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-abcplay/debug"
)

// ErrNoPorts is returned when no MIDI output is available.
var ErrNoPorts = errors.New("no MIDI output ports")

// portTimeout bounds driver queries. CoreMIDI can hang.
const portTimeout = 3 * time.Second

// ListPorts returns the names of the available output ports.
func ListPorts() ([]string, error) {
	outs, err := outPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(outs))
	for _, p := range outs {
		names = append(names, p.String())
	}
	return names, nil
}

func outPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(portTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, fmt.Errorf("MIDI driver did not answer within %s", portTimeout)
	}
}

// findPort picks the port whose name matches exactly, then by substring.
// An empty name picks the first port.
func findPort(name string) (drivers.Out, error) {
	outs, err := outPorts()
	if err != nil {
		return nil, err
	}
	if len(outs) == 0 {
		return nil, ErrNoPorts
	}
	if name == "" {
		return outs[0], nil
	}
	for _, p := range outs {
		if p.String() == name {
			return p, nil
		}
	}
	lower := strings.ToLower(name)
	for _, p := range outs {
		if strings.Contains(strings.ToLower(p.String()), lower) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("MIDI output %q not found", name)
}

// PortOutput plays events on a live MIDI output port.
type PortOutput struct {
	name string

	mu     sync.Mutex
	send   func(gomidi.Message) error
	port   drivers.Out
	closed bool
}

// OpenPort opens the named output port (see findPort for matching).
func OpenPort(name string) (*PortOutput, error) {
	port, err := findPort(name)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port.String(), err)
	}
	debug.Log("midi", "opened output", "port", port.String())
	return &PortOutput{name: port.String(), send: send, port: port}, nil
}

// Name returns the port name.
func (o *PortOutput) Name() string {
	return o.name
}

// Send translates e to a wire message. Lyric events are dropped.
func (o *PortOutput) Send(e Event) error {
	msg := Message(e)
	if msg == nil {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return errors.New("send on closed MIDI output")
	}
	return o.send(msg)
}

// Close silences every channel and releases the port.
func (o *PortOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	for ch := uint8(0); ch < 16; ch++ {
		o.send(gomidi.ControlChange(ch, allNotesOff, 0))
	}
	return o.port.Close()
}

const allNotesOff = 123

// Message returns the channel message for e, or nil for meta events.
func Message(e Event) gomidi.Message {
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return gomidi.NoteOff(e.Channel, e.Note)
	case ProgramChange:
		return gomidi.ProgramChange(e.Channel, e.Program)
	}
	return nil
}
