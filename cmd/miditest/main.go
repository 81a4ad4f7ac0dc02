package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-abcplay/midi"
	"go-abcplay/music"
	"go-abcplay/sequencer"
)

func main() {
	defer gomidi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	port := ""
	if len(os.Args) > 2 {
		port = strings.Join(os.Args[2:], " ")
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "note":
		testNote(port)
	case "scale":
		testScale(port)
	case "panic":
		panicPort(port)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI output tests")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list          - List all MIDI ports")
	fmt.Println("  note  [PORT]  - Send a single middle C")
	fmt.Println("  scale [PORT]  - Play a C major scale through the sequencer")
	fmt.Println("  panic [PORT]  - Send all notes off on every channel")
}

func listPorts() {
	fmt.Println("=== MIDI Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		fmt.Println("Inputs:")
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("Outputs:")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! The MIDI service is not answering.")
		fmt.Println("Fix (macOS): sudo killall coreaudiod midiserver")
	}
}

func open(port string) *midi.PortOutput {
	out, err := midi.OpenPort(port)
	if err != nil {
		fmt.Printf("Failed to open port: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using %s\n", out.Name())
	return out
}

func testNote(port string) {
	out := open(port)
	defer out.Close()

	c := music.MustPitch('C')
	fmt.Printf("Note on %s (%d)\n", c, c.MIDI())
	if err := out.Send(midi.Event{Type: midi.NoteOn, Note: c.MIDI(), Velocity: 100}); err != nil {
		fmt.Printf("Send failed: %v\n", err)
		return
	}
	time.Sleep(500 * time.Millisecond)
	out.Send(midi.Event{Type: midi.NoteOff, Note: c.MIDI()})
	fmt.Println("Done!")
}

func testScale(port string) {
	out := open(port)
	defer out.Close()

	var notes []music.Music
	for _, st := range []int{0, 2, 4, 5, 7, 9, 11, 12} {
		notes = append(notes, music.Note{Length: 1, Pitch: music.MustPitch('C').Transpose(st)})
	}

	tl := sequencer.NewTimeline(out, 240)
	sequencer.New(music.Seq(notes...), tl).Schedule(0, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	if err := tl.Play(ctx); err != nil {
		fmt.Printf("Play failed: %v\n", err)
		return
	}
	fmt.Printf("Played 8 notes in %v\n", time.Since(start).Round(time.Millisecond))
}

func panicPort(port string) {
	out := open(port)
	if err := out.Close(); err != nil {
		fmt.Printf("Close failed: %v\n", err)
		return
	}
	fmt.Println("All notes off sent")
}
