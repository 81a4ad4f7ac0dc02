package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-abcplay/debug"
	"go-abcplay/lyric"
	"go-abcplay/midi"
	"go-abcplay/sequencer"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE OUT.mid",
	Short: "Write a tune to a standard MIDI file",
	Long: `Render a tune to a type 0 standard MIDI file. Sung syllables are
stored as lyric meta events so karaoke players can display them.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := loadSong(args[0])
		if err != nil {
			return err
		}

		bpm := song.BeatsPerMinute() * cfg.Output.TempoScale
		out := midi.NewFileOutput(cfg.Output.PPQ, bpm, song.Title, uint8(song.Meter.Num), uint8(song.Meter.Den))
		tl := newTimeline(out, song)
		tl.Clock = &sequencer.InstantClock{}

		var sendErr error
		player := sequencer.NewPlayer()
		player.Signals.Add(sequencer.ListenerFunc(func(s sequencer.Signal) {
			if s.Kind != sequencer.LyricChange || s.Lyric.Kind != lyric.Sung || sendErr != nil {
				return
			}
			sendErr = out.Send(midi.Event{Tick: tl.Ticks(s.Beat), Type: midi.Lyric, Text: s.Lyric.Syllable})
		}))
		player.Load(song)
		if err := player.Play(cmd.Context(), tl); err != nil {
			return err
		}
		if sendErr != nil {
			return fmt.Errorf("lyric: %w", sendErr)
		}

		if err := out.WriteFile(args[1]); err != nil {
			return err
		}
		debug.Log("export", "wrote midi file", "path", args[1], "ppq", cfg.Output.PPQ, "bpm", bpm)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
		return nil
	},
}
