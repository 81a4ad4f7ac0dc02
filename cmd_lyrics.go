package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-abcplay/midi"
	"go-abcplay/sequencer"
	"go-abcplay/widgets"
)

var lyricsHTML bool

var lyricsCmd = &cobra.Command{
	Use:   "lyrics FILE",
	Short: "Print the timed lyrics of a tune",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := loadSong(args[0])
		if err != nil {
			return err
		}

		tl := newTimeline(midi.Discard, song)
		tl.Clock = &sequencer.InstantClock{}

		w := cmd.OutOrStdout()
		player := sequencer.NewPlayer()
		player.Signals.Add(sequencer.ListenerFunc(func(s sequencer.Signal) {
			if s.Kind != sequencer.LyricChange {
				return
			}
			at := widgets.FormatBeats(s.Beat, tl.BPM())
			if lyricsHTML {
				fmt.Fprintf(w, "<p data-time=%q>%s</p>\n", at, s.Lyric.HTML())
				return
			}
			fmt.Fprintf(w, "%5s  %s\n", at, s.Lyric.Highlight(func(syl string) string {
				return "[" + syl + "]"
			}))
		}))
		player.Load(song)
		return player.Play(cmd.Context(), tl)
	},
}

func init() {
	lyricsCmd.Flags().BoolVar(&lyricsHTML, "html", false, "emit HTML with the sung syllable in <b>")
}
