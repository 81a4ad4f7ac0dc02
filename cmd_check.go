package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-abcplay/music"
	"go-abcplay/widgets"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Parse tunes and summarize them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			song, err := loadSong(path)
			if err != nil {
				fmt.Fprintf(w, "%s: %v\n", path, err)
				failed++
				continue
			}

			fmt.Fprintf(w, "%s: ok\n", path)
			fmt.Fprintln(w, song)
			for _, name := range song.VoiceNames {
				m := song.Voices[name]
				notes := music.Notes(m)
				sung := 0
				for _, n := range notes {
					if n.HasLyric() {
						sung++
					}
				}
				label := name
				if label == "" {
					label = "(default)"
				}
				fmt.Fprintf(w, "  voice %-12s %4d notes  %4d sung  %6.2f beats\n", label, len(notes), sung, m.Duration())
			}
			fmt.Fprintf(w, "  length %s\n", widgets.FormatBeats(song.Duration(), song.BeatsPerMinute()))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}
