package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-abcplay/abc"
	"go-abcplay/config"
	"go-abcplay/debug"
	"go-abcplay/midi"
	"go-abcplay/music"
	"go-abcplay/sequencer"
)

var (
	debugFlag  bool
	configFlag string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "abcplay",
	Short: "Play ABC tunes over MIDI with sing-along lyrics",
	Long: `abcplay reads tunes written in ABC notation and plays them on a
MIDI output, highlighting each lyric syllable as it is sung.

Tunes can also be checked for errors, rendered as timed lyrics,
or exported to a standard MIDI file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			if err := debug.Enable(""); err != nil {
				return fmt.Errorf("enable debug log: %w", err)
			}
		}
		var err error
		if configFlag != "" {
			cfg, err = config.LoadFrom(configFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Disable()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to ~/.config/go-abcplay/debug.log")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.config/go-abcplay/config.yaml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lyricsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(portsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	err := rootCmd.Execute()
	gomidi.CloseDriver()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadSong parses path, assigning instruments from the config.
func loadSong(path string) (*music.Song, error) {
	p := abc.Parser{Instrument: cfg.Instrument}
	return p.ParseFile(path)
}

// newTimeline builds a timeline for song on out using the output settings.
func newTimeline(out midi.Output, song *music.Song) *sequencer.Timeline {
	tl := sequencer.NewTimeline(out, song.BeatsPerMinute()*cfg.Output.TempoScale)
	tl.PPQ = cfg.Output.PPQ
	tl.Velocity = cfg.Output.Velocity
	return tl
}
