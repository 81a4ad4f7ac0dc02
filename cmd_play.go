package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-abcplay/midi"
	"go-abcplay/music"
	"go-abcplay/sequencer"
	"go-abcplay/theme"
	"go-abcplay/tui"
)

var (
	playPort string
	playTUI  bool
)

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a tune on a MIDI output",
	Long: `Play a tune on a MIDI output port, printing each lyric line as it
is sung. With --tui the lyrics are shown in a full-screen display.

The port is matched by name; a partial name is enough. When no port is
given the one from the config file is used, then the first available.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := loadSong(args[0])
		if err != nil {
			return err
		}

		port := playPort
		if port == "" {
			port = cfg.Output.PortName
		}
		out, err := midi.OpenPort(port)
		if err != nil {
			return err
		}
		defer out.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		tl := newTimeline(out, song)
		player := sequencer.NewPlayer()
		if playTUI {
			return playWithTUI(ctx, player, song, tl)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Playing %s on %s\n", song.Title, out.Name())
		player.Signals.Add(sequencer.ListenerFunc(func(s sequencer.Signal) {
			printSignal(w, s)
		}))
		player.Load(song)
		if err := player.Play(ctx, tl); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	playCmd.Flags().StringVarP(&playPort, "port", "p", "", "MIDI output port name")
	playCmd.Flags().BoolVar(&playTUI, "tui", false, "show lyrics in a full-screen display")
}

// printSignal writes a line for every new syllable, marking it in brackets.
func printSignal(w io.Writer, s sequencer.Signal) {
	switch s.Kind {
	case sequencer.SongStart:
		fmt.Fprintf(w, "▶ %s (%s)\n", s.Song.Title, s.Song.Composer)
	case sequencer.SongEnd:
		fmt.Fprintln(w, "■")
	case sequencer.LyricChange:
		fmt.Fprintln(w, s.Lyric.Highlight(func(syl string) string {
			return "[" + syl + "]"
		}))
	}
}

func playWithTUI(ctx context.Context, player *sequencer.Player, song *music.Song, tl *sequencer.Timeline) error {
	palette, err := theme.LoadOrDefault(cfg.Display.Palette)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(sequencer.ChanListener, 16)
	id := player.Signals.Add(ch)
	player.Load(song)

	p := tea.NewProgram(tui.NewModel(theme.New(palette), ch, tl.BPM(), cancel), tea.WithAltScreen())

	done := make(chan error, 1)
	go func() {
		err := player.Play(ctx, tl)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		p.Send(tui.DoneMsg{Err: err})
		done <- err
	}()

	_, runErr := p.Run()

	// Nobody reads ch once the program has exited.
	player.Signals.Remove(id)
	go func() {
		for range ch {
		}
	}()
	cancel()
	playErr := <-done
	close(ch)

	if runErr != nil {
		return runErr
	}
	return playErr
}
