package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-abcplay/lyric"
	"go-abcplay/music"
	"go-abcplay/sequencer"
	"go-abcplay/theme"
	"go-abcplay/widgets"
)

// historyLines is how many finished lyric lines stay on screen
const historyLines = 4

// frameRate for the progress bar
const frameRate = time.Second / 10

type Model struct {
	Theme *theme.Theme

	signals sequencer.ChanListener
	stop    func() // cancels playback
	bpm     float64

	song     *music.Song
	current  lyric.Lyric
	history  []string
	started  time.Time
	elapsed  time.Duration
	playing  bool
	finished bool
	err      error
	width    int
	quitting bool
}

// SignalMsg carries a player broadcast into the update loop.
type SignalMsg sequencer.Signal

// DoneMsg is sent when playback returns.
type DoneMsg struct{ Err error }

type tickMsg time.Time

// NewModel shows signals arriving on ch. stop is called on quit; bpm
// drives the clock display.
func NewModel(th *theme.Theme, ch sequencer.ChanListener, bpm float64, stop func()) Model {
	return Model{
		Theme:   th,
		signals: ch,
		stop:    stop,
		bpm:     bpm,
		width:   60,
	}
}

func ListenForSignals(ch sequencer.ChanListener) tea.Cmd {
	return func() tea.Msg {
		return SignalMsg(<-ch)
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(ListenForSignals(m.signals), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.stop != nil {
				m.stop()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		if m.playing {
			m.elapsed = time.Time(msg).Sub(m.started)
		}
		return m, tick()

	case SignalMsg:
		m = m.apply(sequencer.Signal(msg))
		return m, ListenForSignals(m.signals)

	case DoneMsg:
		m.playing = false
		m.finished = true
		m.err = msg.Err
	}

	return m, nil
}

// apply folds one signal into the display state.
func (m Model) apply(s sequencer.Signal) Model {
	switch s.Kind {
	case sequencer.SongChange:
		m.song = s.Song
		m.current = lyric.Lyric{}
		m.history = nil
	case sequencer.SongStart:
		m.song = s.Song
		m.playing = true
		m.started = time.Now()
	case sequencer.SongEnd:
		m.playing = false
		m.finished = true
	case sequencer.LyricChange:
		// a new line starts when the syllable has no prefix
		if m.current.Kind == lyric.Sung && s.Lyric.Kind == lyric.Sung && s.Lyric.Prefix == "" {
			m.history = append(m.history, m.current.String())
			if len(m.history) > historyLines {
				m.history = m.history[len(m.history)-historyLines:]
			}
		}
		m.current = s.Lyric
	}
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.Theme

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())

	title, composer, duration := "(no song)", "", 0.0
	if m.song != nil {
		title = m.song.Title
		composer = m.song.Composer
		duration = m.song.Duration()
	}

	state := th.Symbols.Stopped
	if m.playing {
		state = th.Symbols.Playing
	}
	header := headerStyle.Render(fmt.Sprintf("%c %s", state, title))
	if composer != "" {
		header += dimStyle.Render("  " + composer)
	}

	beats := m.elapsed.Minutes() * m.bpm
	frac := 0.0
	if duration > 0 {
		frac = beats / duration
	}
	if m.finished {
		frac, beats = 1, duration
	}
	barWidth := max(m.width-16, 10)
	bar := widgets.RenderProgress(barWidth, frac, th.Symbols.BarDone, th.Symbols.BarTodo,
		th.Palette.Lookup(theme.RoleSung), th.Palette.Lookup(theme.RoleMuted))
	clock := dimStyle.Render(fmt.Sprintf(" %s/%s", widgets.FormatBeats(beats, m.bpm), widgets.FormatBeats(duration, m.bpm)))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	for _, line := range m.history {
		out.WriteString(dimStyle.Render(line))
		out.WriteString("\n")
	}
	out.WriteString(th.RenderLyric(m.current))
	out.WriteString("\n\n")
	out.WriteString(bar + clock)
	out.WriteString("\n")

	if m.song != nil && len(m.song.VoiceNames) > 1 {
		for i, name := range m.song.VoiceNames {
			norm := float64(i+1) / float64(len(m.song.VoiceNames))
			out.WriteString(widgets.RenderLegendItem(th.Palette.Lookup(norm), th.Symbols.VoiceOn, name, "voice"))
			out.WriteString("\n")
		}
	}

	out.WriteString("\n")
	if m.err != nil {
		out.WriteString(lipgloss.NewStyle().Foreground(th.Sung()).Render("error: " + m.err.Error()))
		out.WriteString("  ")
	} else if m.finished {
		out.WriteString(lipgloss.NewStyle().Foreground(th.Success()).Render("finished"))
		out.WriteString("  ")
	}
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeyBinding{{Key: "q", Desc: "quit"}})))
	return out.String()
}
