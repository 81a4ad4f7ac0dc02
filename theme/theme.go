package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"go-abcplay/lyric"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Playing rune // ▶
	Stopped rune // ■
	Note    rune // ♪ shown for instrumental passages

	// Progress bar
	BarDone rune // ━
	BarTodo rune // ─

	// Voice legend
	VoiceOn rune // ●
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Playing: '▶',
			Stopped: '■',
			Note:    '♪',

			BarDone: '━',
			BarTodo: '─',

			VoiceOn: '●',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0  // deep purple
	RoleMuted   = 0.25 // purple-magenta
	RoleFG      = 0.45 // pink-purple (readable)
	RoleAccent  = 0.5  // vivid magenta
	RoleSung    = 0.85 // orange-yellow, current syllable
	RoleSuccess = 1.0  // bright yellow
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Sung() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSung))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Hex returns the #rrggbb form of a normalized value.
func (t *Theme) Hex(norm float64) string {
	return string(t.Color(norm))
}

// Lyric styles

func (t *Theme) LineStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.FG())
}

func (t *Theme) SyllableStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Sung()).Bold(true).Underline(true)
}

func (t *Theme) InstrumentalStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted()).Italic(true)
}

// RenderLyric draws a lyric line with its syllable emphasized.
func (t *Theme) RenderLyric(l lyric.Lyric) string {
	switch l.Kind {
	case lyric.None:
		return ""
	case lyric.Instrumental:
		return t.InstrumentalStyle().Render(string(t.Symbols.Note) + " " + lyric.InstrumentalText)
	}
	line := t.LineStyle()
	return line.Render(l.Prefix) + t.SyllableStyle().Render(l.Syllable) + line.Render(l.Suffix)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
