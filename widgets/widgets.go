package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored symbol
func RenderPad(color [3]uint8, symbol rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render(string(symbol))
}

// RenderProgress renders a bar of width cells, frac of them done.
func RenderProgress(width int, frac float64, done, todo rune, doneColor, todoColor [3]uint8) string {
	if width <= 0 {
		return ""
	}
	frac = min(max(frac, 0), 1)
	n := int(frac * float64(width))

	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(doneColor)))
	todoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(todoColor)))
	return doneStyle.Render(strings.Repeat(string(done), n)) +
		todoStyle.Render(strings.Repeat(string(todo), width-n))
}

// RenderLegendItem renders a single legend item: "● Name - description"
func RenderLegendItem(color [3]uint8, symbol rune, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color, symbol), name, desc)
}

// RenderKeyHelp formats key bindings on one line: "q quit  space pause"
func RenderKeyHelp(keys []KeyBinding) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k.Key+" "+k.Desc)
	}
	return strings.Join(parts, "  ")
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

// FormatBeats renders a beat position as m:ss at bpm.
func FormatBeats(beats, bpm float64) string {
	if bpm <= 0 {
		return "0:00"
	}
	secs := int(beats * 60 / bpm)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
