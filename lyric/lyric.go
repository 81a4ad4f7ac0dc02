// Package lyric maps a lyric line onto the notes it is sung to.
package lyric

import (
	"html"
	"strings"
)

// Kind distinguishes the different lyric states a note can carry.
type Kind uint8

const (
	None         Kind = iota // no lyric attached
	Sung                     // a syllable is highlighted
	Holding                  // the line is shown with nothing highlighted
	Instrumental             // the voice has no lyrics here
)

// InstrumentalText is what an instrumental passage displays.
const InstrumentalText = "(instrumental)"

// Lyric is one displayable state of a lyric line. Prefix+Syllable+Suffix is
// always the whole rendered line. The zero value means "no lyric".
type Lyric struct {
	Kind     Kind
	Prefix   string
	Syllable string
	Suffix   string
}

// InstrumentalLyric is the marker for passages without words.
var InstrumentalLyric = Lyric{Kind: Instrumental}

// NewSung highlights syllable between prefix and suffix.
func NewSung(prefix, syllable, suffix string) Lyric {
	return Lyric{Kind: Sung, Prefix: prefix, Syllable: syllable, Suffix: suffix}
}

// NewHolding shows a whole line without highlighting anything.
func NewHolding(line string) Lyric {
	return Lyric{Kind: Holding, Prefix: line}
}

// IsZero reports whether no lyric is attached.
func (l Lyric) IsZero() bool {
	return l.Kind == None
}

// IsInstrumental reports whether l marks a passage without words.
func (l Lyric) IsInstrumental() bool {
	return l.Kind == Instrumental
}

// String renders the plain line.
func (l Lyric) String() string {
	if l.Kind == Instrumental {
		return InstrumentalText
	}
	return l.Prefix + l.Syllable + l.Suffix
}

// Highlight renders the line with the syllable passed through emphasize.
func (l Lyric) Highlight(emphasize func(string) string) string {
	switch l.Kind {
	case Instrumental:
		return InstrumentalText
	case Sung:
		return l.Prefix + emphasize(l.Syllable) + l.Suffix
	}
	return l.String()
}

// HTML renders the line with the syllable in bold.
func (l Lyric) HTML() string {
	if l.Kind == Instrumental {
		return "<i>" + html.EscapeString(InstrumentalText) + "</i>"
	}
	var sb strings.Builder
	sb.WriteString(html.EscapeString(l.Prefix))
	if l.Kind == Sung {
		sb.WriteString("<b>")
		sb.WriteString(html.EscapeString(l.Syllable))
		sb.WriteString("</b>")
	}
	sb.WriteString(html.EscapeString(l.Suffix))
	return sb.String()
}
