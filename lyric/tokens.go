package lyric

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lyrical element markers.
const (
	Barline = "|"
	Hold    = "_"
	Hyphen  = "-"
)

// lyricLine is the participle grammar for the text after "w:".
//
//nolint:govet // participle grammar tags are not standard struct tags
type lyricLine struct {
	Elements []string `( @Text | @Space | @Hyphen | @Hold | @Bar )*`
}

// lyricLexer splits a lyric line into lyrical elements. Text keeps "~" and
// the escaped hyphen "\-" so they render inside a single syllable.
var lyricLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Text", Pattern: `(\\-|[^\s\-_|])+`},
	{Name: "Space", Pattern: `[ \t]+`},
	{Name: "Hyphen", Pattern: `-`},
	{Name: "Hold", Pattern: `_`},
	{Name: "Bar", Pattern: `\|`},
})

var lyricParser = participle.MustBuild[lyricLine](
	participle.Lexer(lyricLexer),
)

// Split breaks a lyric line into lyrical elements.
func Split(text string) ([]string, error) {
	text = strings.TrimRight(text, "\r\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	parsed, err := lyricParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("invalid lyric line %q: %w", text, err)
	}
	return parsed.Elements, nil
}

// MustSplit is Split for literal lines.
func MustSplit(text string) []string {
	els, err := Split(text)
	if err != nil {
		panic(err)
	}
	return els
}

// Format renders a single element as it appears in the displayed line:
// "~" becomes a space and "\-" a hyphen. Everything else, barlines
// included, is shown as written.
func Format(element string) string {
	s := strings.ReplaceAll(element, "~", " ")
	return strings.ReplaceAll(s, `\-`, "-")
}

// isSuffix reports whether cur attaches silently to the syllable before it.
func isSuffix(cur, prev string) bool {
	switch {
	case cur == Hyphen:
		return strings.TrimSpace(prev) != "" && prev != Hyphen
	case strings.TrimSpace(cur) == "":
		return true
	case cur == Hold:
		return true
	}
	return false
}
