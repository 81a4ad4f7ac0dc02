package abc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"go-abcplay/music"
)

// musicLine is the participle grammar for one line of notes.
//
//nolint:govet // participle grammar tags are not standard struct tags
type musicLine struct {
	Elements []*element `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type element struct {
	Pos lexer.Position

	Bar    string     `  @Bar`
	Tuplet string     `| @Tuplet`
	Chord  *chordElem `| @@`
	Note   *noteElem  `| @@`
	Rest   *restElem  `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chordElem struct {
	Notes  []*noteElem `"[" @@+ "]"`
	Length string      `@Length?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type noteElem struct {
	Accidental string `@Accidental?`
	Letter     string `@Letter`
	Octave     string `@Octave?`
	Length     string `@Length?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type restElem struct {
	Rest   string `@Rest`
	Length string `@Length?`
}

// musicLexer tokenizes note lines. Order matters: barlines must be tried
// before the chord bracket and longer barlines before "|".
var musicLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `%[^\n]*`},
	{Name: "Bar", Pattern: `\|\]|\|\||\|:|:\||\[\||\[[12]|\|`},
	{Name: "Tuplet", Pattern: `\([234]`},
	{Name: "Accidental", Pattern: `\^\^|\^|__|_|=`},
	{Name: "Letter", Pattern: `[A-Ga-g]`},
	{Name: "Rest", Pattern: `[zx]`},
	{Name: "Octave", Pattern: `'+|,+`},
	{Name: "Length", Pattern: `[0-9]+(/[0-9]*)?|/[0-9]*`},
	{Name: "Bracket", Pattern: `[\[\]]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var musicParser = participle.MustBuild[musicLine](
	participle.Lexer(musicLexer),
	participle.Elide("Whitespace", "Comment"),
)

// fraction is a note length or meter: "", "3", "/4", "3/4" or "/".
//
//nolint:govet // participle grammar tags are not standard struct tags
type fraction struct {
	Num   *int `@Int?`
	Slash bool `@"/"?`
	Den   *int `@Int?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type meterValue struct {
	Symbol   string    `  @Common`
	Fraction *fraction `| @@`
}

var valueLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Common", Pattern: `C\|?`},
	{Name: "Punct", Pattern: `[/=]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var (
	fractionParser = participle.MustBuild[fraction](
		participle.Lexer(valueLexer),
		participle.Elide("Whitespace"),
	)
	meterParser = participle.MustBuild[meterValue](
		participle.Lexer(valueLexer),
		participle.Elide("Whitespace"),
	)
)

func (f *fraction) value() (music.Fraction, error) {
	num := 1
	if f.Num != nil {
		num = *f.Num
	}
	if !f.Slash {
		if f.Den != nil {
			return music.Fraction{}, fmt.Errorf("missing '/' between %d and %d", num, *f.Den)
		}
		return music.Fraction{Num: num, Den: 1}, nil
	}
	den := 2
	if f.Den != nil {
		den = *f.Den
	}
	if den == 0 {
		return music.Fraction{}, fmt.Errorf("zero denominator")
	}
	return music.Fraction{Num: num, Den: den}, nil
}

// parseLength reads a note-length multiplier. An empty string is one unit.
func parseLength(s string) (music.Fraction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return music.Fraction{Num: 1, Den: 1}, nil
	}
	f, err := fractionParser.ParseString("", s)
	if err != nil {
		return music.Fraction{}, err
	}
	return f.value()
}

// parseStrictFraction requires an explicit n/m, as in L: fields.
func parseStrictFraction(s string) (music.Fraction, error) {
	f, err := fractionParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return music.Fraction{}, err
	}
	if f.Num == nil || !f.Slash || f.Den == nil {
		return music.Fraction{}, fmt.Errorf("expected n/m, got %q", s)
	}
	return f.value()
}

func parseMeter(s string) (music.Meter, error) {
	m, err := meterParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return music.Meter{}, err
	}
	switch m.Symbol {
	case "C":
		return music.Meter{Fraction: music.Fraction{Num: 4, Den: 4}, Symbol: "C"}, nil
	case "C|":
		return music.Meter{Fraction: music.Fraction{Num: 2, Den: 2}, Symbol: "C|"}, nil
	}
	f := m.Fraction
	if f == nil || f.Num == nil || !f.Slash || f.Den == nil {
		return music.Meter{}, fmt.Errorf("expected n/m, C or C|, got %q", s)
	}
	v, err := f.value()
	if err != nil {
		return music.Meter{}, err
	}
	return music.Meter{Fraction: v}, nil
}

// parseTempo reads "1/4=120" or a bare "120", which counts default lengths.
func parseTempo(s string, defaultLength music.Fraction) (music.Tempo, error) {
	beat, bpm, found := strings.Cut(s, "=")
	if !found {
		bpm, beat = beat, ""
	}
	n, err := strconv.Atoi(strings.TrimSpace(bpm))
	if err != nil {
		return music.Tempo{}, fmt.Errorf("invalid beats per minute %q", bpm)
	}
	if n <= 0 {
		return music.Tempo{}, fmt.Errorf("beats per minute must be positive, got %d", n)
	}
	t := music.Tempo{Beat: defaultLength, BPM: n}
	if found {
		if t.Beat, err = parseStrictFraction(beat); err != nil {
			return music.Tempo{}, err
		}
	}
	return t, nil
}
