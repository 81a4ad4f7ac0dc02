package lyric

import "strings"

// Generator hands out one Lyric per note of a voice, following the lyric
// line written under the music line being parsed. It is owned by a single
// voice and is not safe for concurrent use.
type Generator struct {
	tokens    []string
	line      string // rendered tokens, used for highlight offsets
	cursor    int    // index into tokens
	offset    int    // byte offset into line
	hold      int    // notes still sustaining the previous syllable
	chordSize int
	prev      Lyric
}

// NewGenerator returns a generator with no lyrics loaded.
func NewGenerator() *Generator {
	g := &Generator{}
	g.LoadNoLyrics()
	return g
}

// LoadLyrics resets the generator onto a new lyric line.
func (g *Generator) LoadLyrics(tokens []string) {
	g.tokens = tokens
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(Format(t))
	}
	g.line = sb.String()
	g.reset()
}

// LoadNoLyrics resets the generator for a music line without lyrics.
func (g *Generator) LoadNoLyrics() {
	g.tokens = nil
	g.line = ""
	g.reset()
}

func (g *Generator) reset() {
	g.cursor = 0
	g.offset = 0
	g.hold = 0
	g.chordSize = 1
	g.prev = Lyric{}
}

// Line returns the rendered lyric line.
func (g *Generator) Line() string {
	return g.line
}

// SetChordSize registers that the next n notes sound together and share the
// lyric of the first.
func (g *Generator) SetChordSize(n int) {
	if n < 1 {
		n = 1
	}
	g.chordSize = n
}

// Next returns the lyric for the next note. ok is false when the previous
// lyric still applies.
func (g *Generator) Next() (l Lyric, ok bool) {
	if g.hold > 0 {
		g.hold--
		return Lyric{}, false
	}
	if g.chordSize > 1 {
		g.hold += g.chordSize - 1
		g.chordSize = 1
	}

	switch {
	case len(g.tokens) == 0:
		l = InstrumentalLyric
	case g.atBarline():
		l = NewHolding(g.line)
	default:
		l = g.consume()
	}

	if l == g.prev {
		return Lyric{}, false
	}
	g.prev = l
	return l, true
}

// LoadNextMeasure steps over the lyric barline when the measure's syllables
// are used up. It does nothing anywhere else.
func (g *Generator) LoadNextMeasure() {
	if g.cursor < len(g.tokens) && g.tokens[g.cursor] == Barline {
		g.hold = 0
		g.consume()
	}
}

// atBarline is also true past the last token: the line is held until the
// next one is loaded.
func (g *Generator) atBarline() bool {
	return g.cursor >= len(g.tokens) || g.tokens[g.cursor] == Barline
}

// consume takes the syllable under the cursor together with its suffix.
func (g *Generator) consume() Lyric {
	start := g.offset
	syllable := Format(g.tokens[g.cursor])
	g.cursor++

	var suffix strings.Builder
	for g.cursor < len(g.tokens) && isSuffix(g.tokens[g.cursor], g.tokens[g.cursor-1]) {
		if g.tokens[g.cursor] == Hold {
			g.hold++
		}
		suffix.WriteString(Format(g.tokens[g.cursor]))
		g.cursor++
	}

	end := start + len(syllable) + strings.LastIndex(suffix.String(), Hold) + 1
	g.offset = start + len(syllable) + suffix.Len()
	return NewSung(g.line[:start], g.line[start:end], g.line[end:])
}
