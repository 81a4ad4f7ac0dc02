package music

import "go-abcplay/lyric"

// Music is an immutable score tree. The concrete variants are Rest, Note,
// Concat and Together; consumers switch on them exhaustively.
type Music interface {
	// Duration in default note lengths. Never negative.
	Duration() float64
	// Augment returns the same tree with every leaf duration scaled by factor.
	Augment(factor float64) Music

	music()
}

// Rest is silence.
type Rest struct {
	Length float64
}

// Note is a single sounded pitch, optionally carrying the lyric sung on it.
type Note struct {
	Length     float64
	Pitch      Pitch
	Instrument Instrument
	Lyric      lyric.Lyric // zero value when nothing is sung
}

// Concat plays First, then Second.
type Concat struct {
	First, Second Music
}

// Together starts First and Second at the same time. Its duration is First's.
type Together struct {
	First, Second Music
}

func (r Rest) Duration() float64     { return r.Length }
func (n Note) Duration() float64     { return n.Length }
func (c Concat) Duration() float64   { return c.First.Duration() + c.Second.Duration() }
func (t Together) Duration() float64 { return t.First.Duration() }

func (r Rest) Augment(factor float64) Music {
	r.Length *= factor
	return r
}

func (n Note) Augment(factor float64) Music {
	n.Length *= factor
	return n
}

func (c Concat) Augment(factor float64) Music {
	return Concat{c.First.Augment(factor), c.Second.Augment(factor)}
}

func (t Together) Augment(factor float64) Music {
	return Together{t.First.Augment(factor), t.Second.Augment(factor)}
}

func (Rest) music()     {}
func (Note) music()     {}
func (Concat) music()   {}
func (Together) music() {}

// HasLyric reports whether a lyric is attached to the note.
func (n Note) HasLyric() bool {
	return !n.Lyric.IsZero()
}

// Empty is the zero-length score.
var Empty Music = Rest{}

// Seq chains ms into a right-nested Concat.
func Seq(ms ...Music) Music {
	switch len(ms) {
	case 0:
		return Empty
	case 1:
		return ms[0]
	}
	return Concat{ms[0], Seq(ms[1:]...)}
}

// Append concatenates b after a, skipping empty operands.
func Append(a, b Music) Music {
	if isEmpty(a) {
		return b
	}
	if isEmpty(b) {
		return a
	}
	return Concat{a, b}
}

// Chord stacks ms with Together, the first element setting the duration.
func Chord(ms ...Music) Music {
	switch len(ms) {
	case 0:
		return Empty
	case 1:
		return ms[0]
	}
	return Together{ms[0], Chord(ms[1:]...)}
}

func isEmpty(m Music) bool {
	if m == nil {
		return true
	}
	r, ok := m.(Rest)
	return ok && r.Length == 0
}

// Walk visits m in pre-order, passing each node's start offset.
func Walk(m Music, at float64, fn func(m Music, at float64)) {
	fn(m, at)
	switch v := m.(type) {
	case Rest, Note:
	case Concat:
		Walk(v.First, at, fn)
		Walk(v.Second, at+v.First.Duration(), fn)
	case Together:
		Walk(v.First, at, fn)
		Walk(v.Second, at, fn)
	default:
		panic("music: unknown node type")
	}
}

// Notes returns every note in m in traversal order.
func Notes(m Music) []Note {
	var out []Note
	Walk(m, 0, func(m Music, _ float64) {
		if n, ok := m.(Note); ok {
			out = append(out, n)
		}
	})
	return out
}
