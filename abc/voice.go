package abc

import (
	"fmt"

	"go-abcplay/lyric"
	"go-abcplay/music"
)

var accidentalOffsets = map[string]int{
	"^^": 2,
	"^":  1,
	"=":  0,
	"_":  -1,
	"__": -2,
}

// tupletRatios maps a tuplet size to the factor applied to its notes.
var tupletRatios = map[int]float64{
	2: 3.0 / 2,
	3: 2.0 / 3,
	4: 3.0 / 4,
}

// voice is the per-voice build state carried across body lines.
type voice struct {
	name       string
	instrument music.Instrument

	saved     music.Music // material anchored before the open repeat
	fresh     music.Music // material since the last section boundary
	intoSaved bool        // after [1 the first ending bypasses fresh

	accidentals *music.AccidentalMap
	lyrics      *lyric.Generator
}

func newVoice(name string, key music.Key, inst music.Instrument) *voice {
	return &voice{
		name:        name,
		instrument:  inst,
		saved:       music.Empty,
		fresh:       music.Empty,
		accidentals: key.AccidentalMap(),
	}
}

func (v *voice) add(m music.Music) {
	if v.intoSaved {
		v.saved = music.Append(v.saved, m)
		return
	}
	v.fresh = music.Append(v.fresh, m)
}

// music returns everything built so far.
func (v *voice) music() music.Music {
	return music.Append(v.saved, v.fresh)
}

func (v *voice) measure() {
	v.accidentals.Refresh()
	v.lyrics.LoadNextMeasure()
}

func (v *voice) bar(kind string) {
	switch kind {
	case "|":
		v.measure()
	case "||", "[|", "|]", "|:":
		v.measure()
		v.saved = music.Append(v.saved, v.fresh)
		v.fresh = music.Empty
		v.intoSaved = false
	case ":|":
		v.measure()
		if !v.intoSaved {
			// no first ending: the block plays twice from here
			v.saved = music.Append(v.saved, v.fresh)
		}
		v.saved = music.Append(v.saved, v.fresh)
		v.fresh = music.Empty
		v.intoSaved = false
	case "[1":
		v.saved = music.Append(v.saved, v.fresh)
		v.intoSaved = true
	case "[2":
	}
}

// line builds one music line. words is the tokenized w: line under it, or
// nil when there is none.
func (v *voice) line(ml *musicLine, words []string) error {
	if v.lyrics == nil {
		v.lyrics = lyric.NewGenerator()
	}
	if words != nil {
		v.lyrics.LoadLyrics(words)
	} else {
		v.lyrics.LoadNoLyrics()
	}

	els := ml.Elements
	for i := 0; i < len(els); i++ {
		e := els[i]
		switch {
		case e.Bar != "":
			v.bar(e.Bar)
		case e.Tuplet != "":
			n := int(e.Tuplet[1] - '0')
			if i+n >= len(els) {
				return fmt.Errorf("tuplet %s needs %d notes", e.Tuplet, n)
			}
			group := make([]music.Music, 0, n)
			for _, sub := range els[i+1 : i+1+n] {
				if sub.Bar != "" || sub.Tuplet != "" {
					return fmt.Errorf("tuplet %s interrupted at column %d", e.Tuplet, sub.Pos.Column)
				}
				m, err := v.element(sub)
				if err != nil {
					return err
				}
				group = append(group, m)
			}
			i += n
			v.add(music.Seq(group...).Augment(tupletRatios[n]))
		default:
			m, err := v.element(e)
			if err != nil {
				return err
			}
			v.add(m)
		}
	}
	return nil
}

func (v *voice) element(e *element) (music.Music, error) {
	switch {
	case e.Rest != nil:
		f, err := parseLength(e.Rest.Length)
		if err != nil {
			return nil, fmt.Errorf("rest length %q: %w", e.Rest.Length, err)
		}
		return music.Rest{Length: f.Value()}, nil
	case e.Note != nil:
		return v.note(e.Note)
	case e.Chord != nil:
		v.lyrics.SetChordSize(len(e.Chord.Notes))
		notes := make([]music.Music, 0, len(e.Chord.Notes))
		for _, n := range e.Chord.Notes {
			m, err := v.note(n)
			if err != nil {
				return nil, err
			}
			notes = append(notes, m)
		}
		chord := music.Chord(notes...)
		if e.Chord.Length != "" {
			f, err := parseLength(e.Chord.Length)
			if err != nil {
				return nil, fmt.Errorf("chord length %q: %w", e.Chord.Length, err)
			}
			chord = chord.Augment(f.Value())
		}
		return chord, nil
	}
	return nil, fmt.Errorf("unexpected element at column %d", e.Pos.Column)
}

func (v *voice) note(n *noteElem) (music.Music, error) {
	letter := n.Letter[0]
	p, err := music.NewPitch(letter)
	if err != nil {
		return nil, err
	}
	if letter >= 'a' {
		p = p.Transpose(12)
	}
	for _, c := range n.Octave {
		if c == '\'' {
			p = p.Transpose(12)
		} else {
			p = p.Transpose(-12)
		}
	}
	if n.Accidental != "" {
		v.accidentals.Set(p.Class(), accidentalOffsets[n.Accidental])
	}
	p = p.Transpose(v.accidentals.Get(p.Class()))

	f, err := parseLength(n.Length)
	if err != nil {
		return nil, fmt.Errorf("note length %q: %w", n.Length, err)
	}
	l, _ := v.lyrics.Next()
	return music.Note{Length: f.Value(), Pitch: p, Instrument: v.instrument, Lyric: l}, nil
}
