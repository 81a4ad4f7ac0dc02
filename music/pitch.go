package music

import (
	"fmt"
	"strings"
)

// semitones above C for each letter in the middle octave
var letterSemitones = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// MiddleC is the MIDI note number of the reference pitch
const MiddleC = 60

// Pitch is a semitone offset from middle C that remembers its written letter.
type Pitch struct {
	letter    byte
	semitones int
}

// NewPitch returns the middle-octave pitch for a letter A-G.
func NewPitch(letter byte) (Pitch, error) {
	up := letter &^ 0x20 // ASCII upper
	st, ok := letterSemitones[up]
	if !ok {
		return Pitch{}, fmt.Errorf("invalid pitch letter %q", letter)
	}
	return Pitch{letter: up, semitones: st}, nil
}

// MustPitch is NewPitch for literal letters.
func MustPitch(letter byte) Pitch {
	p, err := NewPitch(letter)
	if err != nil {
		panic(err)
	}
	return p
}

// Transpose returns a new pitch shifted by n semitones. The letter class is kept.
func (p Pitch) Transpose(n int) Pitch {
	p.semitones += n
	return p
}

// Class returns the written letter, independent of octave and accidental.
func (p Pitch) Class() byte {
	return p.letter
}

// Semitones returns the offset from middle C.
func (p Pitch) Semitones() int {
	return p.semitones
}

// MIDI returns the MIDI note number, clamped to 0-127.
func (p Pitch) MIDI() uint8 {
	n := MiddleC + p.semitones
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	return uint8(n)
}

// String renders the pitch as letter, accidental and octave, e.g. "F#4".
func (p Pitch) String() string {
	base := letterSemitones[p.letter]
	diff := p.semitones - base
	octave := 4
	for diff >= 12 {
		diff -= 12
		octave++
	}
	for diff <= -12 {
		diff += 12
		octave--
	}
	var acc string
	switch {
	case diff > 0:
		acc = strings.Repeat("#", diff)
	case diff < 0:
		acc = strings.Repeat("b", -diff)
	}
	return fmt.Sprintf("%c%s%d", p.letter, acc, octave)
}
