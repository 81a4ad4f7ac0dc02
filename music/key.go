package music

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Order in which sharps and flats are added to a key signature.
var (
	sharpOrder = [7]byte{'F', 'C', 'G', 'D', 'A', 'E', 'B'}
	flatOrder  = [7]byte{'B', 'E', 'A', 'D', 'G', 'C', 'F'}
)

// Key is a major or minor key signature.
type Key struct {
	Name  string // canonical symbol, e.g. "Bb" or "F#m"
	Count int    // sharps when positive, flats when negative
}

// position on the circle of fifths
const keyTable = `
7  C# A#m
6  F# D#m
5  B G#m
4  E C#m
3  A F#m
2  D Bm
1  G Em
0  C Am
-1 F Dm
-2 Bb Gm
-3 Eb Cm
-4 Ab Fm
-5 Db Bbm
-6 Gb Ebm
-7 Cb Abm
`

var keys map[string]Key

func init() {
	keys = make(map[string]Key)
	for _, line := range strings.Split(keyTable, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			panic(err)
		}
		for _, name := range fields[1:] {
			keys[name] = Key{Name: name, Count: n}
		}
	}
}

// Keys returns every standard key, ordered from most flats to most sharps.
func Keys() []Key {
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b Key) int {
		if c := cmp.Compare(a.Count, b.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// LookupKey resolves a K: field symbol such as "D", "Bbm", "F# min" or "Gmaj".
func LookupKey(symbol string) (Key, error) {
	s := strings.Join(strings.Fields(symbol), "")
	if s == "" {
		return Key{}, fmt.Errorf("empty key symbol")
	}
	tonic := strings.ToUpper(s[:1])
	rest := s[1:]
	if len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		tonic += rest[:1]
		rest = rest[1:]
	}
	switch strings.ToLower(rest) {
	case "", "maj", "major", "ion":
	case "m", "min", "minor", "aeo":
		tonic += "m"
	default:
		return Key{}, fmt.Errorf("unknown key symbol %q", symbol)
	}
	k, ok := keys[tonic]
	if !ok {
		return Key{}, fmt.Errorf("unknown key symbol %q", symbol)
	}
	return k, nil
}

// MustKey is LookupKey for literal symbols.
func MustKey(symbol string) Key {
	k, err := LookupKey(symbol)
	if err != nil {
		panic(err)
	}
	return k
}

// AccidentalMap builds a fresh measure overlay on top of the key signature.
func (k Key) AccidentalMap() *AccidentalMap {
	m := &AccidentalMap{
		base:    make(map[byte]int, 7),
		overlay: make(map[byte]int),
	}
	for letter := range letterSemitones {
		m.base[letter] = 0
	}
	if k.Count >= 0 {
		for i := 0; i < k.Count; i++ {
			m.base[sharpOrder[i%7]]++
		}
	} else {
		for i := 0; i < -k.Count; i++ {
			m.base[flatOrder[i%7]]--
		}
	}
	return m
}

func (k Key) String() string {
	return k.Name
}

// AccidentalMap resolves the accidental of a letter inside the current measure.
type AccidentalMap struct {
	base    map[byte]int
	overlay map[byte]int
}

// Set records an explicit accidental until the next Refresh.
func (m *AccidentalMap) Set(class byte, offset int) {
	m.overlay[class] = offset
}

// Get returns the measure accidental for the class, falling back to the key signature.
func (m *AccidentalMap) Get(class byte) int {
	if v, ok := m.overlay[class]; ok {
		return v
	}
	return m.base[class]
}

// Base returns the key signature accidental for the class.
func (m *AccidentalMap) Base(class byte) int {
	return m.base[class]
}

// Refresh drops every measure accidental. Called at barlines.
func (m *AccidentalMap) Refresh() {
	clear(m.overlay)
}
