package music

import (
	"fmt"
	"strings"
)

// Instrument is a General MIDI program number.
type Instrument uint8

const (
	Piano          Instrument = 0
	BrightPiano    Instrument = 1
	Harpsichord    Instrument = 6
	Glockenspiel   Instrument = 9
	MusicBox       Instrument = 10
	Vibraphone     Instrument = 11
	Marimba        Instrument = 12
	ChurchOrgan    Instrument = 19
	Accordion      Instrument = 21
	Harmonica      Instrument = 22
	NylonGuitar    Instrument = 24
	SteelGuitar    Instrument = 25
	AcousticBass   Instrument = 32
	Violin         Instrument = 40
	Viola          Instrument = 41
	Cello          Instrument = 42
	StringEnsemble Instrument = 48
	ChoirAahs      Instrument = 52
	Trumpet        Instrument = 56
	Trombone       Instrument = 57
	FrenchHorn     Instrument = 60
	SopranoSax     Instrument = 64
	AltoSax        Instrument = 65
	Oboe           Instrument = 68
	Bassoon        Instrument = 70
	Clarinet       Instrument = 71
	Piccolo        Instrument = 72
	Flute          Instrument = 73
	PanFlute       Instrument = 75
	Bagpipe        Instrument = 109
	Fiddle         Instrument = 110
)

var instrumentNames = map[Instrument]string{
	Piano:          "piano",
	BrightPiano:    "bright-piano",
	Harpsichord:    "harpsichord",
	Glockenspiel:   "glockenspiel",
	MusicBox:       "music-box",
	Vibraphone:     "vibraphone",
	Marimba:        "marimba",
	ChurchOrgan:    "church-organ",
	Accordion:      "accordion",
	Harmonica:      "harmonica",
	NylonGuitar:    "nylon-guitar",
	SteelGuitar:    "steel-guitar",
	AcousticBass:   "acoustic-bass",
	Violin:         "violin",
	Viola:          "viola",
	Cello:          "cello",
	StringEnsemble: "strings",
	ChoirAahs:      "choir",
	Trumpet:        "trumpet",
	Trombone:       "trombone",
	FrenchHorn:     "french-horn",
	SopranoSax:     "soprano-sax",
	AltoSax:        "alto-sax",
	Oboe:           "oboe",
	Bassoon:        "bassoon",
	Clarinet:       "clarinet",
	Piccolo:        "piccolo",
	Flute:          "flute",
	PanFlute:       "pan-flute",
	Bagpipe:        "bagpipe",
	Fiddle:         "fiddle",
}

func (i Instrument) String() string {
	if name, ok := instrumentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("program-%d", uint8(i))
}

// LookupInstrument resolves a name such as "piano" or "program-73".
func LookupInstrument(name string) (Instrument, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for inst, n := range instrumentNames {
		if n == name {
			return inst, nil
		}
	}
	var p int
	if _, err := fmt.Sscanf(name, "program-%d", &p); err == nil && p >= 0 && p < 128 {
		return Instrument(p), nil
	}
	return 0, fmt.Errorf("unknown instrument %q", name)
}
