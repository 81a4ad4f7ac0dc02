package abc

import (
	"strconv"
	"strings"

	"go-abcplay/music"
)

// field splits "T:title" into its letter and trimmed value.
func field(line string) (letter byte, value string, ok bool) {
	if len(line) < 2 || line[1] != ':' {
		return 0, "", false
	}
	c := line[0]
	if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
		return 0, "", false
	}
	return c, strings.TrimSpace(stripComment(line[2:])), true
}

// stripComment cuts s at the first unescaped '%' and turns "\%" into '%'.
func stripComment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i == 0 || s[i-1] != '\\') {
			s = s[:i]
			break
		}
	}
	return strings.ReplaceAll(s, `\%`, "%")
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "%")
}

// header collects fields until K: and then resolves defaults, which depend
// on one another (Q needs L, L needs M).
type header struct {
	song   *music.Song
	voices []string
	length string // raw L:
	tempo  string // raw Q:
	title  bool
	meter  bool
}

// parseHeader consumes lines up to and including K: and returns the index
// of the first body line.
func parseHeader(lines []string) (*music.Song, []string, int, error) {
	h := &header{song: &music.Song{Composer: music.UnknownComposer}}
	seenX := false

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line) {
			continue
		}
		letter, value, ok := field(line)
		if !ok {
			if !seenX {
				return nil, nil, 0, grammarErr(lineNo, nil, "expected X: field, got %q", line)
			}
			return nil, nil, 0, grammarErr(lineNo, nil, "expected header field before K:, got %q", line)
		}
		if !seenX {
			if letter != 'X' {
				return nil, nil, 0, grammarErr(lineNo, nil, "first header field must be X:, got %c:", letter)
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, nil, 0, grammarErr(lineNo, err, "invalid index number %q", value)
			}
			h.song.Index = n
			seenX = true
			continue
		}
		if letter == 'K' {
			if err := h.finish(lineNo, value); err != nil {
				return nil, nil, 0, err
			}
			return h.song, h.voices, i + 1, nil
		}
		if err := h.add(lineNo, letter, value); err != nil {
			return nil, nil, 0, err
		}
	}
	if !seenX {
		return nil, nil, 0, grammarErr(0, nil, "missing X: field")
	}
	return nil, nil, 0, grammarErr(0, nil, "missing K: field, header is unterminated")
}

func (h *header) add(lineNo int, letter byte, value string) error {
	switch letter {
	case 'X':
		return grammarErr(lineNo, nil, "X: may only appear once, as the first field")
	case 'T':
		h.song.Title = value
		h.title = true
	case 'C':
		if value != "" {
			h.song.Composer = value
		}
	case 'M':
		m, err := parseMeter(value)
		if err != nil {
			return grammarErr(lineNo, err, "invalid meter %q", value)
		}
		h.song.Meter = m
		h.meter = true
	case 'L':
		h.length = value
	case 'Q':
		h.tempo = value
	case 'V':
		name := voiceName(value)
		if name == "" {
			return grammarErr(lineNo, nil, "V: needs a voice name")
		}
		for _, v := range h.voices {
			if v == name {
				return nil
			}
		}
		h.voices = append(h.voices, name)
	case 'w':
		return grammarErr(lineNo, nil, "w: lyrics are not allowed in the header")
	default:
		// informational fields (R:, S:, Z:, ...) carry nothing we play
	}
	return nil
}

// finish applies K: and the fields whose defaults depend on other fields.
func (h *header) finish(lineNo int, keyValue string) error {
	if !h.title {
		return grammarErr(lineNo, nil, "missing T: field")
	}

	var words []string
	for _, w := range strings.Fields(keyValue) {
		if !strings.Contains(w, "=") { // clef=bass and friends
			words = append(words, w)
		}
	}
	key, err := music.LookupKey(strings.Join(words, ""))
	if err != nil {
		return grammarErr(lineNo, err, "unknown key %q", keyValue)
	}
	h.song.Key = key

	if !h.meter {
		h.song.Meter = music.DefaultMeter
	}
	h.song.DefaultLength = music.DefaultLength(h.song.Meter)
	if h.length != "" {
		l, err := parseStrictFraction(h.length)
		if err != nil {
			return grammarErr(lineNo, err, "invalid default length %q", h.length)
		}
		h.song.DefaultLength = l
	}
	h.song.Tempo = music.Tempo{Beat: h.song.DefaultLength, BPM: music.DefaultTempoBPM}
	if h.tempo != "" {
		t, err := parseTempo(h.tempo, h.song.DefaultLength)
		if err != nil {
			return grammarErr(lineNo, err, "invalid tempo %q", h.tempo)
		}
		h.song.Tempo = t
	}
	return nil
}

// voiceName takes the first word of a V: value; the rest are properties.
func voiceName(value string) string {
	f := strings.Fields(value)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
