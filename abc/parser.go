// Package abc parses a subset of ABC notation into a music.Song.
package abc

import (
	"fmt"
	"os"
	"strings"

	"go-abcplay/debug"
	"go-abcplay/lyric"
	"go-abcplay/music"
)

// Parser turns ABC source text into a Song. The zero value is ready to use.
type Parser struct {
	// Instrument picks the instrument for each voice; nil plays everything
	// on the piano.
	Instrument func(voice string) music.Instrument
}

// Parse parses text with the default Parser.
func Parse(text string) (*music.Song, error) {
	var p Parser
	return p.Parse(text)
}

// ParseFile reads and parses an .abc file with the default Parser.
func ParseFile(path string) (*music.Song, error) {
	var p Parser
	return p.ParseFile(path)
}

// ParseFile reads and parses an .abc file.
func (p *Parser) ParseFile(path string) (*music.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.Parse(string(data))
}

// Parse returns a complete Song or a *ParseError, never a partial result.
func (p *Parser) Parse(text string) (*music.Song, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	song, declared, start, err := parseHeader(lines)
	if err != nil {
		return nil, err
	}

	b := &body{
		song:       song,
		declared:   declared,
		voices:     make(map[string]*voice),
		instrument: p.instrument,
	}
	if err := b.run(lines, start); err != nil {
		return nil, err
	}
	b.finish()

	debug.Log("abc", "parsed song", "title", song.Title, "voices", len(song.VoiceNames), "beats", song.Duration())
	return song, nil
}

func (p *Parser) instrument(name string) music.Instrument {
	if p.Instrument == nil {
		return music.Piano
	}
	return p.Instrument(name)
}

type body struct {
	song       *music.Song
	declared   []string
	voices     map[string]*voice
	current    *voice
	instrument func(string) music.Instrument
}

func (b *body) voice(name string) *voice {
	v, ok := b.voices[name]
	if !ok {
		v = newVoice(name, b.song.Key, b.instrument(name))
		b.voices[name] = v
	}
	return v
}

func (b *body) isDeclared(name string) bool {
	for _, d := range b.declared {
		if d == name {
			return true
		}
	}
	return false
}

// bodyField reports whether line is a field rather than music. Lines such
// as "C:|" begin with a note letter and are music.
func bodyField(line string) (byte, string, bool) {
	letter, value, ok := field(line)
	if !ok || strings.IndexByte("ABCDEFGabcdefgzx", letter) >= 0 {
		return 0, "", false
	}
	return letter, value, true
}

func (b *body) run(lines []string, start int) error {
	// music before any V: goes to the first declared voice
	if len(b.declared) > 0 {
		b.current = b.voice(b.declared[0])
	} else {
		b.current = b.voice("")
	}

	for i := start; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" || isComment(line) {
			continue
		}

		if letter, value, ok := bodyField(line); ok {
			switch letter {
			case 'V':
				name := voiceName(value)
				if !b.isDeclared(name) {
					return semanticErr(lineNo, "voice %q was never declared", name)
				}
				b.current = b.voice(name)
			case 'w':
				return grammarErr(lineNo, nil, "lyric line without a music line above it")
			default:
				return grammarErr(lineNo, nil, "field %c: is not allowed in the tune body", letter)
			}
			continue
		}

		ml, err := musicParser.ParseString("", line)
		if err != nil {
			return grammarErr(lineNo, err, "malformed music line")
		}

		var words []string
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if letter, value, ok := bodyField(next); ok && letter == 'w' {
				i++
				if words, err = lyric.Split(value); err != nil {
					return grammarErr(i+1, err, "malformed lyric line")
				}
				if words == nil {
					words = []string{}
				}
			}
		}

		if err := b.current.line(ml, words); err != nil {
			return grammarErr(lineNo, err, "voice %q", b.current.name)
		}
	}
	return nil
}

func (b *body) finish() {
	names := b.declared
	if len(names) == 0 {
		names = []string{""}
	}
	b.song.VoiceNames = names
	b.song.Voices = make(map[string]music.Music, len(names))
	for _, name := range names {
		if v, ok := b.voices[name]; ok {
			b.song.Voices[name] = v.music()
		} else {
			b.song.Voices[name] = music.Empty
		}
	}
}
