package lyric

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// drain calls Next n times and records what came out, "" for held notes.
func drain(g *Generator, n int) []string {
	var out []string
	for i := 0; i < n; i++ {
		l, ok := g.Next()
		if !ok {
			out = append(out, "")
			continue
		}
		out = append(out, l.Syllable)
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"hi__ go", []string{"hi", "_", "_", " ", "go"}},
		{"Mon-to to-w-n", []string{"Mon", "-", "to", " ", "to", "-", "w", "-", "n"}},
		{"a | b", []string{"a", " ", "|", " ", "b"}},
		{`up\-beat of~the`, []string{`up\-beat`, " ", "of~the"}},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		got, err := Split(tt.line)
		if err != nil {
			t.Fatalf("Split(%q): %v", tt.line, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"of~the":   "of the",
		`up\-beat`: "up-beat",
		"|":        "|",
		"_":        "_",
		" ":        " ",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGeneratorSyllables(t *testing.T) {
	line := "I'll go down to Mon-to to-w-n"
	g := NewGenerator()
	g.LoadLyrics(MustSplit(line))

	if g.Line() != line {
		t.Fatalf("Line() = %q, want %q", g.Line(), line)
	}

	want := []struct {
		syllable string
		start    int
	}{
		{"I'll", 0}, {"go", 5}, {"down", 8}, {"to", 13},
		{"Mon", 16}, {"to", 20}, {"to", 23}, {"w", 26}, {"n", 28},
	}
	for i, w := range want {
		l, ok := g.Next()
		if !ok {
			t.Fatalf("note %d: no lyric", i)
		}
		if l.Kind != Sung {
			t.Fatalf("note %d: kind = %v, want Sung", i, l.Kind)
		}
		if l.Syllable != w.syllable || len(l.Prefix) != w.start {
			t.Errorf("note %d: got %q at %d, want %q at %d", i, l.Syllable, len(l.Prefix), w.syllable, w.start)
		}
		if l.String() != line {
			t.Errorf("note %d: String() = %q, want whole line", i, l.String())
		}
	}
}

func TestGeneratorHold(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("hi__ go"))

	l, ok := g.Next()
	if !ok {
		t.Fatal("first note: no lyric")
	}
	want := NewSung("", "hi__", " go")
	if l != want {
		t.Errorf("first note = %+v, want %+v", l, want)
	}

	if got := drain(g, 3); !cmp.Equal(got, []string{"", "", "go"}) {
		t.Errorf("after hi = %q, want two held notes then go", got)
	}
}

func TestGeneratorHighlightStopsAtLastHold(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("a_ _ b"))

	l, _ := g.Next()
	if l.Syllable != "a_ _" || l.Suffix != " b" {
		t.Errorf("got syllable %q suffix %q, want %q and %q", l.Syllable, l.Suffix, "a_ _", " b")
	}
	if got := drain(g, 3); !cmp.Equal(got, []string{"", "", "b"}) {
		t.Errorf("after a = %q", got)
	}
}

func TestGeneratorBarline(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("a | b"))
	if got := g.Line(); got != "a | b" {
		t.Errorf("Line() = %q, want %q", got, "a | b")
	}

	if l, _ := g.Next(); l.Syllable != "a" {
		t.Fatalf("first = %q, want a", l.Syllable)
	}

	l, ok := g.Next()
	if !ok {
		t.Fatal("barline: expected a holding lyric")
	}
	if l.Kind != Holding || l.String() != "a | b" || l.Syllable != "" {
		t.Errorf("barline lyric = %+v", l)
	}
	if _, ok := g.Next(); ok {
		t.Error("repeated holding lyric was not suppressed")
	}

	g.LoadNextMeasure()
	l, ok = g.Next()
	if !ok || l.Syllable != "b" || l.Prefix != "a | " {
		t.Errorf("after LoadNextMeasure = %+v, %v", l, ok)
	}
}

func TestGeneratorLoadNextMeasureNoop(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("one two"))
	g.LoadNextMeasure()
	g.LoadNextMeasure()
	if got := drain(g, 2); !cmp.Equal(got, []string{"one", "two"}) {
		t.Errorf("got %q", got)
	}
}

func TestGeneratorChord(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("la di"))

	g.SetChordSize(3)
	if got := drain(g, 4); !cmp.Equal(got, []string{"la", "", "", "di"}) {
		t.Errorf("chord lyrics = %q", got)
	}
}

func TestGeneratorLeadingHyphen(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("-la"))
	if got := drain(g, 2); !cmp.Equal(got, []string{"-", "la"}) {
		t.Errorf("got %q", got)
	}
}

func TestGeneratorDoubleHyphen(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("a--b"))
	if got := drain(g, 3); !cmp.Equal(got, []string{"a", "-", "b"}) {
		t.Errorf("got %q", got)
	}
}

func TestGeneratorInstrumental(t *testing.T) {
	g := NewGenerator()

	l, ok := g.Next()
	if !ok || !l.IsInstrumental() {
		t.Fatalf("first = %+v, %v; want instrumental", l, ok)
	}
	if _, ok := g.Next(); ok {
		t.Error("second instrumental lyric was not suppressed")
	}

	g.LoadLyrics(MustSplit("la"))
	if l, _ := g.Next(); l.Syllable != "la" {
		t.Errorf("after LoadLyrics = %+v", l)
	}

	g.LoadNoLyrics()
	if l, ok := g.Next(); !ok || !l.IsInstrumental() {
		t.Errorf("after LoadNoLyrics = %+v, %v", l, ok)
	}
}

func TestGeneratorPastEnd(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("la"))
	g.Next()

	l, ok := g.Next()
	if !ok || l.Kind != Holding || l.String() != "la" {
		t.Errorf("past end = %+v, %v", l, ok)
	}
	if _, ok := g.Next(); ok {
		t.Error("expected duplicate suppression past end")
	}
}

func TestGeneratorReloadSameLine(t *testing.T) {
	g := NewGenerator()
	g.LoadLyrics(MustSplit("la"))
	g.Next()
	g.LoadLyrics(MustSplit("la"))
	if _, ok := g.Next(); !ok {
		t.Error("first syllable of a reloaded line was suppressed")
	}
}
