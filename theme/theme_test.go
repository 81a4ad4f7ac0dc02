package theme

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go-abcplay/lyric"
)

const gpl = `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0	black
255 255 255	white
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(gpl))
	if err != nil {
		t.Fatal(err)
	}
	want := &Palette{Name: "test", Colors: []RGB{{0, 0, 0}, {255, 255, 255}}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("palette (-want +got):\n%s", diff)
	}
	if got := p.Lookup(0.5); got != (RGB{127, 127, 127}) {
		t.Errorf("Lookup(0.5) = %v", got)
	}
	if got := p.Lookup(2); got != (RGB{255, 255, 255}) {
		t.Errorf("Lookup(2) = %v", got)
	}
}

func TestParseGPLErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "GIMP Palette\n",
		"short line":   "GIMP Palette\n10 20\n",
		"out of range": "GIMP Palette\n10 20 300 bad\n",
	}
	for name, in := range tests {
		if _, err := ParseGPL(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	if err != nil || p != Default {
		t.Errorf("LoadOrDefault(\"\") = %v, %v", p, err)
	}
	if _, err := LoadOrDefault("/nonexistent/palette.gpl"); err == nil {
		t.Error("expected error for missing palette file")
	}
}

func TestRenderLyricKeepsText(t *testing.T) {
	th := New(nil)
	if got := th.Hex(1); got != "#f0f921" {
		t.Errorf("Hex(1) = %s", got)
	}
	l := lyric.NewSung("I'll ", "go", " down")
	if got := th.RenderLyric(l); !strings.Contains(got, "go") || !strings.Contains(got, "down") {
		t.Errorf("RenderLyric = %q", got)
	}
	if got := th.RenderLyric(lyric.InstrumentalLyric); !strings.Contains(got, lyric.InstrumentalText) {
		t.Errorf("instrumental = %q", got)
	}
	if got := th.RenderLyric(lyric.Lyric{}); got != "" {
		t.Errorf("no lyric rendered %q", got)
	}
}
