package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-abcplay/lyric"
	"go-abcplay/sequencer"
)

const tune = `X:1
T:Three Notes
C:Nobody
M:4/4
L:1/4
Q:1/4=120
K:C
CDE z|
w:a b c
`

func writeTune(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tune.abc")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command with a throwaway config file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	lyricsHTML = false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", writeTune(t, tune))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"Three Notes" by Nobody`) {
		t.Errorf("summary missing title:\n%s", out)
	}
	if !strings.Contains(out, "3 notes") || !strings.Contains(out, "3 sung") {
		t.Errorf("voice line wrong:\n%s", out)
	}
}

func TestCheckCommandReportsErrors(t *testing.T) {
	bad := writeTune(t, "T:No Index\nK:C\nC|\n")
	out, err := run(t, "check", bad)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, "line 1") {
		t.Errorf("error should name the line:\n%s", out)
	}
}

func TestLyricsCommand(t *testing.T) {
	out, err := run(t, "lyrics", writeTune(t, tune))
	if err != nil {
		t.Fatalf("lyrics: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	for i, want := range []string{"[a]", "[b]", "[c]"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "0:00") {
		t.Errorf("first line should start at 0:00: %q", lines[0])
	}
}

func TestExportCommand(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "tune.mid")
	if _, err := run(t, "export", writeTune(t, tune), dst); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Errorf("not a midi file: % x", data[:min(len(data), 8)])
	}
	if !bytes.Contains(data, []byte("Three Notes")) {
		t.Error("track name missing")
	}
}

func TestPrintSignal(t *testing.T) {
	var buf bytes.Buffer
	printSignal(&buf, sequencer.Signal{Kind: sequencer.LyricChange, Lyric: lyric.NewSung("hello ", "big", " world")})
	if got, want := buf.String(), "hello [big] world\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
