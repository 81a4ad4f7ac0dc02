package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go-abcplay/music"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output.PortName = "FluidSynth"
	cfg.Output.TempoScale = 1.5
	cfg.SetVoice(VoiceConfig{Name: "1", Instrument: "flute"})
	cfg.SetVoice(VoiceConfig{Name: "2", Instrument: "cello"})
	cfg.SetVoice(VoiceConfig{Name: "1", Instrument: "violin"})
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "output:\n  port: Synth\nvoices:\n  - name: melody\n    instrument: flute\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.PortName != "Synth" || cfg.Output.PPQ != DefaultPPQ || cfg.Output.Velocity != DefaultVelocity {
		t.Errorf("output = %+v", cfg.Output)
	}
	if got := cfg.Instrument("melody"); got != music.Flute {
		t.Errorf("Instrument(melody) = %v, want flute", got)
	}
	if got := cfg.Instrument("bass"); got != music.Piano {
		t.Errorf("Instrument(bass) = %v, want default piano", got)
	}
}

func TestLoadRejectsUnknownInstrument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("defaultInstrument: kazoo-deluxe\n"), 0644)

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "defaultInstrument") {
		t.Errorf("err = %v, want defaultInstrument error", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("output: [\n"), 0644)
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}
