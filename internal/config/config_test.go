package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	def := DefaultPlatformerConfig()

	if cfg.Physics != def.Physics {
		t.Errorf("physics differ: yaml=%+v hardcoded=%+v", cfg.Physics, def.Physics)
	}
	if cfg.World != def.World {
		t.Errorf("world differ: yaml=%+v hardcoded=%+v", cfg.World, def.World)
	}
	if cfg.Rules != def.Rules || cfg.Scoring != def.Scoring || cfg.Player != def.Player {
		t.Error("rules, scoring or player differ between YAML and hardcoded defaults")
	}
	for name, p := range def.Difficulty.Presets {
		if cfg.Difficulty.Presets[name] != p {
			t.Errorf("preset %s: yaml=%+v hardcoded=%+v", name, cfg.Difficulty.Presets[name], p)
		}
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.8\nscoring:\n  coin: 25\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.8 || cfg.Scoring.Coin != 25 {
		t.Errorf("overrides not applied: gravity=%v coin=%d", cfg.Physics.Gravity, cfg.Scoring.Coin)
	}
	// Untouched values keep their defaults
	if cfg.Physics.JumpImpulse != -16 || cfg.Scoring.Stomp != 50 {
		t.Errorf("defaults lost: jump=%v stomp=%d", cfg.Physics.JumpImpulse, cfg.Scoring.Stomp)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	if _, err := LoadPlatformer(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPlatformer(path)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Error("failed load should still return usable defaults")
	}
}

func TestActivePathPrefersCustom(t *testing.T) {
	if got := ActivePath("/tmp/mine.yaml"); got != "/tmp/mine.yaml" {
		t.Errorf("ActivePath = %q", got)
	}

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	if got := ActivePath(""); got != "" {
		t.Errorf("ActivePath with no files = %q, want embedded", got)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", ConfigFile), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := ActivePath(""); got != filepath.Join("configs", ConfigFile) {
		t.Errorf("ActivePath = %q, want the local configs file", got)
	}
}

func TestNormalize(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	cfg.World.GapMin, cfg.World.GapMax = 200, 50
	cfg.World.CoinChance = 1.7
	cfg.World.EnemyChance = -1
	cfg.Viewport.CellWidth = 0
	cfg.Normalize()

	if cfg.World.GapMin != 50 || cfg.World.GapMax != 200 {
		t.Errorf("gap range not swapped: %v..%v", cfg.World.GapMin, cfg.World.GapMax)
	}
	if cfg.World.CoinChance != 1 || cfg.World.EnemyChance != 0 {
		t.Errorf("chances not clamped: coin=%v enemy=%v", cfg.World.CoinChance, cfg.World.EnemyChance)
	}
	if cfg.Viewport.CellWidth != 10 {
		t.Errorf("viewport not repaired: %+v", cfg.Viewport)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDifficultyManagerPresets(t *testing.T) {
	cfg := DefaultPlatformerConfig().Difficulty

	tests := []struct {
		preset    DifficultyPreset
		hearts    int
		baseSpeed float64
	}{
		{DifficultyEasy, 5, 1.5},
		{DifficultyNormal, 3, 2},
		{DifficultyHard, 1, 3},
		{"", 3, 2},      // config default
		{"bogus", 3, 2}, // falls back to normal
	}
	for _, tc := range tests {
		d := NewDifficultyManager(cfg, tc.preset)
		if d.Hearts() != tc.hearts || d.BaseSpeed() != tc.baseSpeed {
			t.Errorf("preset %q: hearts=%d speed=%v, want %d/%v", tc.preset, d.Hearts(), d.BaseSpeed(), tc.hearts, tc.baseSpeed)
		}
	}
}

func TestDifficultyScrollSpeed(t *testing.T) {
	cfg := DefaultPlatformerConfig().Difficulty

	normal := NewDifficultyManager(cfg, DifficultyNormal)
	if got := normal.ScrollSpeed(0); got != 2 {
		t.Errorf("speed at 0s = %v, want 2", got)
	}
	// 2 + t/20
	if got := normal.ScrollSpeed(40 * time.Second); got != 4 {
		t.Errorf("speed at 40s = %v, want 4", got)
	}

	fixed := NewDifficultyManager(cfg, DifficultyFixed)
	if fixed.IsEnabled() {
		t.Error("fixed preset should disable progression")
	}
	if got := fixed.ScrollSpeed(40 * time.Second); got != 2 {
		t.Errorf("fixed speed at 40s = %v, want 2", got)
	}

	cfg.Progression.MaxSpeed = 3
	capped := NewDifficultyManager(cfg, DifficultyNormal)
	if got := capped.ScrollSpeed(time.Hour); got != 3 {
		t.Errorf("capped speed = %v, want 3", got)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	ApplyPreset(&cfg, "")
	if cfg.Difficulty.Default != "normal" {
		t.Errorf("empty preset changed default to %q", cfg.Difficulty.Default)
	}
	ApplyPreset(&cfg, DifficultyHard)
	if NewDifficultyManager(cfg.Difficulty, "").Hearts() != 1 {
		t.Error("applied preset should become the default")
	}
}
