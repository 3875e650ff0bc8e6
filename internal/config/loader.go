package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "platformer.yaml"

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := Parse(defaultPlatformerYAML)
	if err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ActivePath returns the file LoadPlatformer would read, or "" when only the
// embedded default applies.
func ActivePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Parse decodes YAML on top of the defaults and normalizes the result.
func Parse(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize repairs values that would break generation or physics:
// swapped ranges, probabilities outside [0,1] and non-positive sizes.
func (c *PlatformerConfig) Normalize() {
	def := DefaultPlatformerConfig()
	w := &c.World

	if w.GapMin > w.GapMax {
		w.GapMin, w.GapMax = w.GapMax, w.GapMin
	}
	if w.WidthMin > w.WidthMax {
		w.WidthMin, w.WidthMax = w.WidthMax, w.WidthMin
	}
	if w.WidthMin <= 0 {
		w.WidthMin, w.WidthMax = def.World.WidthMin, def.World.WidthMax
	}
	if w.RiseMax < 0 {
		w.RiseMax = -w.RiseMax
	}
	w.CoinChance = clampF(w.CoinChance, 0, 1)
	w.EnemyChance = clampF(w.EnemyChance, 0, 1)
	if w.InitialPlatforms < 0 {
		w.InitialPlatforms = 0
	}

	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		c.Player.Width, c.Player.Height = def.Player.Width, def.Player.Height
	}
	if c.Viewport.CellWidth <= 0 || c.Viewport.CellHeight <= 0 {
		c.Viewport = def.Viewport
	}
	if c.Scoring.SurvivalIntervalMS <= 0 {
		c.Scoring.SurvivalIntervalMS = def.Scoring.SurvivalIntervalMS
	}
	if c.Rules.BlinkMS <= 0 {
		c.Rules.BlinkMS = def.Rules.BlinkMS
	}
	if len(c.Difficulty.Presets) == 0 {
		c.Difficulty.Presets = def.Difficulty.Presets
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// ApplyPreset records the chosen preset as the config default.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Default = string(preset)
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
