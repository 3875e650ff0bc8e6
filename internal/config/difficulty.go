package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ParsePreset converts a user-supplied name into a preset.
// An empty name returns an empty preset, meaning "use the config default".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// DifficultyManager resolves a preset once and answers hearts and scroll
// speed questions for a session.
type DifficultyManager struct {
	cfg    DifficultyConfig
	preset DifficultyPreset
	values PresetConfig
}

// NewDifficultyManager resolves preset against cfg. An empty or unknown
// preset falls back to cfg.Default, then to normal.
func NewDifficultyManager(cfg DifficultyConfig, preset DifficultyPreset) *DifficultyManager {
	if preset == "" {
		preset = DifficultyPreset(cfg.Default)
	}
	values, ok := cfg.Presets[string(preset)]
	if !ok {
		preset = DifficultyNormal
		values, ok = cfg.Presets[string(preset)]
		if !ok {
			values = DefaultPlatformerConfig().Difficulty.Presets[string(DifficultyNormal)]
		}
	}
	if values.Hearts < 1 {
		values.Hearts = 1
	}

	return &DifficultyManager{
		cfg:    cfg,
		preset: preset,
		values: values,
	}
}

// Preset returns the resolved preset.
func (d *DifficultyManager) Preset() DifficultyPreset {
	return d.preset
}

// Hearts returns the starting (and maximum) number of hearts.
func (d *DifficultyManager) Hearts() int {
	return d.values.Hearts
}

// BaseSpeed returns the scroll speed at time zero.
func (d *DifficultyManager) BaseSpeed() float64 {
	return d.values.BaseSpeed
}

// IsEnabled returns whether speed progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return !IsFixedPreset(d.preset) && d.cfg.Progression.Type == "time"
}

// ScrollSpeed returns the camera speed after surviving elapsed.
// Speed grows linearly with survival time and is capped by max_speed if set.
func (d *DifficultyManager) ScrollSpeed(elapsed time.Duration) float64 {
	speed := d.values.BaseSpeed
	if d.IsEnabled() && elapsed > 0 {
		speed += elapsed.Seconds() * d.cfg.Progression.RampPerSecond
	}
	if d.cfg.Progression.MaxSpeed > 0 {
		speed = math.Min(speed, d.cfg.Progression.MaxSpeed)
	}
	return speed
}
