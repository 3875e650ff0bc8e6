// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import "time"

// PlatformerConfig contains all tuning for the platformer.
// Distances are world units, velocities are units per tick.
type PlatformerConfig struct {
	Physics    Physics          `yaml:"physics"`
	Player     Player           `yaml:"player"`
	World      World            `yaml:"world"`
	Rules      Rules            `yaml:"rules"`
	Scoring    Scoring          `yaml:"scoring"`
	Viewport   Viewport         `yaml:"viewport"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines movement parameters.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`
	MoveSpeed   float64 `yaml:"move_speed"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	StompBounce float64 `yaml:"stomp_bounce"`
}

// Player defines the player's spawn point and size.
type Player struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// World defines procedural platform generation.
type World struct {
	FirstPlatformWidth float64 `yaml:"first_platform_width"`
	FirstPlatformLift  float64 `yaml:"first_platform_lift"` // distance above the viewport bottom
	InitialPlatforms   int     `yaml:"initial_platforms"`
	GapMin             float64 `yaml:"gap_min"`
	GapMax             float64 `yaml:"gap_max"`
	RiseMax            float64 `yaml:"rise_max"` // max vertical offset either way
	BandTop            float64 `yaml:"band_top"`
	BandBottomMargin   float64 `yaml:"band_bottom_margin"`
	WidthMin           float64 `yaml:"width_min"`
	WidthMax           float64 `yaml:"width_max"`
	PlatformThickness  float64 `yaml:"platform_thickness"`
	CoinChance         float64 `yaml:"coin_chance"`
	CoinRadius         float64 `yaml:"coin_radius"`
	CoinLift           float64 `yaml:"coin_lift"`
	EnemyChance        float64 `yaml:"enemy_chance"`
	EnemyWidth         float64 `yaml:"enemy_width"`
	EnemyHeight        float64 `yaml:"enemy_height"`
	EnemyInset         float64 `yaml:"enemy_inset"`
	EnemyStep          float64 `yaml:"enemy_step"`
	PruneBehind        bool    `yaml:"prune_behind"`
}

// Rules defines damage and respawn behaviour.
type Rules struct {
	InvincibilityMS int     `yaml:"invincibility_ms"`
	BlinkMS         int     `yaml:"blink_ms"`
	RespawnLead     float64 `yaml:"respawn_lead"`     // min distance past the camera
	RespawnOffsetX  float64 `yaml:"respawn_offset_x"` // from the platform's left edge
	RespawnDrop     float64 `yaml:"respawn_drop"`     // height above the platform top
}

// Invincibility returns the invincibility window as a duration.
func (r Rules) Invincibility() time.Duration {
	return time.Duration(r.InvincibilityMS) * time.Millisecond
}

// Blink returns the sprite blink period while invincible.
func (r Rules) Blink() time.Duration {
	return time.Duration(r.BlinkMS) * time.Millisecond
}

// Scoring defines point awards.
type Scoring struct {
	Coin               int `yaml:"coin"`
	Stomp              int `yaml:"stomp"`
	Survival           int `yaml:"survival"`
	SurvivalIntervalMS int `yaml:"survival_interval_ms"`
}

// SurvivalInterval returns how often the survival bonus is paid.
func (s Scoring) SurvivalInterval() time.Duration {
	return time.Duration(s.SurvivalIntervalMS) * time.Millisecond
}

// Viewport maps terminal cells to world units.
type Viewport struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// DifficultyConfig defines presets and how scroll speed ramps up.
type DifficultyConfig struct {
	Default     string                  `yaml:"default"`
	Presets     map[string]PresetConfig `yaml:"presets"`
	Progression ProgressionConfig       `yaml:"progression"`
}

// PresetConfig is what a difficulty preset decides.
type PresetConfig struct {
	Hearts    int     `yaml:"hearts"`
	BaseSpeed float64 `yaml:"base_speed"`
}

// ProgressionConfig defines how scroll speed grows with survival time.
type ProgressionConfig struct {
	Type          string  `yaml:"type"`            // "time" or "none"
	RampPerSecond float64 `yaml:"ramp_per_second"` // speed added per survived second
	MaxSpeed      float64 `yaml:"max_speed"`       // 0 means uncapped
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the selectable presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
