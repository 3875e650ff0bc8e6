package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the built-in configuration.
// It mirrors defaults/platformer.yaml and is used when the YAML cannot be parsed.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: Physics{
			Gravity:     0.5,
			MoveSpeed:   4,
			JumpImpulse: -16,
			StompBounce: -10,
		},
		Player: Player{
			StartX: 300,
			StartY: 100,
			Width:  40,
			Height: 50,
		},
		World: World{
			FirstPlatformWidth: 800,
			FirstPlatformLift:  100,
			InitialPlatforms:   8,
			GapMin:             60,
			GapMax:             180,
			RiseMax:            80,
			BandTop:            250,
			BandBottomMargin:   150,
			WidthMin:           100,
			WidthMax:           300,
			PlatformThickness:  40,
			CoinChance:         0.6,
			CoinRadius:         8,
			CoinLift:           30,
			EnemyChance:        0.3,
			EnemyWidth:         30,
			EnemyHeight:        40,
			EnemyInset:         10,
			EnemyStep:          1,
			PruneBehind:        true,
		},
		Rules: Rules{
			InvincibilityMS: 2000,
			BlinkMS:         100,
			RespawnLead:     150,
			RespawnOffsetX:  20,
			RespawnDrop:     150,
		},
		Scoring: Scoring{
			Coin:               10,
			Stomp:              50,
			Survival:           1,
			SurvivalIntervalMS: 1000,
		},
		Viewport: Viewport{
			CellWidth:  10,
			CellHeight: 20,
		},
		Difficulty: DifficultyConfig{
			Default: string(DifficultyNormal),
			Presets: map[string]PresetConfig{
				string(DifficultyEasy):   {Hearts: 5, BaseSpeed: 1.5},
				string(DifficultyNormal): {Hearts: 3, BaseSpeed: 2},
				string(DifficultyHard):   {Hearts: 1, BaseSpeed: 3},
				string(DifficultyFixed):  {Hearts: 3, BaseSpeed: 2},
			},
			Progression: ProgressionConfig{
				Type:          "time",
				RampPerSecond: 0.05,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `config dump`.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
