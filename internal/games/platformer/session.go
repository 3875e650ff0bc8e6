// Package platformer implements a side-scrolling platformer: the camera
// scrolls right at increasing speed, the player jumps between procedurally
// generated platforms, collects coins and stomps patrolling enemies.
//
// All mutable state lives in a Session. The Session is advanced by Tick with
// an explicit input and timestamp, so a run is fully reproducible from a seed,
// an input sequence and a clock.
package platformer

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Rand is the random source used by world generation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Player is the runner controlled by the user.
type Player struct {
	X, Y          float64
	W, H          float64
	DX, DY        float64
	OnGround      bool
	Score         int
	LastScoreTick time.Time // when the survival bonus was last paid
	Facing        int       // -1 left, +1 right
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Platform is a one-way ledge. Only its top edge collides.
type Platform struct {
	X, Y float64
	W    float64
}

// Right returns the x-coordinate of the platform's right edge.
func (p Platform) Right() float64 {
	return p.X + p.W
}

// Coin is a pickup centred on (X, Y).
type Coin struct {
	X, Y      float64
	Collected bool
}

// Enemy patrols a platform between StartLimit and EndLimit.
type Enemy struct {
	ID         int
	X, Y       float64
	W, H       float64
	StartLimit float64
	EndLimit   float64
	Dir        float64
}

// Box returns the enemy's bounding box.
func (e Enemy) Box() core.Box {
	return core.Box{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Phase is the state machine position of a session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseInvincible
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseInvincible:
		return "Invincible"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Input is what the player asks for during one tick.
type Input struct {
	Horizontal int // -1, 0 or +1
	Jump       bool
}

// InputFromFrame converts a platform input frame.
func InputFromFrame(in core.InputFrame) Input {
	return Input{
		Horizontal: in.Horizontal(),
		Jump:       in.Has(core.ActionJump),
	}
}

// Session is one run of the game, from spawn to game over.
type Session struct {
	cfg        config.PlatformerConfig
	difficulty *config.DifficultyManager
	rng        Rand

	ViewportW float64
	ViewportH float64

	Player    Player
	Platforms []Platform // ascending X
	Coins     []Coin
	Enemies   []Enemy

	CameraX     float64
	ScrollSpeed float64

	Hearts          int
	MaxHearts       int
	invincible      bool
	InvincibleUntil time.Time
	gameOver        bool

	StartedAt time.Time
	EndedAt   time.Time

	nextEnemyID int
	frameTimer  int
	frameIndex  int
}

// NewSession starts a fresh run at time now.
// The difficulty preset is resolved once here; empty means the config default.
func NewSession(cfg config.PlatformerConfig, preset config.DifficultyPreset, rng Rand, viewportW, viewportH float64, now time.Time) *Session {
	diff := config.NewDifficultyManager(cfg.Difficulty, preset)

	s := &Session{
		cfg:         cfg,
		difficulty:  diff,
		rng:         rng,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		ScrollSpeed: diff.BaseSpeed(),
		Hearts:      diff.Hearts(),
		MaxHearts:   diff.Hearts(),
		StartedAt:   now,
		Player: Player{
			X:             cfg.Player.StartX,
			Y:             cfg.Player.StartY,
			W:             cfg.Player.Width,
			H:             cfg.Player.Height,
			OnGround:      true,
			LastScoreTick: now,
			Facing:        1,
		},
	}

	s.Platforms = []Platform{{
		X: 0,
		Y: viewportH - cfg.World.FirstPlatformLift,
		W: cfg.World.FirstPlatformWidth,
	}}
	s.seedWorld()

	return s
}

// Config returns the configuration the session was created with.
func (s *Session) Config() config.PlatformerConfig {
	return s.cfg
}

// Difficulty returns the resolved difficulty preset.
func (s *Session) Difficulty() config.DifficultyPreset {
	return s.difficulty.Preset()
}

// GameOver reports whether the run has ended.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Invincible reports whether damage is currently suppressed.
func (s *Session) Invincible() bool {
	return s.invincible
}

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase {
	switch {
	case s.gameOver:
		return PhaseGameOver
	case s.invincible:
		return PhaseInvincible
	default:
		return PhasePlaying
	}
}

// Elapsed returns survival time. It stops counting at game over.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.gameOver {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}

// Tick advances the session by one frame and reports what happened.
// Once the session is over Tick does nothing.
func (s *Session) Tick(in Input, now time.Time) []core.Event {
	if s.gameOver {
		return nil
	}

	var events []core.Event
	emit := func(e core.Event) { events = append(events, e) }

	s.expireInvincibility(now)
	s.awardSurvival(now)
	s.ScrollSpeed = s.difficulty.ScrollSpeed(now.Sub(s.StartedAt))

	prevBottom := s.Player.Y + s.Player.H
	s.movePlayer(in, emit)
	s.CameraX += s.ScrollSpeed
	s.landOnPlatforms(prevBottom)

	if s.outOfBounds() {
		s.damage(now, emit)
		if s.gameOver {
			return events
		}
	}

	s.extendWorld()
	s.collectCoins(emit)
	s.updateEnemies(prevBottom, now, emit)
	if s.gameOver {
		return events
	}

	if s.cfg.World.PruneBehind {
		s.prune()
	}
	s.animate()

	return events
}

// State summarizes the session for the platform layer.
func (s *Session) State(now time.Time) core.GameState {
	return core.GameState{
		Score:      s.Player.Score,
		Hearts:     s.Hearts,
		Elapsed:    s.Elapsed(now),
		GameOver:   s.gameOver,
		Difficulty: string(s.difficulty.Preset()),
	}
}
