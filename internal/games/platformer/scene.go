package platformer

import (
	"fmt"
	"time"
)

// Sprite animation cadence, in ticks.
const (
	idleFrames = 3
	idleEvery  = 60
	runFrames  = 10
	runEvery   = 10
)

// backgroundParallax is how much slower than the camera the backdrop scrolls.
const backgroundParallax = 4

// Scene is everything a renderer needs to paint one frame.
// It is a copy; mutating it does not affect the session.
type Scene struct {
	CameraX          float64
	BackgroundOffset float64
	ViewportW        float64
	ViewportH        float64
	PlatformDepth    float64
	CoinRadius       float64

	Platforms []Platform
	Coins     []Coin
	Enemies   []Enemy
	Player    PlayerSprite
	HUD       HUD
	Phase     Phase
}

// PlayerSprite is the player's drawable state.
type PlayerSprite struct {
	X, Y    float64
	W, H    float64
	Facing  int
	Moving  bool
	Frame   int
	Visible bool // false during the "off" half of the invincibility blink
}

// HUD holds the heads-up display values.
type HUD struct {
	Hearts      int
	MaxHearts   int
	Elapsed     time.Duration
	Score       int
	ScrollSpeed float64
}

// Text formats the HUD line.
func (h HUD) Text() string {
	return fmt.Sprintf("❤ %d | Time: %.1fs | Score: %d", h.Hearts, h.Elapsed.Seconds(), h.Score)
}

// Scene snapshots the session for rendering at time now.
func (s *Session) Scene(now time.Time) Scene {
	visible := true
	if s.invincible {
		if blink := s.cfg.Rules.Blink(); blink > 0 {
			visible = (now.UnixMilli()/blink.Milliseconds())%2 == 0
		}
	}

	return Scene{
		CameraX:          s.CameraX,
		BackgroundOffset: s.CameraX / backgroundParallax,
		ViewportW:        s.ViewportW,
		ViewportH:        s.ViewportH,
		PlatformDepth:    s.cfg.World.PlatformThickness,
		CoinRadius:       s.cfg.World.CoinRadius,
		Platforms:        append([]Platform(nil), s.Platforms...),
		Coins:            append([]Coin(nil), s.Coins...),
		Enemies:          append([]Enemy(nil), s.Enemies...),
		Player: PlayerSprite{
			X:       s.Player.X,
			Y:       s.Player.Y,
			W:       s.Player.W,
			H:       s.Player.H,
			Facing:  s.Player.Facing,
			Moving:  s.Player.DX != 0,
			Frame:   s.frameIndex,
			Visible: visible,
		},
		HUD: HUD{
			Hearts:      s.Hearts,
			MaxHearts:   s.MaxHearts,
			Elapsed:     s.Elapsed(now),
			Score:       s.Player.Score,
			ScrollSpeed: s.ScrollSpeed,
		},
		Phase: s.Phase(),
	}
}
