package platformer

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// movePlayer applies input, gravity and velocity for one tick.
// Jump is only honoured on the ground.
func (s *Session) movePlayer(in Input, emit func(core.Event)) {
	p := &s.Player
	phys := s.cfg.Physics

	p.DX = float64(in.Horizontal) * phys.MoveSpeed
	if in.Horizontal != 0 {
		p.Facing = in.Horizontal
	}

	if in.Jump && p.OnGround {
		p.DY = phys.JumpImpulse
		p.OnGround = false
		emit(core.EventJump)
	}

	p.DY += phys.Gravity
	p.X += p.DX
	p.Y += p.DY
}

// landOnPlatforms snaps the player onto any platform whose top edge the
// player's bottom crossed downward this tick. Moving up through a platform
// never collides. This is a discrete test: fast enough falls can skip a
// platform entirely.
func (s *Session) landOnPlatforms(prevBottom float64) {
	p := &s.Player
	p.OnGround = false

	for _, plat := range s.Platforms {
		if p.X+p.W <= plat.X || p.X >= plat.Right() {
			continue
		}
		if prevBottom <= plat.Y && p.Y+p.H >= plat.Y {
			p.Y = plat.Y - p.H
			p.DY = 0
			p.OnGround = true
		}
	}
}

// outOfBounds reports whether the camera left the player behind or the
// player fell below the viewport.
func (s *Session) outOfBounds() bool {
	return s.Player.X < s.CameraX || s.Player.Y > s.ViewportH
}

// coinBox is the pickup area of a coin.
func (s *Session) coinBox(c Coin) core.Box {
	r := s.cfg.World.CoinRadius
	return core.Box{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}
}

// collectCoins marks every uncollected coin the player touches.
func (s *Session) collectCoins(emit func(core.Event)) {
	pb := s.Player.Box()
	for i := range s.Coins {
		c := &s.Coins[i]
		if c.Collected || !pb.Overlaps(s.coinBox(*c)) {
			continue
		}
		c.Collected = true
		s.Player.Score += s.cfg.Scoring.Coin
		emit(core.EventCoin)
	}
}

// updateEnemies moves every enemy along its patrol and resolves contact.
// Landing on an enemy from above kills it; any other contact hurts.
// Processing stops as soon as a hit ends the game.
func (s *Session) updateEnemies(prevBottom float64, now time.Time, emit func(core.Event)) {
	step := s.cfg.World.EnemyStep
	kept := s.Enemies[:0]

	for i, e := range s.Enemies {
		e.X += e.Dir * step
		if e.X <= e.StartLimit || e.X >= e.EndLimit {
			e.Dir = -e.Dir
		}

		if s.Player.Box().Overlaps(e.Box()) {
			if s.Player.DY > 0 && prevBottom <= e.Y {
				s.Player.DY = s.cfg.Physics.StompBounce
				s.Player.Score += s.cfg.Scoring.Stomp
				emit(core.EventStomp)
				continue
			}
			s.damage(now, emit)
			if s.gameOver {
				kept = append(kept, e)
				kept = append(kept, s.Enemies[i+1:]...)
				s.Enemies = kept
				return
			}
		}
		kept = append(kept, e)
	}
	s.Enemies = kept
}
