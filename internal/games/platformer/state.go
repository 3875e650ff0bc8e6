package platformer

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// expireInvincibility ends the invincibility window once its deadline passed.
func (s *Session) expireInvincibility(now time.Time) {
	if s.invincible && !now.Before(s.InvincibleUntil) {
		s.invincible = false
	}
}

// awardSurvival pays the survival bonus once per whole interval elapsed since
// the last payment, independent of frame rate.
func (s *Session) awardSurvival(now time.Time) {
	interval := s.cfg.Scoring.SurvivalInterval()
	elapsed := now.Sub(s.Player.LastScoreTick)
	if interval <= 0 || elapsed < interval {
		return
	}
	n := elapsed / interval
	s.Player.Score += int(n) * s.cfg.Scoring.Survival
	s.Player.LastScoreTick = s.Player.LastScoreTick.Add(n * interval)
}

// damage costs a heart. The last heart ends the run; otherwise the player is
// moved to a safe platform and becomes invincible for a while.
// Damage while invincible or after game over is ignored.
func (s *Session) damage(now time.Time, emit func(core.Event)) {
	if s.invincible || s.gameOver {
		return
	}

	s.Hearts--
	if s.Hearts <= 0 {
		s.Hearts = 0
		s.gameOver = true
		s.EndedAt = now
		emit(core.EventGameOver)
		return
	}

	s.invincible = true
	s.InvincibleUntil = now.Add(s.cfg.Rules.Invincibility())
	s.respawn()
	emit(core.EventDamage)
}

// respawn drops the player above the first platform comfortably ahead of the
// camera, or the last platform when none is.
func (s *Session) respawn() {
	r := s.cfg.Rules
	target := s.lastPlatform()
	for _, p := range s.Platforms {
		if p.X > s.CameraX+r.RespawnLead {
			target = p
			break
		}
	}

	s.Player.X = target.X + r.RespawnOffsetX
	s.Player.Y = target.Y - r.RespawnDrop
	s.Player.DX = 0
	s.Player.DY = 0
}

// animate advances the sprite animation: slow idle cycle when standing,
// fast run cycle when moving.
func (s *Session) animate() {
	frames, every := idleFrames, idleEvery
	if s.Player.DX != 0 {
		frames, every = runFrames, runEvery
	}

	s.frameTimer++
	if s.frameTimer%every == 0 {
		s.frameIndex = (s.frameIndex + 1) % frames
	}
	if s.frameIndex >= frames {
		s.frameIndex = 0
	}
}
