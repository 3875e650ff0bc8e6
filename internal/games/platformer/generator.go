package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// seedWorld lays out the opening stretch: the configured number of platforms,
// then more until the viewport is covered on very wide screens.
func (s *Session) seedWorld() {
	for i := 0; i < s.cfg.World.InitialPlatforms; i++ {
		s.spawnPlatform()
	}
	for s.lastPlatform().Right() < s.CameraX+s.ViewportW {
		s.spawnPlatform()
	}
}

// extendWorld spawns at most one platform per tick, when the rightmost
// platform's right edge has entered the viewport.
func (s *Session) extendWorld() bool {
	if s.lastPlatform().Right() >= s.CameraX+s.ViewportW {
		return false
	}
	s.spawnPlatform()
	return true
}

// spawnPlatform appends one platform after the last, plus an optional coin
// at its midpoint and an optional enemy patrolling its full width.
// Random draws happen in a fixed order: gap, rise, width, coin, enemy.
func (s *Session) spawnPlatform() {
	w := s.cfg.World
	last := s.lastPlatform()

	x := last.Right() + between(s.rng, w.GapMin, w.GapMax)
	y := core.ClampF(last.Y+between(s.rng, -w.RiseMax, w.RiseMax), w.BandTop, s.bandBottom())
	width := between(s.rng, w.WidthMin, w.WidthMax)

	s.Platforms = append(s.Platforms, Platform{X: x, Y: y, W: width})

	if s.rng.Float64() < w.CoinChance {
		s.Coins = append(s.Coins, Coin{X: x + width/2, Y: y - w.CoinLift})
	}
	if s.rng.Float64() < w.EnemyChance {
		s.nextEnemyID++
		s.Enemies = append(s.Enemies, Enemy{
			ID:         s.nextEnemyID,
			X:          x + w.EnemyInset,
			Y:          y - w.EnemyHeight,
			W:          w.EnemyWidth,
			H:          w.EnemyHeight,
			StartLimit: x,
			EndLimit:   x + width - w.EnemyWidth,
			Dir:        1,
		})
	}
}

// bandBottom is the lowest platform top. Short viewports collapse the band
// onto its top edge instead of inverting it.
func (s *Session) bandBottom() float64 {
	bottom := s.ViewportH - s.cfg.World.BandBottomMargin
	if bottom < s.cfg.World.BandTop {
		return s.cfg.World.BandTop
	}
	return bottom
}

func (s *Session) lastPlatform() Platform {
	return s.Platforms[len(s.Platforms)-1]
}

// between draws uniformly from [lo, hi).
func between(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// prune drops everything more than one viewport behind the camera.
// Respawn and collisions only look ahead of the camera, so this never
// changes gameplay. The rightmost platform is always ahead and survives.
func (s *Session) prune() {
	cutoff := s.CameraX - s.ViewportW

	i := 0
	for i < len(s.Platforms)-1 && s.Platforms[i].Right() < cutoff {
		i++
	}
	if i > 0 {
		s.Platforms = append(s.Platforms[:0], s.Platforms[i:]...)
	}

	coins := s.Coins[:0]
	for _, c := range s.Coins {
		if c.X+s.cfg.World.CoinRadius >= cutoff {
			coins = append(coins, c)
		}
	}
	s.Coins = coins

	enemies := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.EndLimit+e.W >= cutoff {
			enemies = append(enemies, e)
		}
	}
	s.Enemies = enemies
}
