package platformer

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestLandingOnPlatform(t *testing.T) {
	s := newTestSession(t, "")
	standOnFirstPlatform(s, 100)
	top := s.Platforms[0].Y

	// Falling, bottom 5 units above the platform
	s.Player.Y = top - s.Player.H - 5
	s.Player.DY = 6
	s.Player.OnGround = false

	s.Tick(Input{}, epoch.Add(frame))

	if s.Player.Y != top-s.Player.H {
		t.Errorf("Y = %v, want %v", s.Player.Y, top-s.Player.H)
	}
	if s.Player.DY != 0 || !s.Player.OnGround {
		t.Errorf("DY = %v OnGround = %v, want 0 true", s.Player.DY, s.Player.OnGround)
	}
}

func TestJumpingUpThroughPlatform(t *testing.T) {
	s := newTestSession(t, "")
	standOnFirstPlatform(s, 100)
	top := s.Platforms[0].Y

	s.Player.Y = top + 10
	s.Player.DY = -10
	s.Player.OnGround = false

	s.Tick(Input{}, epoch.Add(frame))

	if want := top + 10 - 9.5; s.Player.Y != want {
		t.Errorf("Y = %v, want %v", s.Player.Y, want)
	}
	if s.Player.OnGround {
		t.Error("OnGround = true while moving up through a platform")
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	s := newTestSession(t, "")
	standOnFirstPlatform(s, 100)

	events := s.Tick(Input{Jump: true}, epoch.Add(frame))
	if !hasEvent(events, core.EventJump) {
		t.Fatalf("events = %v, want jump", events)
	}
	if want := -16 + 0.5; s.Player.DY != want {
		t.Errorf("DY = %v, want %v", s.Player.DY, want)
	}

	// Airborne: a second jump does nothing
	events = s.Tick(Input{Jump: true}, epoch.Add(2*frame))
	if hasEvent(events, core.EventJump) {
		t.Error("jumped while airborne")
	}
}

func TestHorizontalMovement(t *testing.T) {
	s := newTestSession(t, "")
	standOnFirstPlatform(s, 100)

	s.Tick(Input{Horizontal: -1}, epoch.Add(frame))
	if s.Player.X != 96 || s.Player.Facing != -1 {
		t.Errorf("X = %v Facing = %d, want 96 -1", s.Player.X, s.Player.Facing)
	}

	s.Tick(Input{}, epoch.Add(2*frame))
	if s.Player.X != 96 || s.Player.Facing != -1 {
		t.Errorf("X = %v Facing = %d after release", s.Player.X, s.Player.Facing)
	}
}

func TestCoinCollectedOnce(t *testing.T) {
	s := newTestSession(t, config.DifficultyFixed)
	standOnFirstPlatform(s, 100)
	s.Coins = []Coin{{X: s.Player.X + 20, Y: s.Player.Y + 25}}

	events := s.Tick(Input{}, epoch.Add(frame))
	if !hasEvent(events, core.EventCoin) {
		t.Fatalf("events = %v, want coin", events)
	}
	if s.Player.Score != 10 || !s.Coins[0].Collected {
		t.Fatalf("Score = %d Collected = %v", s.Player.Score, s.Coins[0].Collected)
	}

	events = s.Tick(Input{}, epoch.Add(2*frame))
	if hasEvent(events, core.EventCoin) || s.Player.Score != 10 {
		t.Errorf("coin collected twice: score %d", s.Player.Score)
	}
}

func TestStompEnemy(t *testing.T) {
	s := newTestSession(t, "")
	standOnFirstPlatform(s, 100)
	top := s.Platforms[0].Y

	s.Enemies = []Enemy{{ID: 1, X: 100, Y: top - 40, W: 30, H: 40, StartLimit: 0, EndLimit: 770, Dir: 1}}
	// Falling onto the enemy's head
	s.Player.Y = top - 40 - s.Player.H - 2
	s.Player.DY = 5
	s.Player.OnGround = false

	events := s.Tick(Input{}, epoch.Add(frame))

	if !hasEvent(events, core.EventStomp) {
		t.Fatalf("events = %v, want stomp", events)
	}
	if len(s.Enemies) != 0 {
		t.Errorf("len(Enemies) = %d, want 0", len(s.Enemies))
	}
	if s.Player.DY != -10 {
		t.Errorf("DY = %v, want -10", s.Player.DY)
	}
	if s.Player.Score != 50 {
		t.Errorf("Score = %d, want 50", s.Player.Score)
	}
	if s.Hearts != 3 {
		t.Errorf("Hearts = %d, want 3", s.Hearts)
	}
}

func TestSideContactWithEnemyHurts(t *testing.T) {
	s := newTestSession(t, "")
	standOnFirstPlatform(s, 100)
	top := s.Platforms[0].Y

	s.Enemies = []Enemy{{ID: 1, X: 110, Y: top - 40, W: 30, H: 40, StartLimit: 0, EndLimit: 770, Dir: 1}}

	events := s.Tick(Input{}, epoch.Add(frame))

	if !hasEvent(events, core.EventDamage) {
		t.Fatalf("events = %v, want damage", events)
	}
	if s.Hearts != 2 {
		t.Errorf("Hearts = %d, want 2", s.Hearts)
	}
	if len(s.Enemies) != 1 {
		t.Errorf("len(Enemies) = %d, want enemy kept", len(s.Enemies))
	}
}

func TestEnemyPatrolReverses(t *testing.T) {
	s := newTestSession(t, "")
	standOnFirstPlatform(s, 100)

	s.Enemies = []Enemy{{ID: 1, X: 598, Y: 100, W: 30, H: 40, StartLimit: 500, EndLimit: 600, Dir: 1}}

	s.Tick(Input{}, epoch.Add(frame))
	if e := s.Enemies[0]; e.X != 599 || e.Dir != 1 {
		t.Fatalf("enemy = %+v", e)
	}
	s.Tick(Input{}, epoch.Add(2*frame))
	if e := s.Enemies[0]; e.X != 600 || e.Dir != -1 {
		t.Fatalf("enemy at limit = %+v, want reversed", e)
	}
	s.Tick(Input{}, epoch.Add(3*frame))
	if e := s.Enemies[0]; e.X != 599 {
		t.Errorf("enemy after reverse = %+v", e)
	}
}
