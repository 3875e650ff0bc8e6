package platformer

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// fakeClock advances only when told to.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(t *testing.T, difficulty string, seed int64) (*Game, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: epoch}
	g := New()
	g.SetClock(clock.Now)
	g.SetConfig(config.DefaultPlatformerConfig())
	g.Reset(core.RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       seed,
		Difficulty: difficulty,
	})
	return g, clock
}

func TestGameDeterminism(t *testing.T) {
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		inputSequence[i].Set(core.ActionRight)
		if i%40 == 0 {
			inputSequence[i].Set(core.ActionJump)
		}
	}

	run := func() Scene {
		g, clock := newTestGame(t, "normal", 12345)
		for _, in := range inputSequence {
			clock.Advance(frame)
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Scene()
	}

	s1, s2 := run(), run()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("Determinism failed: scenes differ\n%+v\n%+v", s1.HUD, s2.HUD)
	}
}

func TestGameReset(t *testing.T) {
	g, clock := newTestGame(t, "", 42)

	for i := 0; i < 50; i++ {
		clock.Advance(frame)
		in := core.NewInputFrame()
		in.Set(core.ActionRight)
		g.Step(in)
	}
	if g.Session().CameraX == 0 {
		t.Fatal("camera did not move")
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42, Difficulty: "hard"})

	st := g.State()
	if st.Score != 0 || st.GameOver || st.Elapsed != 0 {
		t.Errorf("State after reset = %+v", st)
	}
	if st.Hearts != 1 || st.Difficulty != "hard" {
		t.Errorf("Hearts = %d Difficulty = %q, want 1 hard", st.Hearts, st.Difficulty)
	}
	if g.Session().CameraX != 0 {
		t.Errorf("CameraX = %v after reset", g.Session().CameraX)
	}
}

func TestGameViewportFromScreen(t *testing.T) {
	g, _ := newTestGame(t, "", 1)
	s := g.Session()

	if s.ViewportW != 800 || s.ViewportH != 480 {
		t.Errorf("viewport = %vx%v, want 800x480", s.ViewportW, s.ViewportH)
	}
}

func TestGameUnknownDifficultyFallsBack(t *testing.T) {
	g, _ := newTestGame(t, "nightmare", 1)
	if st := g.State(); st.Difficulty != "normal" || st.Hearts != 3 {
		t.Errorf("State = %+v, want normal with 3 hearts", st)
	}
}

func TestGamePauseStopsClock(t *testing.T) {
	g, clock := newTestGame(t, "", 1)

	clock.Advance(time.Second)
	g.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if !g.Step(pause).State.Paused {
		t.Fatal("not paused")
	}

	camera := g.Session().CameraX
	clock.Advance(10 * time.Second)
	res := g.Step(core.NewInputFrame())
	if res.State.Elapsed != time.Second {
		t.Errorf("Elapsed while paused = %v, want 1s", res.State.Elapsed)
	}
	if g.Session().CameraX != camera {
		t.Error("camera moved while paused")
	}

	g.Step(pause)
	clock.Advance(time.Second)
	res = g.Step(core.NewInputFrame())
	if res.State.Paused {
		t.Error("still paused")
	}
	if res.State.Elapsed != 2*time.Second {
		t.Errorf("Elapsed after resume = %v, want 2s", res.State.Elapsed)
	}
}

func TestGameRender(t *testing.T) {
	g, clock := newTestGame(t, "", 1)
	clock.Advance(frame)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Time:") || !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD row = %q", hud)
	}
	if !strings.Contains(screen.String(), string(PlatformTopChar)) {
		t.Error("no platform drawn")
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g, clock := newTestGame(t, "hard", 1)
	g.Session().Player.Y = 10000

	clock.Advance(frame)
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected game over")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over message not drawn")
	}

	// Steps after game over change nothing
	clock.Advance(time.Minute)
	if st := g.Step(core.NewInputFrame()).State; st.Elapsed != res.State.Elapsed {
		t.Errorf("Elapsed moved after game over: %v vs %v", st.Elapsed, res.State.Elapsed)
	}
}
