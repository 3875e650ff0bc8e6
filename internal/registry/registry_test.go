package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func stub(id string) Factory {
	return func() Game { return &stubGame{id: id} }
}

func TestRegistryCreate(t *testing.T) {
	r := New()
	r.Register("b", stub("b"))
	r.Register("a", stub("a"))

	list := r.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].Title != "Stub b" {
		t.Errorf("List = %+v", list)
	}

	g, err := r.Create("a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "a" {
		t.Errorf("ID = %q, want a", g.ID())
	}

	if _, err := r.Create("missing"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(missing) error = %v, want ErrUnknownGame", err)
	}
	if !r.Exists("b") || r.Exists("missing") {
		t.Error("Exists mismatch")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", stub("a"))

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	r.Register("a", stub("a"))
}
