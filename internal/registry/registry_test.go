package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string { return s.id }
func (s *stubGame) Title() string { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Render(*core.Screen) {}
func (s *stubGame) State() core.GameState { return core.GameState{} }
func (s *stubGame) Step(float64, core.MultiInputFrame) core.StepResult {
	return core.StepResult{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("registered game not found")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID = %q, expected stub-a", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub-a" {
			found = true
			if info.Title != "Stub stub-a" {
				t.Errorf("title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() does not include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does-not-exist")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration must panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}

func TestListSorted(t *testing.T) {
	Register("stub-z", func() Game { return &stubGame{id: "stub-z"} })
	Register("stub-m", func() Game { return &stubGame{id: "stub-m"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
