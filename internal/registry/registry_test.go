package registry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
)

func stubDefinition(id string, order int) Definition {
	return Definition{
		ID:         id,
		Name:       id,
		BaseTarget: 3,
		Order:      order,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(engine.Variant[int]{
				Initial: func(*rand.Rand) int { return 0 },
				Update: func(s int, _ core.Input) core.Result[int] {
					return core.Result[int]{State: s + 1}
				},
				Render: func(int) []string { return []string{id} },
			}, opts)
		},
	}
}

func TestRegisterAndList(t *testing.T) {
	Register(stubDefinition("zz-test-b", 1001))
	Register(stubDefinition("zz-test-a", 1000))

	if !Exists("zz-test-a") {
		t.Fatal("registered game should exist")
	}

	var ids []string
	for _, d := range List() {
		if d.Order >= 1000 {
			ids = append(ids, d.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "zz-test-a" || ids[1] != "zz-test-b" {
		t.Errorf("List order = %v, expected catalog order", ids)
	}

	d, err := Get("zz-test-a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if r := d.New(engine.Options{Seed: 1}); r.Frame()[0] != "zz-test-a" {
		t.Errorf("New returned a runner with frame %v", r.Frame())
	}
	if ids := IDs(); len(ids) != len(List()) {
		t.Errorf("IDs() = %v, expected one per definition", ids)
	}
}

func TestDuplicateRegisterPanics(t *testing.T) {
	Register(stubDefinition("zz-test-dup", 1002))
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(stubDefinition("zz-test-dup", 1002))
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("no-such-game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Get() error = %v, expected ErrUnknownGame", err)
	}
	if Exists("no-such-game") {
		t.Error("unknown game should not exist")
	}
}

func TestPick(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if _, ok := Pick(rng, nil); ok {
		t.Error("Pick on empty list should report false")
	}

	list := []Definition{stubDefinition("a", 0), stubDefinition("b", 1)}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		d, ok := Pick(rng, list)
		if !ok {
			t.Fatal("Pick should succeed")
		}
		seen[d.ID] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("Pick did not cover the list: %v", seen)
	}
}
