// Package registry holds the minigame catalog. Each game package registers
// its Definition from init(), so hosts discover games without hardcoded
// imports beyond a blank import.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/papuso/internal/engine"
)

// ErrUnknownGame is returned when an id has no registered definition.
var ErrUnknownGame = errors.New("registry: unknown game")

// Definition describes one minigame and how to start it.
type Definition struct {
	ID          string // stable id used by the CLI, config and history
	Name        string // display name
	Description string
	Controls    string // one-line control help
	BaseTarget  int    // points needed before it is clamped to the words left
	TickMs      int
	Width       int
	Height      int
	Order       int // catalog position

	// New starts a fresh engine loop for this game.
	New func(opts engine.Options) engine.Runner
}

var (
	defs = make(map[string]Definition)
	mu   sync.RWMutex
)

// Register adds a definition to the registry.
// Panics if the id is empty or already registered.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()

	if def.ID == "" || def.New == nil {
		panic("registry: definition needs an id and a constructor")
	}
	if _, exists := defs[def.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", def.ID))
	}
	defs[def.ID] = def
}

// List returns every definition in catalog order.
func List() []Definition {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Definition, 0, len(defs))
	for _, d := range defs {
		result = append(result, d)
	}
	Sort(result)
	return result
}

// Sort orders definitions by catalog position, then id.
func Sort(list []Definition) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].ID < list[j].ID
	})
}

// IDs returns every registered id in catalog order.
func IDs() []string {
	list := List()
	ids := make([]string, len(list))
	for i, d := range list {
		ids[i] = d.ID
	}
	return ids
}

// Get looks up a definition by id.
func Get(id string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	d, ok := defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return d, nil
}

// Exists checks if a game with the given id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := defs[id]
	return ok
}

// Pick returns a uniformly random definition from list.
// The second result is false when list is empty.
func Pick(rng *rand.Rand, list []Definition) (Definition, bool) {
	if len(list) == 0 {
		return Definition{}, false
	}
	return list[rng.Intn(len(list))], true
}
