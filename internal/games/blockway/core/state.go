package core

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Actor is a mobile entity: the player, a creature, or a pushable block.
type Actor struct {
	ID    int
	Kind  Kind
	Pos   Coord
	Dir   Dir
	Alive bool
}

// Outcome is the terminal state of a level.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "playing"
	}
}

// LevelState is the complete simulation state: the grid, the actor registry,
// auxiliary counters, and the terminal outcome flag. The rule engine produces
// a fresh snapshot every turn; callers never observe partial mutation.
type LevelState struct {
	Grid    *Grid
	Actors  []Actor // indexed by ID
	Turn    uint64
	Gems    int // gems collected so far
	GemsAll int // gems required to win
	Outcome Outcome

	byPos map[Coord]int // live actor ID per cell
}

// NewLevelState builds a state from a grid and initial actors. Actor IDs are
// assigned by slice order. GemsAll is taken from the items on the grid.
func NewLevelState(grid *Grid, actors []Actor) *LevelState {
	s := &LevelState{
		Grid:    grid,
		Actors:  make([]Actor, len(actors)),
		GemsAll: grid.ItemCount(),
		byPos:   make(map[Coord]int, len(actors)),
	}
	for i, a := range actors {
		a.ID = i
		a.Alive = true
		s.Actors[i] = a
		s.byPos[a.Pos] = i
	}
	return s
}

// Clone returns a deep copy of the state.
func (s *LevelState) Clone() *LevelState {
	actors := make([]Actor, len(s.Actors))
	copy(actors, s.Actors)
	byPos := make(map[Coord]int, len(s.byPos))
	for c, id := range s.byPos {
		byPos[c] = id
	}
	return &LevelState{
		Grid:    s.Grid.Clone(),
		Actors:  actors,
		Turn:    s.Turn,
		Gems:    s.Gems,
		GemsAll: s.GemsAll,
		Outcome: s.Outcome,
		byPos:   byPos,
	}
}

// ActorAt returns the live actor occupying the cell, if any.
func (s *LevelState) ActorAt(c Coord) (*Actor, bool) {
	id, ok := s.byPos[c]
	if !ok {
		return nil, false
	}
	return &s.Actors[id], true
}

// Player returns the player actor, if still alive.
func (s *LevelState) Player() (*Actor, bool) {
	for i := range s.Actors {
		if s.Actors[i].Kind == KindPlayer && s.Actors[i].Alive {
			return &s.Actors[i], true
		}
	}
	return nil, false
}

// MoveActor relocates a live actor to a new cell and updates the position
// index. Occupancy checks are the engine's responsibility.
func (s *LevelState) MoveActor(id int, to Coord) {
	a := &s.Actors[id]
	if !a.Alive {
		return
	}
	if cur, ok := s.byPos[a.Pos]; ok && cur == id {
		delete(s.byPos, a.Pos)
	}
	a.Pos = to
	s.byPos[to] = id
}

// RemoveActor marks an actor dead and vacates its cell.
func (s *LevelState) RemoveActor(id int) {
	a := &s.Actors[id]
	if !a.Alive {
		return
	}
	a.Alive = false
	if cur, ok := s.byPos[a.Pos]; ok && cur == id {
		delete(s.byPos, a.Pos)
	}
}

// LiveActors returns the IDs of live actors in kind-then-position order.
// This is the stable evaluation order for creature behavior and cascades,
// keeping replays bit-for-bit reproducible.
func (s *LevelState) LiveActors() []int {
	ids := make([]int, 0, len(s.Actors))
	for i := range s.Actors {
		if s.Actors[i].Alive {
			ids = append(ids, i)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.Actors[ids[i]], s.Actors[ids[j]]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y < b.Pos.Y
		}
		return a.Pos.X < b.Pos.X
	})
	return ids
}

// Hash returns an fnv64a fingerprint of the state, used for determinism
// verification and replay checking.
func (s *LevelState) Hash() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "G:%dx%d;", s.Grid.W, s.Grid.H)
	for y := 0; y < s.Grid.H; y++ {
		for x := 0; x < s.Grid.W; x++ {
			c := C(x, y)
			fmt.Fprintf(h, "%d:", s.Grid.TileAt(c))
			if f, ok := s.Grid.FeatureAt(c); ok {
				fmt.Fprintf(h, "%d.%d.%d.%v:", f.Kind, f.Dir, f.ID, f.Open)
			}
			fmt.Fprintf(h, "%d,", s.Grid.ItemAt(c))
		}
	}

	fmt.Fprintf(h, ";A:")
	for _, a := range s.Actors {
		fmt.Fprintf(h, "%d:%d:%d:%d:%d:%v,", a.ID, a.Kind, a.Pos.X, a.Pos.Y, a.Dir, a.Alive)
	}

	fmt.Fprintf(h, ";T:%d;I:%d/%d;O:%d", s.Turn, s.Gems, s.GemsAll, s.Outcome)
	return h.Sum64()
}
