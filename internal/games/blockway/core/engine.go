package core

import "fmt"

// Intent is the player's input for one turn: a move in a direction, or wait.
type Intent struct {
	Wait bool
	Dir  Dir
}

// MoveIntent returns a move intent in the given direction.
func MoveIntent(d Dir) Intent {
	return Intent{Dir: d}
}

// WaitIntent returns a wait intent. The turn still advances: creatures move,
// belts run, triggers fire.
func WaitIntent() Intent {
	return Intent{Wait: true}
}

// Rules holds level-authoring choices that tune resolution behavior.
type Rules struct {
	// MineChain enables chain reactions: a detonating mine also detonates
	// mines in the four adjacent cells, resolved to a fixed point.
	MineChain bool

	// MaxBeltPasses caps belt fixed-point iteration. Zero means bounded by
	// grid size, which is always sufficient for loops to settle.
	MaxBeltPasses int
}

// DefaultRules returns the rule set used when a level specifies nothing.
func DefaultRules() Rules {
	return Rules{MineChain: true}
}

// Engine resolves one turn of simulation. It is stateless between turns;
// all simulation state lives in the LevelState it is handed.
type Engine struct {
	rules Rules
}

// NewEngine creates an engine with the given rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// resolution carries the working state of one turn through the phases.
type resolution struct {
	s      *LevelState
	events []Event
}

func (r *resolution) emit(ev Event) {
	r.events = append(r.events, ev)
}

// ResolveTurn runs the full state machine for one intent against a snapshot
// of prev and returns the settled state. prev is never mutated. The returned
// error is non-nil only for an InvariantError, which indicates an engine
// defect; gameplay-level rejections (bumps, blocked pushes) are normal
// outcomes reported through events.
func (e *Engine) ResolveTurn(prev *LevelState, intent Intent) (*LevelState, []Event, error) {
	if prev.Outcome != OutcomeNone {
		return prev, nil, InvalidIntentError{Reason: "level already " + prev.Outcome.String()}
	}
	if !intent.Wait && intent.Dir > DirLeft {
		return prev, nil, InvalidIntentError{Reason: "unknown direction"}
	}

	r := &resolution{s: prev.Clone()}
	r.s.Turn++

	e.playerPhase(r, intent)
	e.creaturePhase(r)
	e.transportPhase(r)
	e.triggerPhase(r)
	e.lethalPhase(r)

	if err := e.settle(r); err != nil {
		return prev, r.events, err
	}
	return r.s, r.events, nil
}

// playerPhase handles PlayerMoveAttempted and PushResolution.
func (e *Engine) playerPhase(r *resolution, intent Intent) {
	if intent.Wait {
		return
	}
	player, ok := r.s.Player()
	if !ok {
		return
	}
	id := player.ID
	from := player.Pos
	d := intent.Dir

	target := from.Step(d)
	if r.s.Grid.IsBlocked(target) {
		r.emit(Event{Kind: EventTurnBumped, ActorID: id, From: from, To: target})
		return
	}

	if blocker, occupied := r.s.ActorAt(target); occupied {
		chain, ok := e.pushChain(r.s, target, d)
		if !ok || !Properties(blocker.Kind).Pushable {
			r.emit(Event{Kind: EventTurnBumped, ActorID: id, From: from, To: target})
			return
		}
		// Shift the whole chain from the far end, then the player follows.
		// Collecting the chain up front is what makes the push atomic.
		for i := len(chain) - 1; i >= 0; i-- {
			pid := chain[i]
			pFrom := r.s.Actors[pid].Pos
			r.s.MoveActor(pid, pFrom.Step(d))
			r.s.Actors[pid].Dir = d
			r.emit(Event{Kind: EventActorPushed, ActorID: pid, From: pFrom, To: pFrom.Step(d)})
		}
	}

	// Facing changes only on a resolved move; a bump leaves the snapshot
	// untouched apart from the turn counter.
	r.s.Actors[id].Dir = d
	r.s.MoveActor(id, target)
	r.emit(Event{Kind: EventActorMoved, ActorID: id, From: from, To: target})
	e.collect(r, id)
}

// pushChain returns the IDs of the contiguous line of actors starting at
// start in direction d, nearest first, and whether the whole chain can shift
// by one cell. A chain shifts if and only if every member is pushable and
// the cell beyond the last member is unblocked and unoccupied; otherwise the
// push is rejected atomically. The one exception is a key pushed against a
// closed gate: the key may enter the gate's cell, where the trigger phase
// consumes it.
func (e *Engine) pushChain(s *LevelState, start Coord, d Dir) ([]int, bool) {
	var chain []int
	c := start
	for {
		a, occupied := s.ActorAt(c)
		if !occupied {
			break
		}
		if !Properties(a.Kind).Pushable {
			return nil, false
		}
		chain = append(chain, a.ID)
		c = c.Step(d)
		if len(chain) > s.Grid.W+s.Grid.H {
			// Cannot happen on a finite grid; guard against index corruption.
			return nil, false
		}
	}
	if s.Grid.IsBlocked(c) && !keyAgainstGate(s, chain, c) {
		return nil, false
	}
	return chain, true
}

// keyAgainstGate reports whether the chain ends in a key facing a closed
// gate at c, the only blocked cell a push may end on.
func keyAgainstGate(s *LevelState, chain []int, c Coord) bool {
	if len(chain) == 0 {
		return false
	}
	if s.Actors[chain[len(chain)-1]].Kind != KindKey {
		return false
	}
	f, ok := s.Grid.FeatureAt(c)
	return ok && f.Kind == KindGate && !f.Open
}

// creaturePhase computes and applies scripted creature intents in stable
// kind-then-position order.
func (e *Engine) creaturePhase(r *resolution) {
	for _, id := range r.s.LiveActors() {
		a := &r.s.Actors[id]
		switch Properties(a.Kind).Behavior {
		case BehaviorBounce:
			if e.creatureStep(r, id, a.Dir) {
				continue
			}
			r.s.Actors[id].Dir = a.Dir.Opposite()
		case BehaviorRightHand:
			switch {
			case e.creatureStep(r, id, a.Dir.RightHand()):
				r.s.Actors[id].Dir = a.Dir.RightHand()
			case e.creatureStep(r, id, a.Dir):
				// kept facing
			default:
				r.s.Actors[id].Dir = a.Dir.LeftHand()
			}
		}
	}
}

// creatureStep tries to move a creature one cell. Creatures do not push;
// any occupied cell blocks them, except the player's cell when the creature
// is lethal: contact is resolved in the lethal phase.
func (e *Engine) creatureStep(r *resolution, id int, d Dir) bool {
	a := &r.s.Actors[id]
	target := a.Pos.Step(d)
	if r.s.Grid.IsBlocked(target) {
		return false
	}
	if other, occupied := r.s.ActorAt(target); occupied {
		if !(other.Kind == KindPlayer && Properties(a.Kind).Lethal) {
			return false
		}
	}
	from := a.Pos
	r.s.MoveActor(id, target)
	r.emit(Event{Kind: EventActorMoved, ActorID: id, From: from, To: target})
	return true
}

// transportPhase displaces actors standing on belts or ice, repeating to a
// fixed point. A belt carries its occupant in the belt's direction; ice is
// slippery, so its occupant keeps sliding in its own facing direction. A
// per-pass visited set per actor detects loops: an actor re-entering a cell
// it already occupied this pass stops moving, so a loop of length L settles
// within L passes.
func (e *Engine) transportPhase(r *resolution) {
	maxPasses := e.rules.MaxBeltPasses
	if maxPasses <= 0 {
		maxPasses = r.s.Grid.W * r.s.Grid.H
	}

	visited := make(map[int]map[Coord]bool)
	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for _, id := range r.s.LiveActors() {
			a := &r.s.Actors[id]
			f, ok := r.s.Grid.FeatureAt(a.Pos)
			if !ok || (f.Kind != KindBelt && f.Kind != KindIce) {
				continue
			}
			d := f.Dir
			if f.Kind == KindIce {
				d = a.Dir
			}
			dest := a.Pos.Step(d)
			if r.s.Grid.IsBlocked(dest) {
				continue // never into a wall; the actor stays
			}
			if _, occupied := r.s.ActorAt(dest); occupied {
				continue
			}
			if visited[id] == nil {
				visited[id] = map[Coord]bool{a.Pos: true}
			}
			if visited[id][dest] {
				continue // loop settled for this actor
			}
			visited[id][dest] = true
			from := a.Pos
			r.s.MoveActor(id, dest)
			if f.Kind == KindIce {
				r.emit(Event{Kind: EventActorSlid, ActorID: id, From: from, To: dest, Feature: KindIce})
			} else {
				r.emit(Event{Kind: EventBeltTransported, ActorID: id, From: from, To: dest, Feature: KindBelt})
			}
			e.collect(r, id)
			moved = true
		}
		if !moved {
			return
		}
	}
}

// triggerPhase consumes keys resting on gates, activates teleporters and
// pressure-plate buttons, and updates door open state.
func (e *Engine) triggerPhase(r *resolution) {
	// Keys: a key pushed onto a closed gate is consumed and unlocks it
	// permanently.
	for _, id := range r.s.LiveActors() {
		a := &r.s.Actors[id]
		if a.Kind != KindKey {
			continue
		}
		f, ok := r.s.Grid.FeatureAt(a.Pos)
		if !ok || f.Kind != KindGate || f.Open {
			continue
		}
		pos := a.Pos
		f.Open = true
		r.s.Grid.SetFeature(pos, f)
		r.s.RemoveActor(id)
		r.emit(Event{Kind: EventGateOpened, ActorID: id, To: pos, Feature: KindGate})
		r.emit(Event{Kind: EventActorRemoved, ActorID: id, To: pos, Feature: KindGate, Reason: RemoveConsumed})
	}

	// Teleporters next, once per actor per pass.
	teleported := make(map[int]bool)
	for _, id := range r.s.LiveActors() {
		a := &r.s.Actors[id]
		f, ok := r.s.Grid.FeatureAt(a.Pos)
		if !ok || f.Kind != KindTeleporter || teleported[id] {
			continue
		}
		dest, found := e.pairedTeleporter(r.s.Grid, a.Pos, f.ID)
		if !found || r.s.Grid.IsBlocked(dest) {
			continue
		}
		if _, occupied := r.s.ActorAt(dest); occupied {
			continue // blocked target cancels the teleport
		}
		from := a.Pos
		teleported[id] = true
		r.s.MoveActor(id, dest)
		r.emit(Event{Kind: EventTriggerActivated, ActorID: id, To: from, Feature: KindTeleporter})
		r.emit(Event{Kind: EventActorTeleported, ActorID: id, From: from, To: dest})
		e.collect(r, id)
	}

	// Pressure plates: a door is open while any actor stands on a button
	// with the same identifier.
	pressed := make(map[int]bool)
	for _, id := range r.s.LiveActors() {
		a := &r.s.Actors[id]
		if f, ok := r.s.Grid.FeatureAt(a.Pos); ok && f.Kind == KindButton {
			if !pressed[f.ID] {
				r.emit(Event{Kind: EventTriggerActivated, ActorID: id, To: a.Pos, Feature: KindButton})
			}
			pressed[f.ID] = true
		}
	}
	for y := 0; y < r.s.Grid.H; y++ {
		for x := 0; x < r.s.Grid.W; x++ {
			c := C(x, y)
			f, ok := r.s.Grid.FeatureAt(c)
			if !ok || f.Kind != KindDoor {
				continue
			}
			open := pressed[f.ID]
			if open == f.Open {
				continue
			}
			f.Open = open
			r.s.Grid.SetFeature(c, f)
			kind := EventDoorClosed
			if open {
				kind = EventDoorOpened
			}
			r.emit(Event{Kind: kind, ActorID: -1, To: c, Feature: KindDoor})
		}
	}
}

// pairedTeleporter finds the teleporter sharing id at a different position.
func (e *Engine) pairedTeleporter(g *Grid, at Coord, id int) (Coord, bool) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			if c == at {
				continue
			}
			if f, ok := g.FeatureAt(c); ok && f.Kind == KindTeleporter && f.ID == id {
				return c, true
			}
		}
	}
	return Coord{}, false
}

// lethalPhase removes actors on lethal features and resolves lethal actor
// contact. Mine detonations may chain to adjacent mines, each detonation
// resolved before re-checking adjacency, to a fixed point bounded by the
// number of mines.
func (e *Engine) lethalPhase(r *resolution) {
	// Water: crates sink and fill the cell, everything else drowns.
	for _, id := range r.s.LiveActors() {
		a := &r.s.Actors[id]
		f, ok := r.s.Grid.FeatureAt(a.Pos)
		if !ok || f.Kind != KindWater {
			continue
		}
		pos := a.Pos
		if a.Kind == KindCrate {
			r.s.RemoveActor(id)
			r.s.Grid.RemoveFeature(pos)
			r.emit(Event{Kind: EventActorRemoved, ActorID: id, To: pos, Feature: KindWater, Reason: RemoveSank})
		} else {
			r.s.RemoveActor(id)
			r.emit(Event{Kind: EventActorRemoved, ActorID: id, To: pos, Feature: KindWater, Reason: RemoveDrowned})
		}
	}

	// Mines.
	var detonations []Coord
	for _, id := range r.s.LiveActors() {
		a := &r.s.Actors[id]
		if f, ok := r.s.Grid.FeatureAt(a.Pos); ok && f.Kind == KindMine {
			detonations = append(detonations, a.Pos)
		}
	}
	seen := make(map[Coord]bool)
	for len(detonations) > 0 {
		pos := detonations[0]
		detonations = detonations[1:]
		if seen[pos] {
			continue
		}
		if f, ok := r.s.Grid.FeatureAt(pos); !ok || f.Kind != KindMine {
			continue
		}
		seen[pos] = true
		r.s.Grid.RemoveFeature(pos)
		if a, occupied := r.s.ActorAt(pos); occupied {
			r.s.RemoveActor(a.ID)
			r.emit(Event{Kind: EventActorRemoved, ActorID: a.ID, To: pos, Feature: KindMine, Reason: RemoveMine})
		}
		if e.rules.MineChain {
			for _, d := range []Dir{DirUp, DirRight, DirDown, DirLeft} {
				n := pos.Step(d)
				if f, ok := r.s.Grid.FeatureAt(n); ok && f.Kind == KindMine && !seen[n] {
					detonations = append(detonations, n)
				}
			}
		}
	}

	// Lethal actor contact. Under the occupancy rules only a lethal actor
	// can share the player's cell.
	if player, ok := r.s.Player(); ok {
		for _, id := range r.s.LiveActors() {
			a := &r.s.Actors[id]
			if a.ID == player.ID || !Properties(a.Kind).Lethal {
				continue
			}
			if a.Pos == player.Pos {
				r.s.RemoveActor(player.ID)
				r.emit(Event{Kind: EventActorRemoved, ActorID: player.ID, To: player.Pos, Reason: RemoveContact})
				break
			}
		}
	}
}

// collect picks up an item under an actor. Only the player collects gems.
func (e *Engine) collect(r *resolution, id int) {
	a := &r.s.Actors[id]
	if a.Kind != KindPlayer || !a.Alive {
		return
	}
	if r.s.Grid.ItemAt(a.Pos) == KindGem {
		r.s.Grid.RemoveItem(a.Pos)
		r.s.Gems++
		r.emit(Event{Kind: EventItemCollected, ActorID: id, To: a.Pos, Feature: KindGem})
	}
}

// settle recomputes the terminal outcome and verifies post-resolution
// invariants.
func (e *Engine) settle(r *resolution) error {
	player, alive := r.s.Player()
	switch {
	case !alive:
		r.s.Outcome = OutcomeLost
		r.emit(Event{Kind: EventLevelLost, ActorID: -1})
	case r.s.Gems >= r.s.GemsAll && e.onExit(r.s.Grid, player.Pos):
		r.s.Outcome = OutcomeWon
		r.emit(Event{Kind: EventLevelWon, ActorID: player.ID, To: player.Pos})
	}

	occupied := make(map[Coord]int)
	for _, id := range r.s.LiveActors() {
		a := &r.s.Actors[id]
		if !r.s.Grid.InBounds(a.Pos) {
			return InvariantError{Detail: fmt.Sprintf("actor %d out of bounds at %s", id, a.Pos)}
		}
		if r.s.Grid.TileAt(a.Pos) == KindWall {
			return InvariantError{Detail: fmt.Sprintf("actor %d inside wall at %s", id, a.Pos)}
		}
		if other, clash := occupied[a.Pos]; clash {
			return InvariantError{Detail: fmt.Sprintf("actors %d and %d overlap at %s", other, id, a.Pos)}
		}
		occupied[a.Pos] = id
	}
	return nil
}

func (e *Engine) onExit(g *Grid, pos Coord) bool {
	f, ok := g.FeatureAt(pos)
	return ok && f.Kind == KindExit
}
