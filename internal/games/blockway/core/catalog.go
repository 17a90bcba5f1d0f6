// Package core implements the deterministic puzzle simulation for Blockway.
// The package is UI-agnostic: it consumes player intents and produces level
// state snapshots plus gameplay events, one turn at a time.
package core

// Kind identifies a tile, feature, item, or actor type.
type Kind uint8

const (
	KindNone Kind = iota

	// Floor/Wall layer.
	KindFloor
	KindWall

	// Feature layer.
	KindBelt
	KindMine
	KindTeleporter
	KindButton
	KindDoor
	KindWater
	KindExit
	KindIce
	KindGate

	// Item layer.
	KindGem

	// Actors.
	KindPlayer
	KindCrate
	KindBall
	KindKey
	KindCreature
	KindSentry
)

// String returns the kind name as used in level files.
func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "Floor"
	case KindWall:
		return "Wall"
	case KindBelt:
		return "Belt"
	case KindMine:
		return "Mine"
	case KindTeleporter:
		return "Teleporter"
	case KindButton:
		return "Button"
	case KindDoor:
		return "Door"
	case KindWater:
		return "Water"
	case KindExit:
		return "Exit"
	case KindIce:
		return "Ice"
	case KindGate:
		return "Gate"
	case KindGem:
		return "Gem"
	case KindPlayer:
		return "Player"
	case KindCrate:
		return "Crate"
	case KindBall:
		return "Ball"
	case KindKey:
		return "Key"
	case KindCreature:
		return "Creature"
	case KindSentry:
		return "Sentry"
	default:
		return "None"
	}
}

// ParseKind parses a kind name from a level file.
func ParseKind(s string) (Kind, bool) {
	for k := KindFloor; k <= KindSentry; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindNone, false
}

// Behavior selects the scripted per-turn movement rule for a creature kind.
type Behavior uint8

const (
	// BehaviorNone applies to actors that never move by themselves.
	BehaviorNone Behavior = iota

	// BehaviorBounce advances in the facing direction until blocked,
	// then reverses.
	BehaviorBounce

	// BehaviorRightHand turns right whenever possible, otherwise goes
	// straight, otherwise turns left, keeping obstacles on its right.
	BehaviorRightHand
)

// Descriptor holds the static properties of a kind. Descriptors are shared
// by reference from the catalog table and never copied per instance.
type Descriptor struct {
	Solid       bool     // blocks movement onto its cell
	Pushable    bool     // can be displaced by a push
	Lethal      bool     // removes actors sharing its cell
	Directional bool     // instances carry a facing direction (belts, creatures)
	Triggerable bool     // reacts to being entered (buttons, teleporters)
	Behavior    Behavior // scripted movement rule for actors
}

// catalog is the closed set of entity descriptors. Closed by design: level
// files referencing a kind outside this table fail at load time.
var catalog = map[Kind]*Descriptor{
	KindFloor:      {},
	KindWall:       {Solid: true},
	KindBelt:       {Directional: true},
	KindMine:       {Lethal: true},
	KindTeleporter: {Triggerable: true},
	KindButton:     {Triggerable: true},
	KindDoor:       {Solid: true}, // solid only while closed; see Grid.IsBlocked
	KindWater:      {Lethal: true},
	KindExit:       {},
	KindIce:        {},            // slippery: occupants keep sliding in their facing direction
	KindGate:       {Solid: true}, // solid until unlocked by a key; see Grid.IsBlocked
	KindGem:        {},
	KindPlayer:     {Solid: true, Directional: true},
	KindCrate:      {Solid: true, Pushable: true},
	KindBall:       {Solid: true, Pushable: true, Lethal: true},
	KindKey:        {Solid: true, Pushable: true},
	KindCreature:   {Solid: true, Lethal: true, Directional: true, Behavior: BehaviorBounce},
	KindSentry:     {Solid: true, Lethal: true, Directional: true, Behavior: BehaviorRightHand},
}

// Properties returns the static descriptor for a kind.
// Returns an empty descriptor for unknown kinds; the loader guarantees
// simulation never sees one.
func Properties(k Kind) *Descriptor {
	if d, ok := catalog[k]; ok {
		return d
	}
	return &Descriptor{}
}

// IsActorKind reports whether the kind belongs on the actor registry rather
// than a grid layer.
func IsActorKind(k Kind) bool {
	switch k {
	case KindPlayer, KindCrate, KindBall, KindKey, KindCreature, KindSentry:
		return true
	default:
		return false
	}
}

// IsFeatureKind reports whether the kind belongs on the feature layer.
func IsFeatureKind(k Kind) bool {
	switch k {
	case KindBelt, KindMine, KindTeleporter, KindButton, KindDoor, KindWater, KindExit, KindIce, KindGate:
		return true
	default:
		return false
	}
}
