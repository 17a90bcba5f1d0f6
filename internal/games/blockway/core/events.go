package core

// EventKind identifies a gameplay event emitted during turn resolution.
type EventKind uint8

const (
	EventTurnBumped EventKind = iota
	EventActorMoved
	EventActorPushed
	EventBeltTransported
	EventActorSlid
	EventTriggerActivated
	EventActorTeleported
	EventDoorOpened
	EventDoorClosed
	EventGateOpened
	EventItemCollected
	EventActorRemoved
	EventLevelWon
	EventLevelLost
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventTurnBumped:
		return "TurnBumped"
	case EventActorMoved:
		return "ActorMoved"
	case EventActorPushed:
		return "ActorPushed"
	case EventBeltTransported:
		return "BeltTransported"
	case EventActorSlid:
		return "ActorSlid"
	case EventTriggerActivated:
		return "TriggerActivated"
	case EventActorTeleported:
		return "ActorTeleported"
	case EventDoorOpened:
		return "DoorOpened"
	case EventDoorClosed:
		return "DoorClosed"
	case EventGateOpened:
		return "GateOpened"
	case EventItemCollected:
		return "ItemCollected"
	case EventActorRemoved:
		return "ActorRemoved"
	case EventLevelWon:
		return "LevelWon"
	case EventLevelLost:
		return "LevelLost"
	default:
		return "Unknown"
	}
}

// RemoveReason explains why an actor was removed from the level.
type RemoveReason uint8

const (
	RemoveNone RemoveReason = iota
	RemoveMine
	RemoveDrowned
	RemoveSank // crate sank and filled a water cell
	RemoveContact
	RemoveConsumed // key spent on unlocking a gate
)

// String returns the reason name.
func (r RemoveReason) String() string {
	switch r {
	case RemoveMine:
		return "mine"
	case RemoveDrowned:
		return "drowned"
	case RemoveSank:
		return "sank"
	case RemoveContact:
		return "contact"
	case RemoveConsumed:
		return "consumed"
	default:
		return "none"
	}
}

// Event records one observable effect of turn resolution. Rendering, audio,
// and UI collaborators consume the event stream; the core makes no assumption
// about how events are displayed.
type Event struct {
	Kind    EventKind
	ActorID int          // actor concerned, -1 when not applicable
	From    Coord        // previous position for movement events
	To      Coord        // new or affected position
	Feature Kind         // feature involved (mine, belt, button, ...)
	Reason  RemoveReason // set for ActorRemoved
}
