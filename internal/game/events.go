package game

import (
	"time"

	"github.com/callout-games/uno-server/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for room domain events
const (
	EventTypePlayerJoined  EventType = "player_joined"
	EventTypePlayerLeft    EventType = "player_left"
	EventTypeGameStarted   EventType = "game_started"
	EventTypeCardPlayed    EventType = "card_played"
	EventTypeCardsDrawn    EventType = "cards_drawn"
	EventTypeVulnerable    EventType = "vulnerable"
	EventTypeDeclared      EventType = "declared"
	EventTypeCaught        EventType = "caught"
	EventTypeWindowExpired EventType = "window_expired"
	EventTypeGameOver      EventType = "game_over"
	EventTypeGameCancelled EventType = "game_cancelled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents any event published by a room
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type baseEvent struct {
	timestamp time.Time
}

func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// PlayerJoinedEvent is published when a player joins the room
type PlayerJoinedEvent struct {
	baseEvent
	Player   PlayerInfo
	Snapshot Snapshot
}

func (e PlayerJoinedEvent) EventType() EventType { return EventTypePlayerJoined }

// PlayerLeftEvent is published when a player leaves or disconnects. NewHostID
// is set when the departing player was host and another player was promoted.
type PlayerLeftEvent struct {
	baseEvent
	PlayerID   string
	PlayerName string
	NewHostID  string
	Snapshot   Snapshot
}

func (e PlayerLeftEvent) EventType() EventType { return EventTypePlayerLeft }

// GameStartedEvent is published once the host starts the game. Hands carries
// each player's private opening hand; subscribers must deliver each hand only
// to its owner.
type GameStartedEvent struct {
	baseEvent
	Hands    map[string][]deck.Card
	Snapshot Snapshot
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }

// CardPlayedEvent is published after a legal play has been applied
type CardPlayedEvent struct {
	baseEvent
	PlayerID string
	Card     deck.Card
	// Hand is the acting player's private hand after the play
	Hand     []deck.Card
	Snapshot Snapshot
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }

// DrawReason says why cards were handed to a player
type DrawReason string

const (
	DrawReasonTurn    DrawReason = "turn"    // the player drew on their own turn
	DrawReasonForced  DrawReason = "forced"  // draw-two / wild-draw-four effect
	DrawReasonPenalty DrawReason = "penalty" // caught without declaring
)

// CardsDrawnEvent is published when a player receives cards. Cards and Hand
// are private to the receiving player; Count is public.
type CardsDrawnEvent struct {
	baseEvent
	PlayerID string
	Cards    []deck.Card
	Hand     []deck.Card
	Count    int
	Reason   DrawReason
	// Playable is set for turn draws when the drawn card may be played
	// immediately; the turn stays with the drawer in that case.
	Playable     bool
	TurnAdvanced bool
	Snapshot     Snapshot
}

func (e CardsDrawnEvent) EventType() EventType { return EventTypeCardsDrawn }

// VulnerableEvent is published when a player reaches one card without having
// declared and the catch window opens
type VulnerableEvent struct {
	baseEvent
	PlayerID string
	Window   time.Duration
	Snapshot Snapshot
}

func (e VulnerableEvent) EventType() EventType { return EventTypeVulnerable }

// DeclaredEvent is published when a declare action takes effect. Safe is set
// when the declare closed an open catch window.
type DeclaredEvent struct {
	baseEvent
	PlayerID string
	Safe     bool
	Snapshot Snapshot
}

func (e DeclaredEvent) EventType() EventType { return EventTypeDeclared }

// CaughtEvent is published when a catch lands inside the window
type CaughtEvent struct {
	baseEvent
	CatcherID string
	TargetID  string
	Penalty   int
	Snapshot  Snapshot
}

func (e CaughtEvent) EventType() EventType { return EventTypeCaught }

// WindowExpiredEvent is published when the catch window elapses with no
// declare and no catch; the player walks away with no penalty
type WindowExpiredEvent struct {
	baseEvent
	PlayerID string
	Snapshot Snapshot
}

func (e WindowExpiredEvent) EventType() EventType { return EventTypeWindowExpired }

// GameOverEvent is published when a play empties a player's hand
type GameOverEvent struct {
	baseEvent
	WinnerID   string
	WinnerName string
	Snapshot   Snapshot
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }

// GameCancelledEvent is published when a room can no longer continue, e.g.
// the player count dropped below the minimum mid-game
type GameCancelledEvent struct {
	baseEvent
	Reason   string
	Snapshot Snapshot
}

func (e GameCancelledEvent) EventType() EventType { return EventTypeGameCancelled }

// EventSubscriber can subscribe to room events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, sub := range bus.subscribers {
		sub.OnEvent(event)
	}
}
