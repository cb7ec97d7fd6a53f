// Package game implements the authoritative room and turn engine for an
// UNO-style card game.
//
// The main type is Room, which owns the deck and discard pile, the seated
// players, turn order and direction, and the declare/catch penalty window.
// Every mutating operation acquires the room's lock, so concurrent actions
// against the same room are applied atomically and in arrival order; actions
// against different rooms are fully independent.
//
// # Basic Usage
//
// Create a room, seat players, and start the game:
//
//	r := game.NewRoom("ABC234", game.RoomConfig{}, logger)
//	r.Join("p1", "Alice")
//	r.Join("p2", "Bob")
//	r.Start("p1")
//	err := r.PlayCard("p1", cardID, nil)
//
// # Deterministic Testing
//
// RoomConfig accepts a *rand.Rand for deck shuffling and a quartz.Clock for
// the declare window, so tests inject a fixed seed and a mock clock:
//
//	cfg := game.RoomConfig{Rand: randutil.New(42), Clock: quartz.NewMock(t)}
//
// # Events
//
// The engine publishes typed events (CardPlayedEvent, CaughtEvent, ...) on a
// per-room event bus. The transport layer subscribes and converts them to
// wire messages; events carry everything a subscriber needs so it never calls
// back into the room from inside a callback.
package game
