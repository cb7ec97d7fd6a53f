package game

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/callout-games/uno-server/internal/deck"
	"github.com/callout-games/uno-server/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newLobbyRoom creates a room with n seated players p1..pn (p1 is host)
func newLobbyRoom(t *testing.T, clock quartz.Clock, n int) *Room {
	t.Helper()
	r := NewRoom("ABC234", RoomConfig{
		Clock:         clock,
		Rand:          randutil.New(42),
		DeclareWindow: 5 * time.Second,
	}, testLogger())

	for i := 1; i <= n; i++ {
		require.NoError(t, r.Join(fmt.Sprintf("p%d", i), fmt.Sprintf("Player%d", i)))
	}
	return r
}

// newStartedRoom creates a started room with n players and then forces a
// known, deterministic table state: p1 to act, direction +1, a red 5 on top
// and no declared color, regardless of what the initial flip did.
func newStartedRoom(t *testing.T, clock quartz.Clock, n int) *Room {
	t.Helper()
	r := newLobbyRoom(t, clock, n)
	require.NoError(t, r.Start("p1"))

	r.turn = newTurnTracker()
	r.declaredColor = nil
	r.deck.Discard(deck.Card{ID: 900, Color: deck.Red, Rank: deck.Five})
	return r
}

// setHand replaces a player's hand
func setHand(t *testing.T, r *Room, playerID string, cards ...deck.Card) {
	t.Helper()
	p := r.findPlayer(playerID)
	require.NotNil(t, p)
	p.Hand = cards
}

// handSize returns a player's current hand size
func handSize(t *testing.T, r *Room, playerID string) int {
	t.Helper()
	p := r.findPlayer(playerID)
	require.NotNil(t, p)
	return len(p.Hand)
}

// eventRecorder captures events published by a room
type eventRecorder struct {
	events []Event
}

func (er *eventRecorder) OnEvent(event Event) {
	er.events = append(er.events, event)
}

// last returns the most recent event of the given type, or nil
func (er *eventRecorder) last(et EventType) Event {
	for i := len(er.events) - 1; i >= 0; i-- {
		if er.events[i].EventType() == et {
			return er.events[i]
		}
	}
	return nil
}

// count returns how many events of the given type were recorded
func (er *eventRecorder) count(et EventType) int {
	n := 0
	for _, e := range er.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}

// record subscribes a fresh recorder to the room's bus
func record(r *Room) *eventRecorder {
	er := &eventRecorder{}
	r.Events().Subscribe(er)
	return er
}

// totalCards sums the draw pile, discard pile and every hand
func totalCards(r *Room) int {
	total := r.deck.DrawCount() + r.deck.DiscardCount()
	for _, p := range r.players {
		total += len(p.Hand)
	}
	return total
}
