package game

import (
	"github.com/coder/quartz"

	"github.com/callout-games/uno-server/internal/deck"
)

// Player is a seated player. All fields are guarded by the owning room's lock.
type Player struct {
	ID     string
	Name   string
	Hand   []deck.Card
	IsHost bool

	// declared is the pending safety call for this player's next drop to one
	// card. It is consumed by every hand-size-changing play.
	declared bool

	// vulnerable is true exactly while a catch window is open for this
	// player. catchTimer is the pending window timer and catchGen detects
	// stale fires: the generation is bumped whenever the window is resolved,
	// so a timer that lost the race to the room lock sees a mismatch and
	// does nothing.
	vulnerable bool
	catchTimer *quartz.Timer
	catchGen   uint64
}

func (p *Player) info() PlayerInfo {
	return PlayerInfo{
		ID:         p.ID,
		Name:       p.Name,
		CardCount:  len(p.Hand),
		IsHost:     p.IsHost,
		Vulnerable: p.vulnerable,
	}
}

// removeCard takes a card out of the hand by id, preserving insertion order
// of the remaining cards
func (p *Player) removeCard(cardID int) (deck.Card, bool) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return deck.Card{}, false
}

// handCopy returns a defensive copy of the hand for event payloads
func (p *Player) handCopy() []deck.Card {
	hand := make([]deck.Card, len(p.Hand))
	copy(hand, p.Hand)
	return hand
}
