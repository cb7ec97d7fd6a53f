package game

import "github.com/callout-games/uno-server/internal/deck"

// PlayerInfo is the public view of a seated player
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CardCount  int    `json:"cardCount"`
	IsHost     bool   `json:"isHost"`
	Vulnerable bool   `json:"vulnerable"`
}

// Snapshot is the public view of a room, safe to broadcast to every player.
// Private hands travel on the events that change them, never here.
type Snapshot struct {
	Code            string       `json:"code"`
	Phase           Phase        `json:"phase"`
	Players         []PlayerInfo `json:"players"`
	TopCard         *deck.Card   `json:"topCard,omitempty"`
	CurrentPlayerID string       `json:"currentPlayerId,omitempty"`
	Direction       int          `json:"direction"`
	DeclaredColor   *deck.Color  `json:"declaredColor,omitempty"`
	WinnerID        string       `json:"winnerId,omitempty"`
}

// snapshot builds the public room view. Callers must hold the room lock.
func (r *Room) snapshot() Snapshot {
	players := make([]PlayerInfo, len(r.players))
	for i, p := range r.players {
		players[i] = p.info()
	}

	snap := Snapshot{
		Code:      r.code,
		Phase:     r.phase,
		Players:   players,
		Direction: r.turn.direction,
	}
	// No deck exists until the game starts
	if r.deck != nil {
		if top, ok := r.deck.Top(); ok {
			snap.TopCard = &top
		}
	}
	if r.phase == PhaseInProgress && len(r.players) > 0 {
		snap.CurrentPlayerID = r.players[r.turn.index].ID
	}
	if r.declaredColor != nil {
		color := *r.declaredColor
		snap.DeclaredColor = &color
	}
	if r.winner != nil {
		snap.WinnerID = r.winner.ID
	}
	return snap
}

// Snapshot returns the public room view
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Hand returns a copy of a player's private hand
func (r *Room) Hand(playerID string) ([]deck.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findPlayer(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	hand := make([]deck.Card, len(p.Hand))
	copy(hand, p.Hand)
	return hand, nil
}
