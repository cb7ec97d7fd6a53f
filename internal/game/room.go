package game

import (
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/callout-games/uno-server/internal/deck"
	"github.com/callout-games/uno-server/internal/randutil"
)

// Phase is the room lifecycle phase
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

const (
	// MaxPlayers caps a room's seat count
	MaxPlayers = 10
	// MinPlayers is the minimum to start and to keep a game running
	MinPlayers = 2
	// StartingHandSize is the opening deal per player
	StartingHandSize = 7
	// DefaultDeclareWindow is the catch window after an undeclared drop to
	// one card
	DefaultDeclareWindow = 5 * time.Second
	// catchPenalty is how many cards a caught player draws
	catchPenalty = 2
)

// RoomConfig carries the injectable dependencies of a room. Zero values get
// production defaults: a real clock, a time-seeded RNG and a 5 second window.
type RoomConfig struct {
	DeclareWindow time.Duration
	Clock         quartz.Clock
	Rand          *rand.Rand
}

// Room is the authoritative aggregate for one game. All state is guarded by
// mu; every inbound action and the catch-window timer callback acquire it, so
// mutations are linearized per room.
type Room struct {
	code string

	mu            sync.Mutex
	players       []*Player
	deck          *deck.Deck
	turn          turnTracker
	declaredColor *deck.Color
	phase         Phase
	winner        *Player

	clock  quartz.Clock
	rng    *rand.Rand
	window time.Duration
	bus    EventBus
	logger *log.Logger
}

// NewRoom creates an empty room in the lobby phase
func NewRoom(code string, cfg RoomConfig, logger *log.Logger) *Room {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Rand == nil {
		cfg.Rand = randutil.New(time.Now().UnixNano())
	}
	if cfg.DeclareWindow <= 0 {
		cfg.DeclareWindow = DefaultDeclareWindow
	}

	return &Room{
		code:   code,
		phase:  PhaseLobby,
		turn:   newTurnTracker(),
		clock:  cfg.Clock,
		rng:    cfg.Rand,
		window: cfg.DeclareWindow,
		bus:    NewEventBus(),
		logger: logger.WithPrefix("room").With("code", code),
	}
}

// Code returns the room's join code
func (r *Room) Code() string {
	return r.code
}

// Events returns the room's event bus for subscribers
func (r *Room) Events() EventBus {
	return r.bus
}

// Phase returns the current lifecycle phase
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// PlayerCount returns the number of seated players
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// findPlayer returns the player with the given id. Callers must hold mu.
func (r *Room) findPlayer(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// currentPlayer returns the player whose turn it is. Callers must hold mu.
func (r *Room) currentPlayer() *Player {
	return r.players[r.turn.index]
}

// Join seats a new player. The first player to join becomes host.
func (r *Room) Join(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseFinished {
		return ErrGameFinished
	}
	if r.phase != PhaseLobby {
		return ErrGameInProgress
	}
	if len(r.players) >= MaxPlayers {
		return ErrRoomFull
	}
	if r.findPlayer(id) != nil {
		return ErrAlreadyJoined
	}

	p := &Player{
		ID:     id,
		Name:   name,
		IsHost: len(r.players) == 0,
	}
	r.players = append(r.players, p)

	r.logger.Info("Player joined", "player", name, "seats", len(r.players))
	r.bus.Publish(PlayerJoinedEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		Player:    p.info(),
		Snapshot:  r.snapshot(),
	})
	return nil
}

// Leave removes a player. Their hand cards leave play permanently; this is a
// deliberate simplification, not a leak to repair. If the host leaves, the
// first remaining player is promoted. If an in-progress game drops below the
// minimum player count it is cancelled.
func (r *Room) Leave(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrUnknownPlayer
	}

	p := r.players[idx]
	r.resolveWindow(p)
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	newHostID := ""
	if p.IsHost && len(r.players) > 0 {
		r.players[0].IsHost = true
		newHostID = r.players[0].ID
	}

	r.logger.Info("Player left", "player", p.Name, "remaining", len(r.players))

	if r.phase == PhaseInProgress {
		r.turn.playerRemoved(idx, len(r.players))
	}

	r.bus.Publish(PlayerLeftEvent{
		baseEvent:  baseEvent{timestamp: time.Now()},
		PlayerID:   p.ID,
		PlayerName: p.Name,
		NewHostID:  newHostID,
		Snapshot:   r.snapshot(),
	})

	if r.phase == PhaseInProgress && len(r.players) < MinPlayers {
		r.cancelGame("not enough players to continue")
	}
	return nil
}

// cancelGame force-finishes an in-progress game with no winner. Callers must
// hold mu.
func (r *Room) cancelGame(reason string) {
	r.phase = PhaseFinished
	for _, p := range r.players {
		r.resolveWindow(p)
	}
	r.logger.Info("Game cancelled", "reason", reason)
	r.bus.Publish(GameCancelledEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		Reason:    reason,
		Snapshot:  r.snapshot(),
	})
}

// Start begins the game: builds and shuffles the deck, deals every player
// their opening hand in join order, flips the initial non-wild discard and
// applies its effect as if it had been played.
func (r *Room) Start(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseFinished {
		return ErrGameFinished
	}
	if r.phase != PhaseLobby {
		return ErrGameInProgress
	}
	actor := r.findPlayer(actorID)
	if actor == nil {
		return ErrUnknownPlayer
	}
	if !actor.IsHost {
		return ErrNotHost
	}
	if len(r.players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	r.deck = deck.New(r.rng)
	for _, p := range r.players {
		p.Hand = r.deck.Draw(StartingHandSize)
		p.declared = false
	}

	// Cannot fail: at most 70 of the 100 non-wild cards are dealt
	first, _ := r.deck.FlipInitial()

	r.phase = PhaseInProgress
	r.turn = newTurnTracker()
	r.declaredColor = nil
	r.winner = nil

	// The initial card acts on the first player exactly as a played card
	// would, minus the base turn advance that follows a real play.
	n := len(r.players)
	switch first.Rank {
	case deck.Skip:
		r.turn.advance(n)
	case deck.Reverse:
		r.turn.reverse(n)
	case deck.DrawTwo:
		lead := r.players[0]
		lead.Hand = append(lead.Hand, r.deck.Draw(2)...)
		r.turn.advance(n)
	}

	hands := make(map[string][]deck.Card, len(r.players))
	for _, p := range r.players {
		hands[p.ID] = p.handCopy()
	}

	r.logger.Info("Game started", "players", n, "first", first.String())
	r.bus.Publish(GameStartedEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		Hands:     hands,
		Snapshot:  r.snapshot(),
	})
	return nil
}

// PlayCard plays the given card from the actor's hand. chosenColor is
// required for wild-family cards and ignored otherwise. Validation happens
// before any mutation: a rejected play leaves the room untouched.
func (r *Room) PlayCard(actorID string, cardID int, chosenColor *deck.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseInProgress {
		return ErrGameNotInProgress
	}
	p := r.findPlayer(actorID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if r.currentPlayer() != p {
		return ErrNotYourTurn
	}

	var card deck.Card
	found := false
	for _, c := range p.Hand {
		if c.ID == cardID {
			card = c
			found = true
			break
		}
	}
	if !found {
		return ErrCardNotInHand
	}

	if card.IsWild() {
		if chosenColor == nil {
			return ErrColorRequired
		}
		if *chosenColor == deck.Wild {
			return ErrInvalidColor
		}
	}

	top, _ := r.deck.Top()
	if !IsLegal(card, top, r.declaredColor) {
		return ErrIllegalCard
	}

	// Validation complete; mutate. The pending declare flag is consumed by
	// this hand-size change and only protects this play's drop to one card.
	priorDeclared := p.declared
	p.declared = false
	p.removeCard(card.ID)
	r.deck.Discard(card)
	if card.IsWild() {
		color := *chosenColor
		r.declaredColor = &color
	} else {
		r.declaredColor = nil
	}

	r.logger.Info("Card played", "player", p.Name, "card", card.String(), "remaining", len(p.Hand))

	// Win check precedes every side effect: an emptied hand ends the game
	// and no draw, skip or turn advance fires.
	if len(p.Hand) == 0 {
		r.phase = PhaseFinished
		r.winner = p
		for _, other := range r.players {
			r.resolveWindow(other)
		}
		snap := r.snapshot()
		r.bus.Publish(CardPlayedEvent{
			baseEvent: baseEvent{timestamp: time.Now()},
			PlayerID:  p.ID,
			Card:      card,
			Hand:      p.handCopy(),
			Snapshot:  snap,
		})
		r.logger.Info("Game over", "winner", p.Name)
		r.bus.Publish(GameOverEvent{
			baseEvent:  baseEvent{timestamp: time.Now()},
			WinnerID:   p.ID,
			WinnerName: p.Name,
			Snapshot:   snap,
		})
		return nil
	}

	vulnerable := false
	if len(p.Hand) == 1 && !priorDeclared {
		r.openWindow(p)
		vulnerable = true
	}

	// Side effects and turn movement
	n := len(r.players)
	var forced *Player
	var forcedCards []deck.Card
	switch {
	case drawPenalty(card.Rank) > 0:
		forced = r.players[r.turn.next(n)]
		forcedCards = r.deck.Draw(drawPenalty(card.Rank))
		forced.Hand = append(forced.Hand, forcedCards...)
		r.turn.skip(n)
	case card.Rank == deck.Skip:
		r.turn.skip(n)
	case card.Rank == deck.Reverse:
		r.turn.reverse(n)
	default:
		r.turn.advance(n)
	}

	snap := r.snapshot()
	r.bus.Publish(CardPlayedEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		PlayerID:  p.ID,
		Card:      card,
		Hand:      p.handCopy(),
		Snapshot:  snap,
	})
	if vulnerable {
		r.bus.Publish(VulnerableEvent{
			baseEvent: baseEvent{timestamp: time.Now()},
			PlayerID:  p.ID,
			Window:    r.window,
			Snapshot:  snap,
		})
	}
	if forced != nil {
		r.bus.Publish(CardsDrawnEvent{
			baseEvent:    baseEvent{timestamp: time.Now()},
			PlayerID:     forced.ID,
			Cards:        forcedCards,
			Hand:         forced.handCopy(),
			Count:        len(forcedCards),
			Reason:       DrawReasonForced,
			TurnAdvanced: true,
			Snapshot:     snap,
		})
	}
	return nil
}

// DrawCard draws a single card for the acting player. A playable draw leaves
// the turn with the drawer and reports playability; otherwise the turn
// advances and any wild color lock clears.
func (r *Room) DrawCard(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseInProgress {
		return ErrGameNotInProgress
	}
	p := r.findPlayer(actorID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if r.currentPlayer() != p {
		return ErrNotYourTurn
	}

	cards := r.deck.Draw(1)
	playable := false
	if len(cards) == 1 {
		p.Hand = append(p.Hand, cards[0])
		top, _ := r.deck.Top()
		playable = IsLegal(cards[0], top, r.declaredColor)
	}

	// A dead draw (including the degenerate every-card-in-hands case where
	// nothing was drawn) passes the turn and drops the color lock.
	if !playable {
		r.declaredColor = nil
		r.turn.advance(len(r.players))
	}

	r.logger.Info("Card drawn", "player", p.Name, "count", len(cards), "playable", playable)
	r.bus.Publish(CardsDrawnEvent{
		baseEvent:    baseEvent{timestamp: time.Now()},
		PlayerID:     p.ID,
		Cards:        cards,
		Hand:         p.handCopy(),
		Count:        len(cards),
		Reason:       DrawReasonTurn,
		Playable:     playable,
		TurnAdvanced: !playable,
		Snapshot:     r.snapshot(),
	})
	return nil
}
