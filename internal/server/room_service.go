package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/callout-games/uno-server/internal/game"
	"github.com/callout-games/uno-server/internal/roomid"
)

// Sender delivers wire messages to connected players. *Server implements it;
// tests substitute a recorder.
type Sender interface {
	BroadcastToRoom(code string, msg *Message)
	SendToPlayer(playerID string, msg *Message) error
}

// RoomService owns the registry of active rooms and the explicit
// player-to-room association. It is the session manager: every inbound action
// resolves its room here and is delegated to the room engine, which
// serializes it against concurrent actions and timer fires.
type RoomService struct {
	mu          sync.RWMutex
	rooms       map[string]*game.Room
	memberships map[string]string // player id -> room code

	sender    Sender
	generator *roomid.Generator
	clock     quartz.Clock
	window    time.Duration
	logger    *log.Logger
}

// NewRoomService creates a room service. A nil clock means the real clock.
func NewRoomService(sender Sender, clock quartz.Clock, window time.Duration, logger *log.Logger) *RoomService {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if window <= 0 {
		window = game.DefaultDeclareWindow
	}
	return &RoomService{
		rooms:       make(map[string]*game.Room),
		memberships: make(map[string]string),
		sender:      sender,
		generator:   roomid.NewGenerator(nil),
		clock:       clock,
		window:      window,
		logger:      logger.WithPrefix("rooms"),
	}
}

// SetGenerator replaces the room code generator, for deterministic tests
func (rs *RoomService) SetGenerator(gen *roomid.Generator) {
	rs.generator = gen
}

// CreateRoom creates a room with a fresh collision-checked code and seats the
// creating player as host
func (rs *RoomService) CreateRoom(playerID, name string) (string, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, ok := rs.memberships[playerID]; ok {
		return "", game.ErrAlreadyJoined
	}

	code := rs.generator.Generate()
	for i := 0; rs.rooms[code] != nil; i++ {
		if i > 100 {
			return "", fmt.Errorf("could not allocate a unique room code")
		}
		code = rs.generator.Generate()
	}

	room := game.NewRoom(code, game.RoomConfig{
		Clock:         rs.clock,
		DeclareWindow: rs.window,
	}, rs.logger)
	room.Events().Subscribe(&roomEvents{service: rs, code: code})

	if err := room.Join(playerID, name); err != nil {
		return "", err
	}
	rs.rooms[code] = room
	rs.memberships[playerID] = code

	rs.logger.Info("Room created", "code", code, "host", name)

	snap := room.Snapshot()
	msg, err := NewMessage(MessageTypeRoomCreated, RoomCreatedData{
		Code:   code,
		Player: snap.Players[0],
	})
	if err == nil {
		_ = rs.sender.SendToPlayer(playerID, msg)
	}
	return code, nil
}

// JoinRoom seats a player in an existing room
func (rs *RoomService) JoinRoom(playerID, name, code string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, ok := rs.memberships[playerID]; ok {
		return game.ErrAlreadyJoined
	}
	room := rs.rooms[code]
	if room == nil {
		return ErrRoomNotFound
	}
	if err := room.Join(playerID, name); err != nil {
		return err
	}
	rs.memberships[playerID] = code

	snap := room.Snapshot()
	var joined game.PlayerInfo
	for _, p := range snap.Players {
		if p.ID == playerID {
			joined = p
		}
	}
	msg, err := NewMessage(MessageTypeRoomJoined, RoomJoinedData{
		Code:     code,
		Player:   joined,
		Snapshot: snap,
	})
	if err == nil {
		_ = rs.sender.SendToPlayer(playerID, msg)
	}
	return nil
}

// LeaveRoom removes a player from their room, destroying the room when the
// last player leaves. Also the disconnect cleanup path.
func (rs *RoomService) LeaveRoom(playerID string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	code, ok := rs.memberships[playerID]
	if !ok {
		return ErrNotInRoom
	}
	room := rs.rooms[code]
	delete(rs.memberships, playerID)
	if room == nil {
		return ErrRoomNotFound
	}

	if err := room.Leave(playerID); err != nil {
		return err
	}
	if room.PlayerCount() == 0 {
		delete(rs.rooms, code)
		rs.logger.Info("Room destroyed", "code", code)
	}

	msg, err := NewMessage(MessageTypeRoomLeft, RoomLeftData{Code: code})
	if err == nil {
		_ = rs.sender.SendToPlayer(playerID, msg)
	}
	return nil
}

// ListRooms sends the player a snapshot of joinable rooms
func (rs *RoomService) ListRooms(playerID string) error {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	rooms := make([]RoomListItem, 0)
	for code, room := range rs.rooms {
		if room.Phase() != game.PhaseLobby {
			continue
		}
		count := room.PlayerCount()
		if count >= game.MaxPlayers {
			continue
		}
		rooms = append(rooms, RoomListItem{
			Code:        code,
			PlayerCount: count,
			MaxPlayers:  game.MaxPlayers,
		})
	}

	msg, err := NewMessage(MessageTypeRoomList, RoomListData{Rooms: rooms})
	if err != nil {
		return err
	}
	return rs.sender.SendToPlayer(playerID, msg)
}

// roomFor resolves the room a player is seated in
func (rs *RoomService) roomFor(playerID string) (*game.Room, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	code, ok := rs.memberships[playerID]
	if !ok {
		return nil, ErrNotInRoom
	}
	room := rs.rooms[code]
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// StartGame starts the game in the acting player's room
func (rs *RoomService) StartGame(playerID string) error {
	room, err := rs.roomFor(playerID)
	if err != nil {
		return err
	}
	return room.Start(playerID)
}

// PlayCard plays a card for the acting player
func (rs *RoomService) PlayCard(playerID string, data PlayCardData) error {
	room, err := rs.roomFor(playerID)
	if err != nil {
		return err
	}
	return room.PlayCard(playerID, data.CardID, data.Color)
}

// DrawCard draws a card for the acting player
func (rs *RoomService) DrawCard(playerID string) error {
	room, err := rs.roomFor(playerID)
	if err != nil {
		return err
	}
	return room.DrawCard(playerID)
}

// Declare makes the safety call for the acting player
func (rs *RoomService) Declare(playerID string) error {
	room, err := rs.roomFor(playerID)
	if err != nil {
		return err
	}
	return room.Declare(playerID)
}

// Catch attempts to catch a vulnerable player
func (rs *RoomService) Catch(playerID, targetID string) error {
	room, err := rs.roomFor(playerID)
	if err != nil {
		return err
	}
	return room.Catch(playerID, targetID)
}

// RoomCount returns the number of active rooms
func (rs *RoomService) RoomCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.rooms)
}

// roomEvents converts room engine events into wire messages. Events arrive
// synchronously under the room lock and carry everything needed, so this
// never calls back into the room.
type roomEvents struct {
	service *RoomService
	code    string
}

// OnEvent implements the game.EventSubscriber interface
func (re *roomEvents) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.PlayerJoinedEvent:
		re.broadcast(MessageTypePlayerJoined, PlayerJoinedData{
			Player:   e.Player,
			Snapshot: e.Snapshot,
		})

	case game.PlayerLeftEvent:
		re.broadcast(MessageTypePlayerLeft, PlayerLeftData{
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			NewHostID:  e.NewHostID,
			Snapshot:   e.Snapshot,
		})

	case game.GameStartedEvent:
		for playerID, hand := range e.Hands {
			re.send(playerID, MessageTypeGameStarted, GameStartedData{
				Hand:     hand,
				Snapshot: e.Snapshot,
			})
		}

	case game.CardPlayedEvent:
		re.broadcast(MessageTypeCardPlayed, CardPlayedData{
			PlayerID: e.PlayerID,
			Card:     e.Card,
			Snapshot: e.Snapshot,
		})
		re.send(e.PlayerID, MessageTypeHandUpdate, HandUpdateData{Hand: e.Hand})

	case game.CardsDrawnEvent:
		re.broadcast(MessageTypeCardsDrawn, CardsDrawnData{
			PlayerID:     e.PlayerID,
			Count:        e.Count,
			Reason:       string(e.Reason),
			Playable:     e.Playable,
			TurnAdvanced: e.TurnAdvanced,
			Snapshot:     e.Snapshot,
		})
		re.send(e.PlayerID, MessageTypeHandUpdate, HandUpdateData{
			Cards: e.Cards,
			Hand:  e.Hand,
		})

	case game.VulnerableEvent:
		re.broadcast(MessageTypeVulnerable, VulnerableData{
			PlayerID:      e.PlayerID,
			WindowSeconds: int(e.Window / time.Second),
			Snapshot:      e.Snapshot,
		})

	case game.DeclaredEvent:
		re.broadcast(MessageTypeDeclared, DeclaredData{
			PlayerID: e.PlayerID,
			Safe:     e.Safe,
			Snapshot: e.Snapshot,
		})

	case game.CaughtEvent:
		re.broadcast(MessageTypeCaught, CaughtData{
			CatcherID: e.CatcherID,
			TargetID:  e.TargetID,
			Penalty:   e.Penalty,
			Snapshot:  e.Snapshot,
		})

	case game.WindowExpiredEvent:
		re.broadcast(MessageTypeWindowExpired, WindowExpiredData{
			PlayerID: e.PlayerID,
			Snapshot: e.Snapshot,
		})

	case game.GameOverEvent:
		re.broadcast(MessageTypeGameOver, GameOverData{
			WinnerID:   e.WinnerID,
			WinnerName: e.WinnerName,
			Snapshot:   e.Snapshot,
		})

	case game.GameCancelledEvent:
		re.broadcast(MessageTypeGameCancelled, GameCancelledData{
			Reason:   e.Reason,
			Snapshot: e.Snapshot,
		})
	}
}

func (re *roomEvents) broadcast(mt MessageType, data interface{}) {
	msg, err := NewMessage(mt, data)
	if err != nil {
		re.service.logger.Error("Failed to encode event", "type", mt, "error", err)
		return
	}
	re.service.sender.BroadcastToRoom(re.code, msg)
}

func (re *roomEvents) send(playerID string, mt MessageType, data interface{}) {
	msg, err := NewMessage(mt, data)
	if err != nil {
		re.service.logger.Error("Failed to encode event", "type", mt, "error", err)
		return
	}
	_ = re.service.sender.SendToPlayer(playerID, msg)
}
