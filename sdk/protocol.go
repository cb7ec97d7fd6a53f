// Package sdk provides a WebSocket client for connecting to an UNO room
// server. It mirrors the wire protocol with standalone types so external
// programs can build clients without importing server internals.
package sdk

import (
	"encoding/json"
	"time"
)

// Message represents a WebSocket message between client and server
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now().UTC(),
	}, nil
}

// MessageType represents the type of a WebSocket message
type MessageType string

// Client to Server message types
const (
	MessageTypeSetName    MessageType = "set_name"
	MessageTypeCreateRoom MessageType = "create_room"
	MessageTypeJoinRoom   MessageType = "join_room"
	MessageTypeLeaveRoom  MessageType = "leave_room"
	MessageTypeListRooms  MessageType = "list_rooms"
	MessageTypeStartGame  MessageType = "start_game"
	MessageTypePlayCard   MessageType = "play_card"
	MessageTypeDrawCard   MessageType = "draw_card"
	MessageTypeDeclare    MessageType = "declare"
	MessageTypeCatch      MessageType = "catch"
)

// Server to Client message types
const (
	MessageTypeWelcome       MessageType = "welcome"
	MessageTypeError         MessageType = "error"
	MessageTypeRoomCreated   MessageType = "room_created"
	MessageTypeRoomJoined    MessageType = "room_joined"
	MessageTypeRoomLeft      MessageType = "room_left"
	MessageTypeRoomList      MessageType = "room_list"
	MessageTypePlayerJoined  MessageType = "player_joined"
	MessageTypePlayerLeft    MessageType = "player_left"
	MessageTypeGameStarted   MessageType = "game_started"
	MessageTypeCardPlayed    MessageType = "card_played"
	MessageTypeCardsDrawn    MessageType = "cards_drawn"
	MessageTypeHandUpdate    MessageType = "hand_update"
	MessageTypeVulnerable    MessageType = "vulnerable"
	MessageTypeDeclared      MessageType = "declared"
	MessageTypeCaught        MessageType = "caught"
	MessageTypeWindowExpired MessageType = "window_expired"
	MessageTypeGameOver      MessageType = "game_over"
	MessageTypeGameCancelled MessageType = "game_cancelled"
)

// Card colors as they appear on the wire
const (
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorWild   = "wild"
)

// Card ranks as they appear on the wire. Number cards use "0" through "9".
const (
	RankSkip         = "skip"
	RankReverse      = "reverse"
	RankDrawTwo      = "draw-two"
	RankWild         = "wild"
	RankWildDrawFour = "wild-draw-four"
)

// Card is a single UNO card as serialized by the server
type Card struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
	Rank  string `json:"rank"`
}

// IsWild returns true for wild and wild-draw-four cards
func (c Card) IsWild() bool {
	return c.Color == ColorWild
}

// PlayerInfo is the public view of a seated player
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CardCount  int    `json:"cardCount"`
	IsHost     bool   `json:"isHost"`
	Vulnerable bool   `json:"vulnerable"`
}

// Snapshot is the public room state attached to most server messages
type Snapshot struct {
	Code            string       `json:"code"`
	Phase           string       `json:"phase"`
	Players         []PlayerInfo `json:"players"`
	TopCard         *Card        `json:"topCard,omitempty"`
	CurrentPlayerID string       `json:"currentPlayerId,omitempty"`
	Direction       int          `json:"direction"`
	DeclaredColor   *string      `json:"declaredColor,omitempty"`
	WinnerID        string       `json:"winnerId,omitempty"`
}

// Room phases
const (
	PhaseLobby      = "lobby"
	PhaseInProgress = "in_progress"
	PhaseFinished   = "finished"
)

// Client to Server message data structures

type SetNameData struct {
	Name string `json:"name"`
}

type JoinRoomData struct {
	Code string `json:"code"`
}

type PlayCardData struct {
	CardID int     `json:"cardId"`
	Color  *string `json:"color,omitempty"`
}

type CatchData struct {
	TargetID string `json:"targetId"`
}

// Server to Client message data structures

type WelcomeData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomCreatedData struct {
	Code   string     `json:"code"`
	Player PlayerInfo `json:"player"`
}

type RoomJoinedData struct {
	Code     string     `json:"code"`
	Player   PlayerInfo `json:"player"`
	Snapshot Snapshot   `json:"snapshot"`
}

type RoomLeftData struct {
	Code string `json:"code"`
}

type RoomListItem struct {
	Code        string `json:"code"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
}

type RoomListData struct {
	Rooms []RoomListItem `json:"rooms"`
}

type PlayerJoinedData struct {
	Player   PlayerInfo `json:"player"`
	Snapshot Snapshot   `json:"snapshot"`
}

type PlayerLeftData struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	NewHostID  string   `json:"newHostId,omitempty"`
	Snapshot   Snapshot `json:"snapshot"`
}

type GameStartedData struct {
	Hand     []Card   `json:"hand"`
	Snapshot Snapshot `json:"snapshot"`
}

type CardPlayedData struct {
	PlayerID string   `json:"playerId"`
	Card     Card     `json:"card"`
	Snapshot Snapshot `json:"snapshot"`
}

type CardsDrawnData struct {
	PlayerID     string   `json:"playerId"`
	Count        int      `json:"count"`
	Reason       string   `json:"reason"`
	Playable     bool     `json:"playable,omitempty"`
	TurnAdvanced bool     `json:"turnAdvanced"`
	Snapshot     Snapshot `json:"snapshot"`
}

type HandUpdateData struct {
	Cards []Card `json:"cards,omitempty"`
	Hand  []Card `json:"hand"`
}

type VulnerableData struct {
	PlayerID      string   `json:"playerId"`
	WindowSeconds int      `json:"windowSeconds"`
	Snapshot      Snapshot `json:"snapshot"`
}

type DeclaredData struct {
	PlayerID string   `json:"playerId"`
	Safe     bool     `json:"safe"`
	Snapshot Snapshot `json:"snapshot"`
}

type CaughtData struct {
	CatcherID string   `json:"catcherId"`
	TargetID  string   `json:"targetId"`
	Penalty   int      `json:"penalty"`
	Snapshot  Snapshot `json:"snapshot"`
}

type WindowExpiredData struct {
	PlayerID string   `json:"playerId"`
	Snapshot Snapshot `json:"snapshot"`
}

type GameOverData struct {
	WinnerID   string   `json:"winnerId"`
	WinnerName string   `json:"winnerName"`
	Snapshot   Snapshot `json:"snapshot"`
}

type GameCancelledData struct {
	Reason   string   `json:"reason"`
	Snapshot Snapshot `json:"snapshot"`
}
