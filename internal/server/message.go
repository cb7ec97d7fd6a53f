package server

import (
	"encoding/json"
	"time"

	"github.com/callout-games/uno-server/internal/deck"
	"github.com/callout-games/uno-server/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type SetNameData struct {
	Name string `json:"name"`
}

type JoinRoomData struct {
	Code string `json:"code"`
}

type PlayCardData struct {
	CardID int         `json:"cardId"`
	Color  *deck.Color `json:"color,omitempty"`
}

type CatchData struct {
	TargetID string `json:"targetId"`
}

// Server → Client Messages

type WelcomeData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomCreatedData struct {
	Code   string          `json:"code"`
	Player game.PlayerInfo `json:"player"`
}

type RoomJoinedData struct {
	Code     string          `json:"code"`
	Player   game.PlayerInfo `json:"player"`
	Snapshot game.Snapshot   `json:"snapshot"`
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
	Player   game.PlayerInfo `json:"player"`
	Snapshot game.Snapshot   `json:"snapshot"`
}

type PlayerLeftData struct {
	PlayerID   string        `json:"playerId"`
	PlayerName string        `json:"playerName"`
	NewHostID  string        `json:"newHostId,omitempty"`
	Snapshot   game.Snapshot `json:"snapshot"`
}

type GameStartedData struct {
	// Hand is the recipient's private opening hand
	Hand     []deck.Card   `json:"hand"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type CardPlayedData struct {
	PlayerID string        `json:"playerId"`
	Card     deck.Card     `json:"card"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// CardsDrawnData is the public notification of a draw; the drawn cards
// themselves travel only in the targeted HandUpdateData.
type CardsDrawnData struct {
	PlayerID     string        `json:"playerId"`
	Count        int           `json:"count"`
	Reason       string        `json:"reason"`
	Playable     bool          `json:"playable,omitempty"`
	TurnAdvanced bool          `json:"turnAdvanced"`
	Snapshot     game.Snapshot `json:"snapshot"`
}

// HandUpdateData is sent only to the owner of the hand
type HandUpdateData struct {
	Cards []deck.Card `json:"cards,omitempty"`
	Hand  []deck.Card `json:"hand"`
}

type VulnerableData struct {
	PlayerID      string        `json:"playerId"`
	WindowSeconds int           `json:"windowSeconds"`
	Snapshot      game.Snapshot `json:"snapshot"`
}

type DeclaredData struct {
	PlayerID string        `json:"playerId"`
	Safe     bool          `json:"safe"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type CaughtData struct {
	CatcherID string        `json:"catcherId"`
	TargetID  string        `json:"targetId"`
	Penalty   int           `json:"penalty"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

type WindowExpiredData struct {
	PlayerID string        `json:"playerId"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type GameOverData struct {
	WinnerID   string        `json:"winnerId"`
	WinnerName string        `json:"winnerName"`
	Snapshot   game.Snapshot `json:"snapshot"`
}

type GameCancelledData struct {
	Reason   string        `json:"reason"`
	Snapshot game.Snapshot `json:"snapshot"`
}
