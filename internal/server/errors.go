package server

import (
	"errors"

	"github.com/gorilla/websocket"

	"github.com/callout-games/uno-server/internal/game"
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Service-level errors for actions that fail before reaching a room
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNotInRoom    = errors.New("you are not in a room")
)

// errorCode maps an error to the stable wire code sent to the acting
// connection. Unknown errors get a generic code; the message text still
// carries the detail.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrNotInRoom):
		return "not_in_room"
	case errors.Is(err, game.ErrRoomFull):
		return "room_full"
	case errors.Is(err, game.ErrGameInProgress):
		return "game_in_progress"
	case errors.Is(err, game.ErrGameNotInProgress):
		return "game_not_started"
	case errors.Is(err, game.ErrGameFinished):
		return "game_finished"
	case errors.Is(err, game.ErrNotHost):
		return "not_host"
	case errors.Is(err, game.ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, game.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, game.ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrCardNotInHand):
		return "card_not_in_hand"
	case errors.Is(err, game.ErrIllegalCard):
		return "invalid_card"
	case errors.Is(err, game.ErrColorRequired), errors.Is(err, game.ErrInvalidColor):
		return "color_required"
	case errors.Is(err, game.ErrSelfCatch):
		return "self_catch"
	case errors.Is(err, game.ErrCatchTooLate):
		return "too_late"
	default:
		return "action_failed"
	}
}
