package game

import "errors"

// Precondition violations. All are detected before any state mutation, so a
// rejected action leaves the room exactly as it was.
var (
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrGameInProgress    = errors.New("game already in progress")
	ErrGameFinished      = errors.New("game is already over")
	ErrRoomFull          = errors.New("room is full")
	ErrNotHost           = errors.New("only the host can start the game")
	ErrNotEnoughPlayers  = errors.New("at least two players are required")
	ErrUnknownPlayer     = errors.New("player is not in this room")
	ErrAlreadyJoined     = errors.New("player already in this room")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrCardNotInHand     = errors.New("card is not in your hand")
	ErrIllegalCard       = errors.New("card does not match the discard pile")
	ErrColorRequired     = errors.New("a color must be chosen for a wild card")
	ErrInvalidColor      = errors.New("chosen color must be red, blue, green or yellow")
	ErrSelfCatch         = errors.New("you cannot catch yourself")
	ErrCatchTooLate      = errors.New("too late, player is no longer vulnerable")
)
