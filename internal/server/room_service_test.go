package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callout-games/uno-server/internal/game"
	"github.com/callout-games/uno-server/internal/roomid"
)

func TestCreateRoomSeatsHost(t *testing.T) {
	svc, sender, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)
	assert.True(t, roomid.Valid(code))
	assert.Equal(t, 1, svc.RoomCount())

	var created RoomCreatedData
	decode(t, sender.lastTargeted("p1", MessageTypeRoomCreated), &created)
	assert.Equal(t, code, created.Code)
	assert.Equal(t, "p1", created.Player.ID)
	assert.True(t, created.Player.IsHost)
}

func TestCreateRoomWhileSeatedRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)

	code, err := svc.CreateRoom("p1", "Alice")
	assert.ErrorIs(t, err, game.ErrAlreadyJoined)
	assert.Empty(t, code)
	assert.Equal(t, 1, svc.RoomCount())
}

func TestJoinRoom(t *testing.T) {
	svc, sender, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.JoinRoom("p2", "Bob", code))

	var joined RoomJoinedData
	decode(t, sender.lastTargeted("p2", MessageTypeRoomJoined), &joined)
	assert.Equal(t, code, joined.Code)
	assert.Equal(t, "p2", joined.Player.ID)
	assert.False(t, joined.Player.IsHost)
	assert.Len(t, joined.Snapshot.Players, 2)

	var broadcast PlayerJoinedData
	decode(t, sender.lastBroadcast(MessageTypePlayerJoined), &broadcast)
	assert.Equal(t, "p2", broadcast.Player.ID)
}

func TestJoinUnknownRoom(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.JoinRoom("p1", "Alice", "NOSUCH")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinWhileSeatedRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.JoinRoom("p1", "Alice", code), game.ErrAlreadyJoined)
}

func TestLeaveDestroysEmptyRoom(t *testing.T) {
	svc, sender, _ := newTestService(t)

	_, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.LeaveRoom("p1"))
	assert.Equal(t, 0, svc.RoomCount())
	assert.NotNil(t, sender.lastTargeted("p1", MessageTypeRoomLeft))

	// Leaving again is an error, the seat is gone
	assert.ErrorIs(t, svc.LeaveRoom("p1"), ErrNotInRoom)
}

func TestLeavePromotesHost(t *testing.T) {
	svc, sender, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom("p2", "Bob", code))

	require.NoError(t, svc.LeaveRoom("p1"))
	assert.Equal(t, 1, svc.RoomCount())

	var left PlayerLeftData
	decode(t, sender.lastBroadcast(MessageTypePlayerLeft), &left)
	assert.Equal(t, "p1", left.PlayerID)
	assert.Equal(t, "p2", left.NewHostID)
}

func TestActionsRequireSeat(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.ErrorIs(t, svc.StartGame("ghost"), ErrNotInRoom)
	assert.ErrorIs(t, svc.PlayCard("ghost", PlayCardData{CardID: 1}), ErrNotInRoom)
	assert.ErrorIs(t, svc.DrawCard("ghost"), ErrNotInRoom)
	assert.ErrorIs(t, svc.Declare("ghost"), ErrNotInRoom)
	assert.ErrorIs(t, svc.Catch("ghost", "p1"), ErrNotInRoom)
}

func TestListRoomsFiltersStartedRooms(t *testing.T) {
	svc, sender, _ := newTestService(t)

	lobbyCode, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)

	startedCode, err := svc.CreateRoom("p2", "Bob")
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom("p3", "Carol", startedCode))
	require.NoError(t, svc.StartGame("p2"))

	require.NoError(t, svc.ListRooms("p1"))

	var list RoomListData
	decode(t, sender.lastTargeted("p1", MessageTypeRoomList), &list)
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, lobbyCode, list.Rooms[0].Code)
	assert.Equal(t, 1, list.Rooms[0].PlayerCount)
	assert.Equal(t, game.MaxPlayers, list.Rooms[0].MaxPlayers)
}

func TestStartGameDealsPrivateHands(t *testing.T) {
	svc, sender, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom("p2", "Bob", code))

	require.NoError(t, svc.StartGame("p1"))

	for _, playerID := range []string{"p1", "p2"} {
		var started GameStartedData
		decode(t, sender.lastTargeted(playerID, MessageTypeGameStarted), &started)
		// An initial draw-two flip gives the first seat two extra cards
		assert.GreaterOrEqual(t, len(started.Hand), game.StartingHandSize)
		assert.Equal(t, game.PhaseInProgress, started.Snapshot.Phase)
		require.NotNil(t, started.Snapshot.TopCard)
	}

	// The opening deal is never broadcast, hands travel only to their owners
	assert.Zero(t, sender.broadcastCount(MessageTypeGameStarted))
}

func TestStartGameRequiresHost(t *testing.T) {
	svc, _, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom("p2", "Bob", code))

	assert.ErrorIs(t, svc.StartGame("p2"), game.ErrNotHost)
}

func TestTurnActionsReachTheRoom(t *testing.T) {
	svc, sender, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom("p2", "Bob", code))
	require.NoError(t, svc.StartGame("p1"))

	var started GameStartedData
	decode(t, sender.lastTargeted("p1", MessageTypeGameStarted), &started)

	current := started.Snapshot.CurrentPlayerID
	other := "p1"
	if current == "p1" {
		other = "p2"
	}

	assert.ErrorIs(t, svc.DrawCard(other), game.ErrNotYourTurn)

	otherUpdates := sender.targetedCount(other, MessageTypeHandUpdate)
	require.NoError(t, svc.DrawCard(current))
	var drawn CardsDrawnData
	decode(t, sender.lastBroadcast(MessageTypeCardsDrawn), &drawn)
	assert.Equal(t, current, drawn.PlayerID)
	assert.Equal(t, 1, drawn.Count)

	// The drawer alone gets the card itself
	var hand HandUpdateData
	decode(t, sender.lastTargeted(current, MessageTypeHandUpdate), &hand)
	assert.Len(t, hand.Cards, 1)
	assert.Equal(t, otherUpdates, sender.targetedCount(other, MessageTypeHandUpdate))
}

func TestDisconnectMidGameCancelsBelowMinimum(t *testing.T) {
	svc, sender, _ := newTestService(t)

	code, err := svc.CreateRoom("p1", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.JoinRoom("p2", "Bob", code))
	require.NoError(t, svc.StartGame("p1"))

	require.NoError(t, svc.LeaveRoom("p2"))

	var cancelled GameCancelledData
	decode(t, sender.lastBroadcast(MessageTypeGameCancelled), &cancelled)
	assert.Equal(t, game.PhaseFinished, cancelled.Snapshot.Phase)
	assert.Equal(t, 1, svc.RoomCount())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{ErrRoomNotFound, "room_not_found"},
		{ErrNotInRoom, "not_in_room"},
		{game.ErrRoomFull, "room_full"},
		{game.ErrGameFinished, "game_finished"},
		{game.ErrNotYourTurn, "not_your_turn"},
		{game.ErrIllegalCard, "invalid_card"},
		{game.ErrColorRequired, "color_required"},
		{game.ErrSelfCatch, "self_catch"},
		{game.ErrCatchTooLate, "too_late"},
		{assert.AnError, "action_failed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, errorCode(tt.err), "error %v", tt.err)
	}
}
