package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
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

	// Server to client messages
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

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
