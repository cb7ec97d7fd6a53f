package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	playerID  string
	name      string
	roomCode  string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	rooms     *RoomService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, rooms *RoomService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		rooms:  rooms,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// PlayerID returns the player identity assigned at set_name, or "" before it
func (c *Connection) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// PlayerName returns the display name chosen at set_name
func (c *Connection) PlayerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Connection) setIdentity(playerID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
	c.name = name
}

// RoomCode returns the room this connection is seated in, or "" when not
// seated. Broadcast recipients are resolved through it.
func (c *Connection) RoomCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomCode
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomCode = code
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.PlayerID())

	switch msg.Type {
	case MessageTypeSetName:
		var data SetNameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse set name data")
			return
		}
		c.handleSetName(data)

	case MessageTypeCreateRoom:
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		code, err := c.rooms.CreateRoom(playerID, c.PlayerName())
		if err != nil {
			c.sendActionError(err)
			return
		}
		c.SetRoom(code)

	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.JoinRoom(playerID, c.PlayerName(), data.Code); err != nil {
			c.sendActionError(err)
			return
		}
		c.SetRoom(data.Code)

	case MessageTypeLeaveRoom:
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.LeaveRoom(playerID); err != nil {
			c.sendActionError(err)
			return
		}
		c.SetRoom("")

	case MessageTypeListRooms:
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.ListRooms(playerID); err != nil {
			c.sendActionError(err)
		}

	case MessageTypeStartGame:
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.StartGame(playerID); err != nil {
			c.sendActionError(err)
		}

	case MessageTypePlayCard:
		var data PlayCardData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse play card data")
			return
		}
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.PlayCard(playerID, data); err != nil {
			c.sendActionError(err)
		}

	case MessageTypeDrawCard:
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.DrawCard(playerID); err != nil {
			c.sendActionError(err)
		}

	case MessageTypeDeclare:
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.Declare(playerID); err != nil {
			c.sendActionError(err)
		}

	case MessageTypeCatch:
		var data CatchData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse catch data")
			return
		}
		playerID, ok := c.requireIdentity()
		if !ok {
			return
		}
		if err := c.rooms.Catch(playerID, data.TargetID); err != nil {
			c.sendActionError(err)
		}

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// requireIdentity rejects actions sent before set_name
func (c *Connection) requireIdentity() (string, bool) {
	playerID := c.PlayerID()
	if playerID == "" {
		c.sendError("not_authenticated", "Must set a name first")
		return "", false
	}
	return playerID, true
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// sendActionError reports a rejected action back to the acting connection.
// Rejected actions never mutate room state, so nothing else is broadcast.
func (c *Connection) sendActionError(err error) {
	c.sendError(errorCode(err), err.Error())
}

func (c *Connection) handleSetName(data SetNameData) {
	if data.Name == "" {
		c.sendError("invalid_name", "Player name required")
		return
	}
	if c.PlayerID() != "" {
		c.sendError("already_named", "Name already set for this connection")
		return
	}

	playerID := uuid.NewString()
	c.setIdentity(playerID, data.Name)
	c.logger.Info("Player identified", "playerId", playerID, "name", data.Name)

	response, _ := NewMessage(MessageTypeWelcome, WelcomeData{
		PlayerID: playerID,
		Name:     data.Name,
	})
	_ = c.SendMessage(response)
}
