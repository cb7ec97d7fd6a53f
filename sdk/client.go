package sdk

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// EventHandler is a function that handles incoming messages
type EventHandler func(*Message)

// Client provides a WebSocket client for connecting to the UNO server
type Client struct {
	serverURL     string
	conn          *websocket.Conn
	logger        *log.Logger
	mu            sync.RWMutex
	eventHandlers map[MessageType][]EventHandler
	connected     bool
	stopChan      chan struct{}
}

// NewClient creates a new WebSocket client
func NewClient(serverURL string, logger *log.Logger) *Client {
	return &Client{
		serverURL:     serverURL,
		logger:        logger,
		eventHandlers: make(map[MessageType][]EventHandler),
		stopChan:      make(chan struct{}),
	}
}

// Connect establishes a WebSocket connection to the server
func (c *Client) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	// Ensure WebSocket scheme
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// Already correct
	default:
		u.Scheme = "ws"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	c.logger.Info("Connecting to server", "url", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	// Start message reader
	go c.readMessages()

	return nil
}

// Disconnect closes the WebSocket connection
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	c.connected = false
	close(c.stopChan)

	if c.conn != nil {
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return c.conn.Close()
	}

	return nil
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SendMessage sends a message to the server
func (c *Client) SendMessage(msg *Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected || c.conn == nil {
		return fmt.Errorf("not connected")
	}

	return c.conn.WriteJSON(msg)
}

// sendTyped marshals data and sends it under the given message type
func (c *Client) sendTyped(msgType MessageType, data interface{}) error {
	msg, err := NewMessage(msgType, data)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// AddEventHandler registers a handler for a specific message type. Handlers
// run on their own goroutines and must not block on the client.
func (c *Client) AddEventHandler(msgType MessageType, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eventHandlers[msgType] = append(c.eventHandlers[msgType], handler)
}

// RemoveEventHandlers removes all handlers for a specific message type
func (c *Client) RemoveEventHandlers(msgType MessageType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.eventHandlers, msgType)
}

// readMessages continuously reads messages from the WebSocket connection
func (c *Client) readMessages() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		select {
		case <-c.stopChan:
			return
		default:
			var msg Message
			err := c.conn.ReadJSON(&msg)
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Error("WebSocket error", "error", err)
				}
				return
			}

			c.dispatchMessage(&msg)
		}
	}
}

// dispatchMessage sends a message to all registered handlers
func (c *Client) dispatchMessage(msg *Message) {
	c.mu.RLock()
	handlers := c.eventHandlers[msg.Type]
	c.mu.RUnlock()

	for _, handler := range handlers {
		// Run handlers in goroutines to prevent blocking the reader
		go handler(msg)
	}
}

// SetName identifies this connection to the server. The server answers with
// a welcome message carrying the assigned player ID.
func (c *Client) SetName(name string) error {
	return c.sendTyped(MessageTypeSetName, SetNameData{Name: name})
}

// CreateRoom asks the server for a fresh room with this player as host
func (c *Client) CreateRoom() error {
	return c.sendTyped(MessageTypeCreateRoom, struct{}{})
}

// JoinRoom joins an existing room by code
func (c *Client) JoinRoom(code string) error {
	return c.sendTyped(MessageTypeJoinRoom, JoinRoomData{Code: code})
}

// LeaveRoom leaves the current room
func (c *Client) LeaveRoom() error {
	return c.sendTyped(MessageTypeLeaveRoom, struct{}{})
}

// ListRooms requests the list of joinable rooms
func (c *Client) ListRooms() error {
	return c.sendTyped(MessageTypeListRooms, struct{}{})
}

// StartGame starts the game, host only
func (c *Client) StartGame() error {
	return c.sendTyped(MessageTypeStartGame, struct{}{})
}

// PlayCard plays a card from hand. Wild cards require a chosen color.
func (c *Client) PlayCard(cardID int, color *string) error {
	return c.sendTyped(MessageTypePlayCard, PlayCardData{CardID: cardID, Color: color})
}

// DrawCard draws one card from the pile
func (c *Client) DrawCard() error {
	return c.sendTyped(MessageTypeDrawCard, struct{}{})
}

// Declare makes the safety call at one card, or pre-declares before playing
// the second-to-last card
func (c *Client) Declare() error {
	return c.sendTyped(MessageTypeDeclare, struct{}{})
}

// Catch reports a vulnerable opponent who failed to declare
func (c *Client) Catch(targetID string) error {
	return c.sendTyped(MessageTypeCatch, CatchData{TargetID: targetID})
}
