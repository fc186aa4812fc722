package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sketchparty/internal/app"
	"sketchparty/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 65536

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client is one WebSocket connection: it maps inbound events to
// registry and session calls, and implements app.ClientConnection for
// outbound delivery.
type Client struct {
	conn     *websocket.Conn
	registry *app.Registry
	connID   string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, registry *app.Registry, connID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		registry: registry,
		connID:   connID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// ConnID returns the connection identifier (app.ClientConnection).
func (c *Client) ConnID() string {
	return c.connID
}

// Send implements app.ClientConnection
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "connID", c.connID)
		return nil
	}
}

// Close implements app.ClientConnection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection. On exit the
// connection is treated as a departure from whatever room holds it.
func (c *Client) readPump() {
	defer func() {
		c.registry.DropConnection(c.connID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgCreateRoom:
		c.handleCreateRoom(msg.Payload)
	case MsgJoinRoom:
		c.handleJoinRoom(msg.Payload)
	case MsgStartGame:
		c.handleStartGame(msg.Payload)
	case MsgTurnAcknowledge:
		c.handleTurnAcknowledged(msg.Payload)
	case MsgDrawing:
		c.handleDrawing(msg.Payload)
	case MsgGuess:
		c.handleGuess(msg.Payload)
	case MsgPassTurn:
		c.handlePassTurn(msg.Payload)
	case MsgExitRoom:
		c.handleExitRoom(msg.Payload)
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleCreateRoom handles a createRoom message
func (c *Client) handleCreateRoom(raw json.RawMessage) {
	var payload CreateRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.PlayerName == "" {
		c.sendError(ErrCodeInvalidMessage, "Player name is required")
		return
	}

	if _, err := c.registry.CreateRoom(c.connID, payload.PlayerName, c); err != nil {
		c.sendJoinError("", err)
	}
}

// handleJoinRoom handles a joinRoom message
func (c *Client) handleJoinRoom(raw json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.PlayerName == "" {
		c.sendError(ErrCodeInvalidMessage, "Room code and player name are required")
		return
	}

	_, err := c.registry.JoinRoom(payload.RoomCode, c.connID, payload.PlayerName, c)
	if err != nil {
		c.sendJoinError(payload.RoomCode, err)
	}
}

// handleStartGame handles a startGame message
func (c *Client) handleStartGame(raw json.RawMessage) {
	session := c.sessionFromPayload(raw)
	if session == nil {
		return
	}
	session.StartGame()
}

// handleTurnAcknowledged handles a turnAcknowledged message
func (c *Client) handleTurnAcknowledged(raw json.RawMessage) {
	session := c.sessionFromPayload(raw)
	if session == nil {
		return
	}
	session.Acknowledge(c.connID)
}

// handleDrawing relays a drawing payload to the rest of the room
func (c *Client) handleDrawing(raw json.RawMessage) {
	var payload DrawingRelayPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	session := c.registry.SessionFor(payload.RoomCode, c.connID)
	if session == nil {
		return
	}
	session.RelayDrawing(c.connID, payload.Data)
}

// handleGuess handles a guess message
func (c *Client) handleGuess(raw json.RawMessage) {
	var payload GuessPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	session := c.registry.SessionFor(payload.RoomCode, c.connID)
	if session == nil {
		return
	}
	session.SubmitGuess(c.connID, payload.Guess)
}

// handlePassTurn handles a passTurn message
func (c *Client) handlePassTurn(raw json.RawMessage) {
	session := c.sessionFromPayload(raw)
	if session == nil {
		return
	}
	session.Pass(c.connID)
}

// handleExitRoom handles an exitRoom message
func (c *Client) handleExitRoom(raw json.RawMessage) {
	session := c.sessionFromPayload(raw)
	if session == nil {
		return
	}
	session.Leave(c.connID)
}

// sessionFromPayload decodes a roomCode-only payload and resolves the
// session, falling back to the by-connection scan for stale codes. A
// missing room is nothing to do, not an error.
func (c *Client) sessionFromPayload(raw json.RawMessage) *app.RoomSession {
	var payload RoomCodePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return nil
	}

	return c.registry.SessionFor(payload.RoomCode, c.connID)
}

// sendJoinError maps a join rejection to the joinError event.
func (c *Client) sendJoinError(roomCode string, err error) {
	c.Send(domain.NewPlayerEvent(domain.EventJoinError, roomCode, c.connID, &domain.JoinErrorPayload{
		Message: joinErrorMessage(err),
	}))
}

// joinErrorMessage returns the user-facing text for a join rejection.
func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, domain.ErrGameInProgress):
		return "Game already started"
	case errors.Is(err, domain.ErrNameTaken):
		return "Name already taken in this room"
	case errors.Is(err, domain.ErrAlreadyInRoom):
		return "Already in a room"
	default:
		return "Unable to join room"
	}
}

// sendError sends a transport-level error message to the client
func (c *Client) sendError(code, message string) {
	c.Send(&TransportMessage{
		Type: MsgError,
		Payload: &ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(&TransportMessage{Type: MsgPong})
}
