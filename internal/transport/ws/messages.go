package ws

import "encoding/json"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgCreateRoom      MessageType = "createRoom"
	MsgJoinRoom        MessageType = "joinRoom"
	MsgStartGame       MessageType = "startGame"
	MsgTurnAcknowledge MessageType = "turnAcknowledged"
	MsgDrawing         MessageType = "drawing"
	MsgGuess           MessageType = "guess"
	MsgPassTurn        MessageType = "passTurn"
	MsgExitRoom        MessageType = "exitRoom"
	MsgPing            MessageType = "ping"
)

// Server → Client transport-level message types. Game events are
// typed in the domain package and serialized as-is; these cover the
// transport concerns only.
const (
	MsgError MessageType = "error"
	MsgPong  MessageType = "pong"
)

// ClientMessage represents a message from client to server. The
// payload stays raw until the type is known, then decodes into the
// matching payload struct.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client message payloads

// CreateRoomPayload is the payload for createRoom
type CreateRoomPayload struct {
	PlayerName string `json:"playerName"`
}

// JoinRoomPayload is the payload for joinRoom
type JoinRoomPayload struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

// RoomCodePayload is the payload for the events that carry only the
// target room: startGame, turnAcknowledged, passTurn, exitRoom.
type RoomCodePayload struct {
	RoomCode string `json:"roomCode"`
}

// GuessPayload is the payload for guess
type GuessPayload struct {
	RoomCode string `json:"roomCode"`
	Guess    string `json:"guess"`
}

// DrawingRelayPayload is the payload for drawing. Data is opaque to
// the server and relayed verbatim.
type DrawingRelayPayload struct {
	RoomCode string          `json:"roomCode"`
	Data     json.RawMessage `json:"data"`
}

// ErrorPayload is sent for malformed or unknown messages
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TransportMessage is a server → client transport-level message.
type TransportMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
)
