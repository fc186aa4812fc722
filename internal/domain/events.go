package domain

import (
	"encoding/json"
	"time"
)

// EventType represents the type of outbound game event.
type EventType string

const (
	EventRoomCreated       EventType = "roomCreated"
	EventPlayerJoined      EventType = "playerJoined"
	EventJoinError         EventType = "joinError"
	EventYourTurn          EventType = "yourTurn"
	EventWaitingForDrawing EventType = "waitingForDrawing"
	EventAllPlayersReady   EventType = "allPlayersReady"
	EventDrawing           EventType = "drawing"
	EventCorrectGuess      EventType = "correctGuess"
	EventWrongGuess        EventType = "wrongGuess"
	EventCloseGuess        EventType = "closeGuess"
	EventHint              EventType = "hint"
	EventPlayerPassed      EventType = "playerPassed"
	EventPlayerLeft        EventType = "playerLeft"
	EventTimerUpdate       EventType = "timerUpdate"
	EventTimeUp            EventType = "timeUp"
	EventDifficultyChange  EventType = "difficultyChange"
)

// Event is an outbound notification produced by room handlers. The
// To/Exclude fields control fan-out and never reach the wire: an
// event with To set is delivered to that connection only, an event
// with Exclude set goes to everyone in the room but that connection,
// and an event with neither goes to the whole room.
type Event struct {
	Type      EventType   `json:"type"`
	RoomCode  string      `json:"roomCode,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`

	To      string `json:"-"`
	Exclude string `json:"-"`
}

// NewEvent creates a room-wide event.
func NewEvent(eventType EventType, roomCode string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		RoomCode:  roomCode,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates an event delivered to a single connection.
func NewPlayerEvent(eventType EventType, roomCode, connID string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		RoomCode:  roomCode,
		Payload:   payload,
		Timestamp: time.Now(),
		To:        connID,
	}
}

// NewRelayEvent creates an event delivered to everyone in the room
// except the sender. Used for the drawing relay.
func NewRelayEvent(eventType EventType, roomCode, senderID string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		RoomCode:  roomCode,
		Payload:   payload,
		Timestamp: time.Now(),
		Exclude:   senderID,
	}
}

// Payload types for the outbound events

// RoomCreatedPayload confirms room creation to the creator.
type RoomCreatedPayload struct {
	RoomCode string       `json:"roomCode"`
	Players  []PlayerInfo `json:"players"`
}

// PlayerJoinedPayload is broadcast when the roster changes on join.
type PlayerJoinedPayload struct {
	Players  []PlayerInfo `json:"players"`
	RoomCode string       `json:"roomCode"`
}

// JoinErrorPayload carries a join rejection back to the requester.
type JoinErrorPayload struct {
	Message string `json:"message"`
}

// YourTurnPayload is sent to the drawer with the secret word.
type YourTurnPayload struct {
	Word          string `json:"word"`
	Hint          string `json:"hint"`
	Round         int    `json:"round"`
	WaitingForAck bool   `json:"waitingForAck"`
}

// WaitingForDrawingPayload is sent to every guesser at turn start.
type WaitingForDrawingPayload struct {
	Drawer        string `json:"drawer"`
	Round         int    `json:"round"`
	WaitingForAck bool   `json:"waitingForAck"`
}

// CorrectGuessPayload is broadcast room-wide on a correct guess.
type CorrectGuessPayload struct {
	Guesser    string       `json:"guesser"`
	Word       string       `json:"word"`
	Scores     []ScoreEntry `json:"scores"`
	NextDrawer string       `json:"nextDrawer"`
}

// WrongGuessPayload is delivered to the drawer only.
type WrongGuessPayload struct {
	Guesser string `json:"guesser"`
	Guess   string `json:"guess"`
}

// CloseGuessPayload is delivered privately to a guesser whose wrong
// guess scored at or above the close-guess threshold.
type CloseGuessPayload struct {
	Similarity int `json:"similarity"`
}

// HintPayload reveals the word's character count to a struggling
// guesser.
type HintPayload struct {
	Letters int `json:"letters"`
}

// PlayerPassedPayload is broadcast when the drawer passes the turn.
type PlayerPassedPayload struct {
	PlayerName string `json:"playerName"`
}

// PlayerLeftPayload is broadcast when the roster changes on exit or
// disconnect.
type PlayerLeftPayload struct {
	Players    []PlayerInfo `json:"players"`
	PlayerName string       `json:"playerName"`
}

// TimerUpdatePayload is broadcast once per countdown second.
type TimerUpdatePayload struct {
	TimeLeft int `json:"timeLeft"`
}

// TimeUpPayload reveals the word when the countdown expires.
type TimeUpPayload struct {
	Word string `json:"word"`
}

// DifficultyChangePayload is broadcast when a round threshold is
// crossed.
type DifficultyChangePayload struct {
	Difficulty string `json:"difficulty"`
	Round      int    `json:"round"`
}

// DrawingPayload is the opaque drawing relay payload, passed through
// verbatim.
type DrawingPayload = json.RawMessage
