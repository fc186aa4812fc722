package app

import (
	"crypto/rand"
	"log/slog"
	"math/big"
	"sync"

	"sketchparty/internal/domain"
)

// DefaultRoomCodeLength is the default length for room codes.
const DefaultRoomCodeLength = 4

// RoomCodeChars are the characters room codes are drawn from.
const RoomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Registry owns the mapping from room code to live room session.
// Rooms are created on demand and deliberately never reclaimed: an
// emptied room stays registered so its code remains joinable for the
// process lifetime.
type Registry struct {
	sessions       map[string]*RoomSession
	mu             sync.RWMutex
	roomCodeLength int
	settings       domain.Settings
	logger         *slog.Logger
}

// NewRegistry creates a registry with the given game settings.
func NewRegistry(settings domain.Settings, logger *slog.Logger) *Registry {
	length := settings.RoomCodeLength
	if length <= 0 {
		length = DefaultRoomCodeLength
	}
	return &Registry{
		sessions:       make(map[string]*RoomSession),
		roomCodeLength: length,
		settings:       settings,
		logger:         logger,
	}
}

// CreateRoom creates a room with a fresh unique code, seats the
// creator as its first player and confirms with a roomCreated event.
// A connection already seated somewhere cannot create another room.
func (r *Registry) CreateRoom(connID, name string, client ClientConnection) (*RoomSession, error) {
	if existing := r.FindByConnection(connID); existing != nil {
		return nil, domain.ErrAlreadyInRoom
	}

	r.mu.Lock()

	code := r.generateRoomCode()
	for _, exists := r.sessions[code]; exists; _, exists = r.sessions[code] {
		code = r.generateRoomCode()
	}

	room := domain.NewRoom(code)
	session := NewRoomSession(room, r.settings, r.logger)
	r.sessions[code] = session
	r.mu.Unlock()

	session.Create(connID, name, client)

	r.logger.Info("room created", "roomCode", code, "player", name)

	return session, nil
}

// JoinRoom adds a player to an existing room. Returns
// domain.ErrRoomNotFound when the code is unknown and
// domain.ErrAlreadyInRoom when the connection already holds a seat
// somewhere; the session itself rejects started games, duplicate
// names, and a second seat in the same room. One seat per connection
// keeps FindByConnection and DropConnection unambiguous.
func (r *Registry) JoinRoom(code, connID, name string, client ClientConnection) (*RoomSession, error) {
	session, err := r.Session(code)
	if err != nil {
		return nil, err
	}

	if existing := r.FindByConnection(connID); existing != nil && existing != session {
		return nil, domain.ErrAlreadyInRoom
	}

	if err := session.Join(connID, name, client); err != nil {
		return nil, err
	}

	r.logger.Info("player joined", "roomCode", code, "player", name)

	return session, nil
}

// Session returns the session for a room code.
func (r *Registry) Session(code string) (*RoomSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	return session, nil
}

// FindByConnection scans all rooms for the one containing the given
// connection. Fallback path for clients whose cached room code is
// stale; kept deliberately, not dead code.
func (r *Registry) FindByConnection(connID string) *RoomSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, session := range r.sessions {
		if session.HasPlayer(connID) {
			return session
		}
	}
	return nil
}

// SessionFor resolves a room by code with the by-connection scan as
// fallback.
func (r *Registry) SessionFor(code, connID string) *RoomSession {
	if session, err := r.Session(code); err == nil {
		return session
	}
	return r.FindByConnection(connID)
}

// DropConnection removes a disconnected or exiting player from
// whatever room contains it, if any.
func (r *Registry) DropConnection(connID string) {
	session := r.FindByConnection(connID)
	if session == nil {
		return
	}

	if name, ok := session.Leave(connID); ok {
		r.logger.Info("player left", "roomCode", session.Code(), "player", name)
	}
}

// SessionCount returns the number of registered rooms.
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// TotalPlayerCount returns the number of players across all rooms.
func (r *Registry) TotalPlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, session := range r.sessions {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down all sessions.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		session.Close()
	}
	r.sessions = make(map[string]*RoomSession)
}

// generateRoomCode generates a random room code. Drawing each
// character with rand.Int keeps the alphabet distribution uniform.
func (r *Registry) generateRoomCode() string {
	max := big.NewInt(int64(len(RoomCodeChars)))

	code := make([]byte, r.roomCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform entropy source
			// is gone; there is no safe code to hand out.
			panic("room code generation: " + err.Error())
		}
		code[i] = RoomCodeChars[n.Int64()]
	}

	return string(code)
}
