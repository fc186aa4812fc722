package domain

import "time"

// Room is an isolated game session identified by a short code. All
// mutation happens under the owning session's lock; Room itself holds
// no synchronization.
type Room struct {
	Code        string
	Players     []*Player // join order; DrawerIndex indexes into this
	DrawerIndex int
	CurrentWord string
	CurrentHint string
	Round       int
	Started     bool
	State       TurnState
	TimeLeft    int

	// Per-turn bookkeeping, reset on every new word.
	WrongGuesses map[string]int
	PendingAcks  map[string]struct{}

	CreatedAt time.Time
}

// NewRoom creates an empty room in the idle state.
func NewRoom(code string) *Room {
	return &Room{
		Code:         code,
		Players:      make([]*Player, 0, 8),
		DrawerIndex:  0,
		Round:        1,
		State:        StateIdle,
		WrongGuesses: make(map[string]int),
		PendingAcks:  make(map[string]struct{}),
		CreatedAt:    time.Now(),
	}
}

// AddPlayer appends a new player. Joining is rejected once the game
// has started; a connection holds at most one seat in the room; and
// display names must be unique within the room (case-sensitive exact
// match).
func (r *Room) AddPlayer(connID, name string) (*Player, error) {
	if r.Started && len(r.Players) > 0 {
		return nil, ErrGameInProgress
	}
	if r.Player(connID) != nil {
		return nil, ErrAlreadyInRoom
	}
	for _, p := range r.Players {
		if p.Name == name {
			return nil, ErrNameTaken
		}
	}

	player := NewPlayer(connID, name)
	r.Players = append(r.Players, player)
	return player, nil
}

// RemovePlayer removes the player with the given connection ID and
// returns it. The drawer index is clamped so it stays valid for the
// shrunk player list. An emptied room stays around but drops back to
// idle with the game stopped.
func (r *Room) RemovePlayer(connID string) (*Player, error) {
	idx := -1
	for i, p := range r.Players {
		if p.ConnID == connID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrPlayerNotFound
	}

	removed := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	delete(r.WrongGuesses, connID)
	delete(r.PendingAcks, connID)

	if len(r.Players) == 0 {
		r.Started = false
		r.State = StateIdle
		r.DrawerIndex = 0
		return removed, nil
	}

	if idx < r.DrawerIndex {
		r.DrawerIndex--
	}
	r.DrawerIndex %= len(r.Players)

	return removed, nil
}

// Player returns the player with the given connection ID, or nil.
func (r *Room) Player(connID string) *Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// Drawer returns the current drawer, or nil for an empty room. The
// index is taken modulo the live player count on every access so
// removals mid-game never produce an out-of-range lookup.
func (r *Room) Drawer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.DrawerIndex%len(r.Players)]
}

// AdvanceTurn rotates the drawer to the next player and, when the
// rotation wraps back to the first player, advances the round.
// Returns true when the round advanced.
func (r *Room) AdvanceTurn() bool {
	if len(r.Players) == 0 {
		return false
	}
	r.DrawerIndex = (r.DrawerIndex + 1) % len(r.Players)
	if r.DrawerIndex == 0 {
		r.Round++
		return true
	}
	return false
}

// AssignWord sets the active word and hint for a new turn and resets
// the per-turn bookkeeping.
func (r *Room) AssignWord(word, hint string) {
	r.CurrentWord = word
	r.CurrentHint = hint
	r.WrongGuesses = make(map[string]int)
	r.PendingAcks = make(map[string]struct{})
}

// Acknowledge records a turn acknowledgment. Returns true when every
// current player has acknowledged.
func (r *Room) Acknowledge(connID string) bool {
	if r.Player(connID) == nil {
		return false
	}
	r.PendingAcks[connID] = struct{}{}
	return r.AllAcknowledged()
}

// AllAcknowledged reports whether every current player has confirmed
// receipt of the turn assignment.
func (r *Room) AllAcknowledged() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if _, ok := r.PendingAcks[p.ConnID]; !ok {
			return false
		}
	}
	return true
}

// PlayerInfos returns the public view of all players in join order.
func (r *Room) PlayerInfos() []PlayerInfo {
	infos := make([]PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		infos = append(infos, p.ToInfo())
	}
	return infos
}

// Scores returns the current score list in join order.
func (r *Room) Scores() []ScoreEntry {
	scores := make([]ScoreEntry, 0, len(r.Players))
	for _, p := range r.Players {
		scores = append(scores, ScoreEntry{Name: p.Name, Score: p.Score})
	}
	return scores
}
