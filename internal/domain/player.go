package domain

import "time"

// Player is a participant in a room. ConnID is the ephemeral
// identifier assigned to the underlying connection; Name is the
// display name chosen on create/join.
type Player struct {
	ConnID   string    `json:"id"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	JoinedAt time.Time `json:"joinedAt"`
}

// NewPlayer creates a player with a zero score.
func NewPlayer(connID, name string) *Player {
	return &Player{
		ConnID:   connID,
		Name:     name,
		Score:    0,
		JoinedAt: time.Now(),
	}
}

// ScoreEntry is a player's public score line, broadcast room-wide
// after a correct guess.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlayerInfo is the public view of a player sent in lobby updates.
type PlayerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ToInfo converts a Player to PlayerInfo.
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:    p.ConnID,
		Name:  p.Name,
		Score: p.Score,
	}
}
