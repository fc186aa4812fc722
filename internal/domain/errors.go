package domain

import "errors"

// Domain errors
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrGameInProgress = errors.New("game already started")
	ErrNameTaken      = errors.New("name already taken in this room")
	ErrAlreadyInRoom  = errors.New("connection already seated in a room")
	ErrPlayerNotFound = errors.New("player not found")
)
