package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchparty/internal/domain"
)

func TestJoinErrorMessage(t *testing.T) {
	assert.Equal(t, "Room not found", joinErrorMessage(domain.ErrRoomNotFound))
	assert.Equal(t, "Game already started", joinErrorMessage(domain.ErrGameInProgress))
	assert.Equal(t, "Name already taken in this room", joinErrorMessage(domain.ErrNameTaken))
	assert.Equal(t, "Already in a room", joinErrorMessage(domain.ErrAlreadyInRoom))
	assert.Equal(t, "Unable to join room", joinErrorMessage(errors.New("boom")))

	// Wrapped rejections resolve to the same text.
	wrapped := fmt.Errorf("join: %w", domain.ErrNameTaken)
	assert.Equal(t, "Name already taken in this room", joinErrorMessage(wrapped))
}

func TestClientMessage_DecodesTypedPayload(t *testing.T) {
	raw := []byte(`{"type":"guess","payload":{"roomCode":"AB12","guess":"cat"}}`)

	var msg ClientMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MsgGuess, msg.Type)

	var payload GuessPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "AB12", payload.RoomCode)
	assert.Equal(t, "cat", payload.Guess)
}

func TestDrawingRelayPayload_DataStaysOpaque(t *testing.T) {
	raw := []byte(`{"roomCode":"AB12","data":{"type":"stroke","points":[[0,1],[2,3]],"color":"#f00"}}`)

	var payload DrawingRelayPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "AB12", payload.RoomCode)
	assert.JSONEq(t, `{"type":"stroke","points":[[0,1],[2,3]],"color":"#f00"}`, string(payload.Data))
}
