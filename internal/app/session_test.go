package app

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchparty/internal/domain"
)

// fakeClient records every event delivered to one connection.
type fakeClient struct {
	id     string
	mu     sync.Mutex
	events []*domain.Event
}

func newFakeClient(id string) *fakeClient {
	return &fakeClient{id: id}
}

func (f *fakeClient) Send(message interface{}) error {
	event, ok := message.(*domain.Event)
	if !ok {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeClient) ConnID() string { return f.id }
func (f *fakeClient) Close() error   { return nil }

func (f *fakeClient) eventsOfType(t domain.EventType) []*domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Event
	for _, e := range f.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeClient) countOfType(t domain.EventType) int {
	return len(f.eventsOfType(t))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testSettings keeps the real ticker quiet so tests drive the
// countdown through Tick directly.
func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.TickInterval = time.Hour
	s.TransitionDelay = time.Hour
	return s
}

const (
	waitFor  = 2 * time.Second
	pollEach = 10 * time.Millisecond
)

// startedGame creates a two-player room, starts the game and runs it
// through the acknowledgment gate. Returns the session, both clients
// and the active word (read from the drawer's yourTurn event).
func startedGame(t *testing.T, settings domain.Settings) (*RoomSession, *fakeClient, *fakeClient, string) {
	t.Helper()

	reg := NewRegistry(settings, testLogger())
	alice := newFakeClient("conn-a")
	bob := newFakeClient("conn-b")

	sess, err := reg.CreateRoom("conn-a", "Alice", alice)
	require.NoError(t, err)
	_, err = reg.JoinRoom(sess.Code(), "conn-b", "Bob", bob)
	require.NoError(t, err)

	sess.StartGame()

	var word string
	require.Eventually(t, func() bool {
		turns := alice.eventsOfType(domain.EventYourTurn)
		if len(turns) == 0 {
			return false
		}
		word = turns[0].Payload.(*domain.YourTurnPayload).Word
		return word != ""
	}, waitFor, pollEach, "drawer never received the turn assignment")

	sess.Acknowledge("conn-a")
	sess.Acknowledge("conn-b")

	require.Eventually(t, func() bool {
		return bob.countOfType(domain.EventAllPlayersReady) == 1
	}, waitFor, pollEach, "acknowledgment gate never opened")

	return sess, alice, bob, word
}

func (s *RoomSession) snapshot() (state domain.TurnState, round, drawerIdx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.State, s.room.Round, s.room.DrawerIndex
}

func TestStartGame_RequiresTwoPlayers(t *testing.T) {
	reg := NewRegistry(testSettings(), testLogger())
	alice := newFakeClient("conn-a")

	sess, err := reg.CreateRoom("conn-a", "Alice", alice)
	require.NoError(t, err)
	sess.StartGame()

	state, _, _ := sess.snapshot()
	assert.Equal(t, domain.StateIdle, state)
	assert.False(t, sess.Started())
}

func TestStartGame_EntersAckGate(t *testing.T) {
	settings := testSettings()
	reg := NewRegistry(settings, testLogger())
	alice := newFakeClient("conn-a")
	bob := newFakeClient("conn-b")

	sess, err := reg.CreateRoom("conn-a", "Alice", alice)
	require.NoError(t, err)
	_, err = reg.JoinRoom(sess.Code(), "conn-b", "Bob", bob)
	require.NoError(t, err)

	sess.StartGame()

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventYourTurn) == 1 &&
			bob.countOfType(domain.EventWaitingForDrawing) == 1
	}, waitFor, pollEach)

	turn := alice.eventsOfType(domain.EventYourTurn)[0].Payload.(*domain.YourTurnPayload)
	assert.NotEmpty(t, turn.Word)
	assert.NotEmpty(t, turn.Hint)
	assert.Equal(t, 1, turn.Round)
	assert.True(t, turn.WaitingForAck)

	waiting := bob.eventsOfType(domain.EventWaitingForDrawing)[0].Payload.(*domain.WaitingForDrawingPayload)
	assert.Equal(t, "Alice", waiting.Drawer)
	assert.True(t, waiting.WaitingForAck)

	// The guessers never learn the word.
	assert.Zero(t, bob.countOfType(domain.EventYourTurn))

	state, _, _ := sess.snapshot()
	assert.Equal(t, domain.StateAwaitingAck, state)
}

func TestAcknowledge_GateOpensOnlyWhenAllConfirm(t *testing.T) {
	reg := NewRegistry(testSettings(), testLogger())
	alice := newFakeClient("conn-a")
	bob := newFakeClient("conn-b")

	sess, err := reg.CreateRoom("conn-a", "Alice", alice)
	require.NoError(t, err)
	_, err = reg.JoinRoom(sess.Code(), "conn-b", "Bob", bob)
	require.NoError(t, err)
	sess.StartGame()

	sess.Acknowledge("conn-a")

	state, _, _ := sess.snapshot()
	assert.Equal(t, domain.StateAwaitingAck, state)
	assert.Zero(t, alice.countOfType(domain.EventAllPlayersReady))

	sess.Acknowledge("conn-b")

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventAllPlayersReady) == 1 &&
			bob.countOfType(domain.EventAllPlayersReady) == 1
	}, waitFor, pollEach)

	state, _, _ = sess.snapshot()
	assert.Equal(t, domain.StateRunning, state)

	// Countdown opens at the configured turn length.
	require.Eventually(t, func() bool {
		updates := bob.eventsOfType(domain.EventTimerUpdate)
		return len(updates) == 1 &&
			updates[0].Payload.(*domain.TimerUpdatePayload).TimeLeft == 60
	}, waitFor, pollEach)
}

func TestTick_DecrementsAndBroadcasts(t *testing.T) {
	sess, _, bob, _ := startedGame(t, testSettings())

	assert.True(t, sess.Tick())

	require.Eventually(t, func() bool {
		updates := bob.eventsOfType(domain.EventTimerUpdate)
		if len(updates) < 2 {
			return false
		}
		last := updates[len(updates)-1].Payload.(*domain.TimerUpdatePayload)
		return last.TimeLeft == 59
	}, waitFor, pollEach)
}

func TestTick_ExpiryRevealsWordAndRotates(t *testing.T) {
	sess, alice, bob, word := startedGame(t, testSettings())

	sess.mu.Lock()
	sess.room.TimeLeft = 1
	sess.mu.Unlock()

	assert.False(t, sess.Tick())

	require.Eventually(t, func() bool {
		ups := alice.eventsOfType(domain.EventTimeUp)
		return len(ups) == 1 &&
			ups[0].Payload.(*domain.TimeUpPayload).Word == word
	}, waitFor, pollEach)

	state, round, drawerIdx := sess.snapshot()
	assert.Equal(t, domain.StateTransitioning, state)
	assert.Equal(t, 1, round, "mid-rotation expiry keeps the round")
	assert.Equal(t, 1, drawerIdx, "expiry rotates the drawer")
	assert.Equal(t, 1, bob.countOfType(domain.EventTimeUp))
}

func TestSubmitGuess_BeforeGateOpens_IsDropped(t *testing.T) {
	settings := testSettings()
	reg := NewRegistry(settings, testLogger())
	alice := newFakeClient("conn-a")
	bob := newFakeClient("conn-b")

	sess, err := reg.CreateRoom("conn-a", "Alice", alice)
	require.NoError(t, err)
	_, err = reg.JoinRoom(sess.Code(), "conn-b", "Bob", bob)
	require.NoError(t, err)
	sess.StartGame()

	var word string
	require.Eventually(t, func() bool {
		turns := alice.eventsOfType(domain.EventYourTurn)
		if len(turns) == 0 {
			return false
		}
		word = turns[0].Payload.(*domain.YourTurnPayload).Word
		return true
	}, waitFor, pollEach)

	sess.SubmitGuess("conn-b", word)

	state, _, _ := sess.snapshot()
	assert.Equal(t, domain.StateAwaitingAck, state)
	assert.Zero(t, bob.countOfType(domain.EventCorrectGuess))
}

func TestSubmitGuess_Correct(t *testing.T) {
	sess, alice, bob, word := startedGame(t, testSettings())

	sess.SubmitGuess("conn-b", word)

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventCorrectGuess) == 1 &&
			bob.countOfType(domain.EventCorrectGuess) == 1
	}, waitFor, pollEach)

	payload := alice.eventsOfType(domain.EventCorrectGuess)[0].Payload.(*domain.CorrectGuessPayload)
	assert.Equal(t, "Bob", payload.Guesser)
	assert.Equal(t, word, payload.Word)
	assert.Equal(t, "Bob", payload.NextDrawer)
	assert.ElementsMatch(t, []domain.ScoreEntry{
		{Name: "Alice", Score: 50},
		{Name: "Bob", Score: 100},
	}, payload.Scores)

	state, _, drawerIdx := sess.snapshot()
	assert.Equal(t, domain.StateTransitioning, state)
	assert.Equal(t, 1, drawerIdx, "Bob draws next")

	// The countdown is cancelled; a stale tick is a no-op.
	assert.False(t, sess.Tick())

	// The broadcast fired exactly once.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, alice.countOfType(domain.EventCorrectGuess))
}

func TestSubmitGuess_CaseInsensitive(t *testing.T) {
	sess, alice, _, word := startedGame(t, testSettings())

	sess.SubmitGuess("conn-b", strings.ToUpper(word))

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventCorrectGuess) == 1
	}, waitFor, pollEach)
}

func TestSubmitGuess_DrawerIsIgnored(t *testing.T) {
	sess, alice, bob, word := startedGame(t, testSettings())

	sess.SubmitGuess("conn-a", word)

	state, _, _ := sess.snapshot()
	assert.Equal(t, domain.StateRunning, state)
	assert.Zero(t, alice.countOfType(domain.EventCorrectGuess))
	assert.Zero(t, bob.countOfType(domain.EventCorrectGuess))
}

func TestSubmitGuess_WrongNotifiesDrawerOnly(t *testing.T) {
	sess, alice, bob, word := startedGame(t, testSettings())

	wrong := word + "xx" // length mismatch, similarity 0
	sess.SubmitGuess("conn-b", wrong)

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventWrongGuess) == 1
	}, waitFor, pollEach)

	payload := alice.eventsOfType(domain.EventWrongGuess)[0].Payload.(*domain.WrongGuessPayload)
	assert.Equal(t, "Bob", payload.Guesser)
	assert.Equal(t, wrong, payload.Guess)

	assert.Zero(t, bob.countOfType(domain.EventWrongGuess))
	assert.Zero(t, bob.countOfType(domain.EventCloseGuess))

	state, _, _ := sess.snapshot()
	assert.Equal(t, domain.StateRunning, state, "wrong guesses do not end the turn")
}

func TestSubmitGuess_CloseGuessGoesToGuesser(t *testing.T) {
	sess, _, bob, word := startedGame(t, testSettings())

	// Same length, all but the last character matching.
	runes := []rune(word)
	runes[len(runes)-1] = '~'
	sess.SubmitGuess("conn-b", string(runes))

	require.Eventually(t, func() bool {
		return bob.countOfType(domain.EventCloseGuess) == 1
	}, waitFor, pollEach)

	want := domain.Similarity(string(runes), word)
	assert.GreaterOrEqual(t, want, 60)
	payload := bob.eventsOfType(domain.EventCloseGuess)[0].Payload.(*domain.CloseGuessPayload)
	assert.Equal(t, want, payload.Similarity)
}

func TestSubmitGuess_HintAfterThirdWrongGuess(t *testing.T) {
	sess, _, bob, word := startedGame(t, testSettings())

	wrong := word + "xx"
	sess.SubmitGuess("conn-b", wrong)
	sess.SubmitGuess("conn-b", wrong)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, bob.countOfType(domain.EventHint), "hint must not fire before the third miss")

	sess.SubmitGuess("conn-b", wrong)

	require.Eventually(t, func() bool {
		return bob.countOfType(domain.EventHint) == 1
	}, waitFor, pollEach)

	payload := bob.eventsOfType(domain.EventHint)[0].Payload.(*domain.HintPayload)
	assert.Equal(t, len([]rune(word)), payload.Letters)

	// Further misses never re-fire the hint.
	sess.SubmitGuess("conn-b", wrong)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, bob.countOfType(domain.EventHint))
}

func TestPass_DrawerOnly(t *testing.T) {
	sess, alice, bob, _ := startedGame(t, testSettings())

	// A guesser cannot pass.
	sess.Pass("conn-b")
	state, _, _ := sess.snapshot()
	assert.Equal(t, domain.StateRunning, state)

	sess.Pass("conn-a")

	require.Eventually(t, func() bool {
		return bob.countOfType(domain.EventPlayerPassed) == 1
	}, waitFor, pollEach)

	payload := bob.eventsOfType(domain.EventPlayerPassed)[0].Payload.(*domain.PlayerPassedPayload)
	assert.Equal(t, "Alice", payload.PlayerName)

	state, _, drawerIdx := sess.snapshot()
	assert.Equal(t, domain.StateTransitioning, state)
	assert.Equal(t, 1, drawerIdx)
	assert.Equal(t, 1, alice.countOfType(domain.EventPlayerPassed))
}

func TestTransition_BeginsNextTurnAfterDelay(t *testing.T) {
	settings := testSettings()
	settings.TransitionDelay = 20 * time.Millisecond
	sess, alice, bob, word := startedGame(t, settings)

	sess.SubmitGuess("conn-b", word)

	// Bob becomes the drawer of the next turn once the pause elapses.
	require.Eventually(t, func() bool {
		return bob.countOfType(domain.EventYourTurn) == 1 &&
			alice.countOfType(domain.EventWaitingForDrawing) == 1
	}, waitFor, pollEach)

	waiting := alice.eventsOfType(domain.EventWaitingForDrawing)[0].Payload.(*domain.WaitingForDrawingPayload)
	assert.Equal(t, "Bob", waiting.Drawer)
	assert.Equal(t, 1, waiting.Round, "round advances only when the rotation wraps")

	sess.mu.Lock()
	assert.Equal(t, domain.StateAwaitingAck, sess.room.State)
	assert.Empty(t, sess.room.WrongGuesses, "wrong-guess counts reset on the new turn")
	sess.mu.Unlock()
}

func TestDifficultyChange_FiresExactlyAtThresholds(t *testing.T) {
	for _, tc := range []struct {
		completed  int
		difficulty string
	}{
		{completed: 5, difficulty: "medium"},
		{completed: 10, difficulty: "hard"},
	} {
		sess, alice, _, _ := startedGame(t, testSettings())

		sess.mu.Lock()
		sess.room.Round = tc.completed
		sess.room.DrawerIndex = len(sess.room.Players) - 1
		sess.mu.Unlock()

		sess.Pass("conn-b") // drawer is now Bob at the last index

		require.Eventually(t, func() bool {
			return alice.countOfType(domain.EventDifficultyChange) == 1
		}, waitFor, pollEach)

		payload := alice.eventsOfType(domain.EventDifficultyChange)[0].Payload.(*domain.DifficultyChangePayload)
		assert.Equal(t, tc.difficulty, payload.Difficulty)
		assert.Equal(t, tc.completed+1, payload.Round)
	}
}

func TestDifficultyChange_SilentOnOtherBoundaries(t *testing.T) {
	sess, alice, _, _ := startedGame(t, testSettings())

	sess.mu.Lock()
	sess.room.Round = 2
	sess.room.DrawerIndex = len(sess.room.Players) - 1
	sess.mu.Unlock()

	sess.Pass("conn-b")

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventPlayerPassed) == 1
	}, waitFor, pollEach)
	assert.Zero(t, alice.countOfType(domain.EventDifficultyChange))
}

func TestLeave_BroadcastsDeparture(t *testing.T) {
	sess, alice, _, _ := startedGame(t, testSettings())

	name, ok := sess.Leave("conn-b")
	require.True(t, ok)
	assert.Equal(t, "Bob", name)

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventPlayerLeft) == 1
	}, waitFor, pollEach)

	payload := alice.eventsOfType(domain.EventPlayerLeft)[0].Payload.(*domain.PlayerLeftPayload)
	assert.Equal(t, "Bob", payload.PlayerName)
	require.Len(t, payload.Players, 1)
	assert.Equal(t, "Alice", payload.Players[0].Name)
}

func TestLeave_CompletesAckBarrier(t *testing.T) {
	settings := testSettings()
	reg := NewRegistry(settings, testLogger())
	alice := newFakeClient("conn-a")
	bob := newFakeClient("conn-b")
	carol := newFakeClient("conn-c")

	sess, err := reg.CreateRoom("conn-a", "Alice", alice)
	require.NoError(t, err)
	_, err = reg.JoinRoom(sess.Code(), "conn-b", "Bob", bob)
	require.NoError(t, err)
	_, err = reg.JoinRoom(sess.Code(), "conn-c", "Carol", carol)
	require.NoError(t, err)

	sess.StartGame()
	sess.Acknowledge("conn-a")
	sess.Acknowledge("conn-b")

	state, _, _ := sess.snapshot()
	require.Equal(t, domain.StateAwaitingAck, state)

	// Carol's departure was the last missing acknowledgment.
	sess.Leave("conn-c")

	require.Eventually(t, func() bool {
		return alice.countOfType(domain.EventAllPlayersReady) == 1
	}, waitFor, pollEach)

	state, _, _ = sess.snapshot()
	assert.Equal(t, domain.StateRunning, state)
}

func TestRelayDrawing_ExcludesSender(t *testing.T) {
	sess, alice, bob, _ := startedGame(t, testSettings())

	data := []byte(`{"type":"draw","x":10,"y":20,"color":"#000"}`)
	sess.RelayDrawing("conn-a", data)

	require.Eventually(t, func() bool {
		return bob.countOfType(domain.EventDrawing) == 1
	}, waitFor, pollEach)
	assert.Zero(t, alice.countOfType(domain.EventDrawing))

	payload := bob.eventsOfType(domain.EventDrawing)[0].Payload.(domain.DrawingPayload)
	assert.JSONEq(t, string(data), string(payload))
}

func TestRelayDrawing_StrangerIsDropped(t *testing.T) {
	sess, alice, bob, _ := startedGame(t, testSettings())

	sess.RelayDrawing("conn-z", []byte(`{"clear":true}`))

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, alice.countOfType(domain.EventDrawing))
	assert.Zero(t, bob.countOfType(domain.EventDrawing))
}
