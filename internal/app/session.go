package app

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"sketchparty/internal/domain"
	"sketchparty/internal/wordbank"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	ConnID() string
	Close() error
}

// RoomSession wraps a room with concurrency control, timer lifecycle
// and client fan-out. Every inbound event is processed to completion
// under the session lock, so room state is linearizable per room. The
// countdown and the next-turn delay are the only time-driven
// re-entrant paths; both are guarded by the turn state and cancelled
// whenever the room leaves the state that scheduled them.
type RoomSession struct {
	room      *domain.Room
	settings  domain.Settings
	mu        sync.Mutex
	clients   map[string]ClientConnection // connID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	// countdownStop cancels the running countdown; nil when no
	// countdown is active. Nulled immediately on cancellation so
	// re-entry is idempotent.
	countdownStop chan struct{}
	// transition is the pending delayed beginTurn; nil when none.
	transition *time.Timer

	// Event channel for broadcasting
	events chan *domain.Event
	done   chan struct{}
}

// NewRoomSession creates a session for the given room and starts its
// broadcast loop.
func NewRoomSession(room *domain.Room, settings domain.Settings, logger *slog.Logger) *RoomSession {
	session := &RoomSession{
		room:     room,
		settings: settings,
		clients:  make(map[string]ClientConnection),
		logger:   logger,
		events:   make(chan *domain.Event, 100),
		done:     make(chan struct{}),
	}

	go session.eventLoop()

	return session
}

// Code returns the room code.
func (s *RoomSession) Code() string {
	return s.room.Code
}

// CreatedAt returns when the room was created.
func (s *RoomSession) CreatedAt() time.Time {
	return s.room.CreatedAt
}

// PlayerCount returns the number of players.
func (s *RoomSession) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.room.Players)
}

// Started reports whether a game is in progress.
func (s *RoomSession) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Started
}

// HasPlayer reports whether the given connection is seated in the
// room.
func (s *RoomSession) HasPlayer(connID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Player(connID) != nil
}

// RegisterClient registers a client connection for a player
func (s *RoomSession) RegisterClient(connID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[connID] = client
}

// UnregisterClient removes a client connection
func (s *RoomSession) UnregisterClient(connID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, connID)
}

// Create seats the creating player and confirms with a roomCreated
// event to the creator only.
func (s *RoomSession) Create(connID, name string, client ClientConnection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.RegisterClient(connID, client)
	s.room.AddPlayer(connID, name)

	s.queueEvent(domain.NewPlayerEvent(domain.EventRoomCreated, s.room.Code, connID, &domain.RoomCreatedPayload{
		RoomCode: s.room.Code,
		Players:  s.room.PlayerInfos(),
	}))
}

// Join seats a new player and broadcasts the updated roster.
func (s *RoomSession) Join(connID, name string, client ClientConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.room.AddPlayer(connID, name); err != nil {
		return err
	}

	s.RegisterClient(connID, client)

	s.queueEvent(domain.NewEvent(domain.EventPlayerJoined, s.room.Code, &domain.PlayerJoinedPayload{
		Players:  s.room.PlayerInfos(),
		RoomCode: s.room.Code,
	}))

	return nil
}

// Leave removes a player and broadcasts the departure. Returns the
// removed display name. An emptied room stays registered with the
// game stopped and all timers cancelled.
func (s *RoomSession) Leave(connID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.room.RemovePlayer(connID)
	if err != nil {
		return "", false
	}

	s.UnregisterClient(connID)

	if len(s.room.Players) == 0 {
		s.cancelCountdownLocked()
		s.cancelTransitionLocked()
	} else if s.room.State == domain.StateAwaitingAck && s.room.AllAcknowledged() {
		// The departure may have been the last missing ack.
		s.queueEvent(domain.NewEvent(domain.EventAllPlayersReady, s.room.Code, nil))
		s.startCountdownLocked()
	}

	s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.room.Code, &domain.PlayerLeftPayload{
		Players:    s.room.PlayerInfos(),
		PlayerName: removed.Name,
	}))

	return removed.Name, true
}

// StartGame begins round 1. Valid only from idle with enough players;
// anything else is a silent no-op.
func (s *RoomSession) StartGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Started || s.room.State != domain.StateIdle {
		return
	}
	if len(s.room.Players) < s.settings.MinPlayers {
		return
	}

	s.room.Started = true
	s.beginTurnLocked()
}

// beginTurnLocked picks a fresh word at the round's difficulty,
// resets per-turn state and notifies drawer and guessers, both tagged
// as awaiting acknowledgment. Caller must hold the lock.
func (s *RoomSession) beginTurnLocked() {
	drawer := s.room.Drawer()
	if drawer == nil {
		return
	}

	entry := wordbank.PickForRound(s.room.Round)
	s.room.AssignWord(entry.Word, entry.Hint)
	s.room.State = domain.StateAwaitingAck

	s.queueEvent(domain.NewPlayerEvent(domain.EventYourTurn, s.room.Code, drawer.ConnID, &domain.YourTurnPayload{
		Word:          entry.Word,
		Hint:          entry.Hint,
		Round:         s.room.Round,
		WaitingForAck: true,
	}))

	for _, p := range s.room.Players {
		if p.ConnID == drawer.ConnID {
			continue
		}
		s.queueEvent(domain.NewPlayerEvent(domain.EventWaitingForDrawing, s.room.Code, p.ConnID, &domain.WaitingForDrawingPayload{
			Drawer:        drawer.Name,
			Round:         s.room.Round,
			WaitingForAck: true,
		}))
	}

	s.logger.Debug("turn started",
		"roomCode", s.room.Code,
		"drawer", drawer.Name,
		"round", s.room.Round,
	)
}

// Acknowledge records a turn acknowledgment; when the last player
// confirms, the countdown starts. Acks outside the barrier window are
// dropped.
func (s *RoomSession) Acknowledge(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.State != domain.StateAwaitingAck {
		return
	}

	if s.room.Acknowledge(connID) {
		s.queueEvent(domain.NewEvent(domain.EventAllPlayersReady, s.room.Code, nil))
		s.startCountdownLocked()
	}
}

// startCountdownLocked transitions to running and spawns the ticker
// goroutine. Caller must hold the lock.
func (s *RoomSession) startCountdownLocked() {
	s.cancelCountdownLocked()

	s.room.State = domain.StateRunning
	s.room.TimeLeft = s.settings.TurnSeconds()

	s.queueEvent(domain.NewEvent(domain.EventTimerUpdate, s.room.Code, &domain.TimerUpdatePayload{
		TimeLeft: s.room.TimeLeft,
	}))

	stop := make(chan struct{})
	s.countdownStop = stop
	go s.runCountdown(stop)
}

// runCountdown drives the per-second tick until cancelled or expired.
func (s *RoomSession) runCountdown(stop chan struct{}) {
	ticker := time.NewTicker(s.settings.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-s.done:
			return
		case <-ticker.C:
			if !s.Tick() {
				return
			}
		}
	}
}

// Tick decrements the countdown by one second and broadcasts the new
// value. Returns false once the countdown is no longer running, either
// because time expired here or because another event already left the
// running state.
func (s *RoomSession) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.State != domain.StateRunning {
		return false
	}

	s.room.TimeLeft--
	s.queueEvent(domain.NewEvent(domain.EventTimerUpdate, s.room.Code, &domain.TimerUpdatePayload{
		TimeLeft: s.room.TimeLeft,
	}))

	if s.room.TimeLeft <= 0 {
		s.timeUpLocked()
		return false
	}

	return true
}

// timeUpLocked resolves an expired turn: reveal the word, rotate and
// schedule the next turn. Caller must hold the lock.
func (s *RoomSession) timeUpLocked() {
	// The countdown goroutine exits on the false return from Tick.
	s.countdownStop = nil

	s.logger.Debug("time up", "roomCode", s.room.Code, "word", s.room.CurrentWord)

	s.queueEvent(domain.NewEvent(domain.EventTimeUp, s.room.Code, &domain.TimeUpPayload{
		Word: s.room.CurrentWord,
	}))

	s.advanceTurnLocked()
	s.scheduleNextTurnLocked()
}

// Pass lets the current drawer skip the turn. Anyone else, or any
// other state, is a silent no-op.
func (s *RoomSession) Pass(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.Started || s.room.State != domain.StateRunning {
		return
	}

	drawer := s.room.Drawer()
	if drawer == nil || drawer.ConnID != connID {
		return
	}

	s.cancelCountdownLocked()

	s.queueEvent(domain.NewEvent(domain.EventPlayerPassed, s.room.Code, &domain.PlayerPassedPayload{
		PlayerName: drawer.Name,
	}))

	s.advanceTurnLocked()
	s.scheduleNextTurnLocked()
}

// SubmitGuess adjudicates a guess against the active word. Guesses
// from the drawer, from strangers, or outside the running state are
// dropped without notification.
func (s *RoomSession) SubmitGuess(connID, guess string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.Started || s.room.State != domain.StateRunning {
		return
	}

	player := s.room.Player(connID)
	drawer := s.room.Drawer()
	if player == nil || drawer == nil || player.ConnID == drawer.ConnID {
		return
	}

	if strings.EqualFold(guess, s.room.CurrentWord) {
		s.correctGuessLocked(player, drawer)
		return
	}

	s.wrongGuessLocked(player, drawer, guess)
}

// correctGuessLocked awards points, resolves the turn and schedules
// the next one. Caller must hold the lock.
func (s *RoomSession) correctGuessLocked(player, drawer *domain.Player) {
	player.Score += s.settings.GuesserPoints
	drawer.Score += s.settings.DrawerPoints

	// Cancel the countdown before scheduling the delayed turn start,
	// or both paths could race to begin two turns.
	s.cancelCountdownLocked()

	word := s.room.CurrentWord
	s.advanceTurnLocked()
	nextDrawer := s.room.Drawer()

	s.queueEvent(domain.NewEvent(domain.EventCorrectGuess, s.room.Code, &domain.CorrectGuessPayload{
		Guesser:    player.Name,
		Word:       word,
		Scores:     s.room.Scores(),
		NextDrawer: nextDrawer.Name,
	}))

	s.logger.Info("correct guess",
		"roomCode", s.room.Code,
		"guesser", player.Name,
		"word", word,
	)

	s.scheduleNextTurnLocked()
}

// wrongGuessLocked counts the miss, tells the drawer, and privately
// hints the guesser when close or struggling. Caller must hold the
// lock.
func (s *RoomSession) wrongGuessLocked(player, drawer *domain.Player, guess string) {
	count := s.room.WrongGuesses[player.ConnID] + 1
	s.room.WrongGuesses[player.ConnID] = count

	s.queueEvent(domain.NewPlayerEvent(domain.EventWrongGuess, s.room.Code, drawer.ConnID, &domain.WrongGuessPayload{
		Guesser: player.Name,
		Guess:   guess,
	}))

	if similarity := domain.Similarity(guess, s.room.CurrentWord); similarity >= s.settings.ClosePercent {
		s.queueEvent(domain.NewPlayerEvent(domain.EventCloseGuess, s.room.Code, player.ConnID, &domain.CloseGuessPayload{
			Similarity: similarity,
		}))
	}

	// Fires once, on the count reaching the threshold exactly.
	if count == s.settings.HintAfterWrong {
		s.queueEvent(domain.NewPlayerEvent(domain.EventHint, s.room.Code, player.ConnID, &domain.HintPayload{
			Letters: len([]rune(s.room.CurrentWord)),
		}))
	}
}

// RelayDrawing forwards an opaque drawing payload to everyone in the
// room except the sender.
func (s *RoomSession) RelayDrawing(connID string, data json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Player(connID) == nil {
		return
	}

	s.queueEvent(domain.NewRelayEvent(domain.EventDrawing, s.room.Code, connID, domain.DrawingPayload(data)))
}

// advanceTurnLocked rotates the drawer and, when the rotation wraps,
// advances the round and announces a difficulty change if the
// completed-round count crossed a threshold. Caller must hold the
// lock.
func (s *RoomSession) advanceTurnLocked() {
	if !s.room.AdvanceTurn() {
		return
	}

	current := wordbank.ForRound(s.room.Round)
	if current == wordbank.ForRound(s.room.Round-1) {
		return
	}

	s.queueEvent(domain.NewEvent(domain.EventDifficultyChange, s.room.Code, &domain.DifficultyChangePayload{
		Difficulty: current.String(),
		Round:      s.room.Round,
	}))
}

// scheduleNextTurnLocked enters the fixed pause before the next turn.
// Caller must hold the lock.
func (s *RoomSession) scheduleNextTurnLocked() {
	s.cancelTransitionLocked()

	s.room.State = domain.StateTransitioning
	s.transition = time.AfterFunc(s.settings.TransitionDelay, s.nextTurn)
}

// nextTurn is the delayed continuation out of the transitioning
// pause. The state guard makes a stale fire a no-op.
func (s *RoomSession) nextTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transition = nil

	if s.room.State != domain.StateTransitioning || !s.room.Started || len(s.room.Players) == 0 {
		return
	}

	s.beginTurnLocked()
}

// cancelCountdownLocked stops an active countdown, if any. The handle
// is nulled immediately so repeated cancellation is idempotent.
func (s *RoomSession) cancelCountdownLocked() {
	if s.countdownStop != nil {
		close(s.countdownStop)
		s.countdownStop = nil
	}
}

// cancelTransitionLocked stops a pending delayed turn start, if any.
func (s *RoomSession) cancelTransitionLocked() {
	if s.transition != nil {
		s.transition.Stop()
		s.transition = nil
	}
}

// queueEvent adds an event to the broadcast queue
func (s *RoomSession) queueEvent(event *domain.Event) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *RoomSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent fans an event out to its target: one connection, the
// whole room, or the room minus the sender.
func (s *RoomSession) broadcastEvent(event *domain.Event) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	if event.To != "" {
		if client, ok := s.clients[event.To]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "connID", event.To, "error", err)
			}
		}
		return
	}

	for connID, client := range s.clients {
		if event.Exclude != "" && connID == event.Exclude {
			continue
		}
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "connID", connID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *RoomSession) Close() {
	select {
	case <-s.done:
		return // Already closed
	default:
		close(s.done)
	}

	s.mu.Lock()
	s.cancelCountdownLocked()
	s.cancelTransitionLocked()
	s.mu.Unlock()

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
