package domain

import "time"

// Settings holds configurable game parameters.
type Settings struct {
	MinPlayers      int           `json:"minPlayers"`
	TurnDuration    time.Duration `json:"turnDuration"`
	TickInterval    time.Duration `json:"tickInterval"`
	TransitionDelay time.Duration `json:"transitionDelay"`
	GuesserPoints   int           `json:"guesserPoints"`
	DrawerPoints    int           `json:"drawerPoints"`
	ClosePercent    int           `json:"closePercent"`
	HintAfterWrong  int           `json:"hintAfterWrong"`
	RoomCodeLength  int           `json:"roomCodeLength"`
}

// DefaultSettings returns the default game settings.
func DefaultSettings() Settings {
	return Settings{
		MinPlayers:      2,
		TurnDuration:    60 * time.Second,
		TickInterval:    time.Second,
		TransitionDelay: 3 * time.Second,
		GuesserPoints:   100,
		DrawerPoints:    50,
		ClosePercent:    60,
		HintAfterWrong:  3,
		RoomCodeLength:  4,
	}
}

// TurnSeconds returns the countdown start value in whole seconds.
func (s Settings) TurnSeconds() int {
	return int(s.TurnDuration / time.Second)
}
