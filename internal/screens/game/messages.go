package game

import (
	"time"

	"github.com/abhisek/mindspeed/internal/session"
)

// gameStartedMsg is sent when the game has been created.
type gameStartedMsg struct {
	Result *session.StartResult
	Err    error
}

// answerResultMsg is sent when a submitted answer has been scored.
type answerResultMsg struct {
	Result *session.SubmitResult
	Err    error
}

// gameEndedMsg is sent when the game has been ended.
type gameEndedMsg struct {
	Result *session.EndResult
	Err    error
}

// timerTickMsg is sent every second to update the clock.
type timerTickMsg time.Time
