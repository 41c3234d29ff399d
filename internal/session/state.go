package session

import (
	"time"

	"github.com/abhisek/mindspeed/internal/store"
)

// Phase is the lifecycle phase of a game.
type Phase int

const (
	PhaseActive Phase = iota // Accepting answers
	PhaseEnded               // Summary produced, no further answers
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// PhaseOf returns the phase of a stored game.
func PhaseOf(g *store.Game) Phase {
	if g.Ended() {
		return PhaseEnded
	}
	return PhaseActive
}

// StartResult is returned by Service.Start.
type StartResult struct {
	GameID      string
	Message     string
	SubmitURL   string
	Question    string
	TimeStarted time.Time
}

// NextQuestion is the question issued after an answer.
type NextQuestion struct {
	SubmitURL string
	Question  string
}

// SubmitResult is returned by Service.Submit.
type SubmitResult struct {
	Result       string
	Correct      bool
	TimeTaken    int // seconds
	NextQuestion NextQuestion
	CurrentScore string
}
