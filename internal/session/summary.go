package session

import (
	"github.com/abhisek/mindspeed/internal/clock"
	"github.com/abhisek/mindspeed/internal/store"
)

// HistoryEntry is one submitted answer in a game summary.
type HistoryEntry struct {
	Question  string
	Answer    float64
	Correct   bool
	TimeTaken int
}

// BestScore is the fastest correct answer of a game.
type BestScore struct {
	Question  string
	Answer    float64
	TimeTaken int
}

// EndResult is the summary returned by Service.End.
type EndResult struct {
	Name           string
	Difficulty     int
	CurrentScore   string
	TotalTimeSpent int // seconds from start to end
	BestScore      *BestScore
	History        []HistoryEntry
}

// BuildSummary creates the end-of-game summary from a game and all of its
// answers in issue order.
func BuildSummary(g *store.Game, answers []store.Answer) *EndResult {
	res := &EndResult{
		Name:           g.Name,
		Difficulty:     g.Difficulty,
		CurrentScore:   Score(answers),
		TotalTimeSpent: clock.ElapsedSeconds(g.CreatedAt, g.UpdatedAt),
		History:        []HistoryEntry{},
	}

	for _, a := range answers {
		if a.Pending() {
			continue
		}
		res.History = append(res.History, HistoryEntry{
			Question:  a.Question.Equation,
			Answer:    *a.Value,
			Correct:   a.Correct(),
			TimeTaken: TimeTaken(a),
		})
	}

	if best := BestAnswer(answers); best != nil {
		res.BestScore = &BestScore{
			Question:  best.Question.Equation,
			Answer:    *best.Value,
			TimeTaken: TimeTaken(*best),
		}
	}
	return res
}
