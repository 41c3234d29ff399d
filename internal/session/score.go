package session

import (
	"fmt"
	"slices"

	"github.com/abhisek/mindspeed/internal/clock"
	"github.com/abhisek/mindspeed/internal/store"
)

// Score formats a game's score as "correct/total". The total excludes
// one answer, the one in flight, so a game with a single pending answer
// scores "0/0".
func Score(answers []store.Answer) string {
	if len(answers) == 0 {
		return "0/0"
	}
	correct := 0
	for i := range answers {
		if answers[i].Correct() {
			correct++
		}
	}
	return fmt.Sprintf("%d/%d", correct, len(answers)-1)
}

// BestAnswer returns the correct answer submitted fastest, or nil when no
// answer is correct. Ties go to the answer issued first.
func BestAnswer(answers []store.Answer) *store.Answer {
	var correct []store.Answer
	for _, a := range answers {
		if !a.Pending() && a.Correct() {
			correct = append(correct, a)
		}
	}
	if len(correct) == 0 {
		return nil
	}
	slices.SortStableFunc(correct, func(a, b store.Answer) int {
		return TimeTaken(a) - TimeTaken(b)
	})
	best := correct[0]
	return &best
}

// TimeTaken is the whole seconds between issuing an answer's question and
// its submission.
func TimeTaken(a store.Answer) int {
	return clock.ElapsedSeconds(a.CreatedAt, a.UpdatedAt)
}
