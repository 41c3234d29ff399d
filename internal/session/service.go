package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/mindspeed/internal/clock"
	"github.com/abhisek/mindspeed/internal/problemgen"
	"github.com/abhisek/mindspeed/internal/store"
)

// Transactor runs a unit of work against the store atomically.
type Transactor interface {
	InTx(ctx context.Context, fn func(store.Repo) error) error
}

// Observer is notified after each operation commits.
type Observer interface {
	GameStarted(difficulty int)
	AnswerSubmitted(correct bool, timeTaken int)
	GameEnded()
}

// Service runs the game state machine on top of the store.
// It is safe for concurrent use.
type Service struct {
	st     Transactor
	clock  clock.Clock
	cfg    Config
	logger *slog.Logger

	genMu sync.Mutex
	gen   problemgen.Generator

	observer Observer
}

// NewService creates a Service. A nil logger discards logs.
func NewService(st Transactor, gen problemgen.Generator, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{st: st, gen: gen, clock: clk, cfg: cfg, logger: logger}
}

// SetObserver registers o to receive operation notifications.
func (s *Service) SetObserver(o Observer) {
	s.observer = o
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Start creates a game for name at difficulty and issues its first
// question.
func (s *Service) Start(ctx context.Context, name string, difficulty int) (*StartResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	now := s.clock.Now()
	g := &store.Game{
		ID:         uuid.New().String(),
		Name:       name,
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var first store.Question
	err := s.st.InTx(ctx, func(r store.Repo) error {
		if err := r.CreateGame(ctx, g); err != nil {
			return err
		}
		q, err := s.issueQuestion(ctx, r, g)
		if err != nil {
			return err
		}
		first = q
		return r.AppendEvent(ctx, store.GameEventData{
			GameID:    g.ID,
			Action:    store.ActionStart,
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}

	s.logger.Info("game started", "game_id", g.ID, "difficulty", difficulty)
	if s.observer != nil {
		s.observer.GameStarted(difficulty)
	}

	return &StartResult{
		GameID:      g.ID,
		Message:     fmt.Sprintf("Hello %s, find your submit API URL below.", g.Name),
		SubmitURL:   s.cfg.SubmitURL(g.ID),
		Question:    first.Equation,
		TimeStarted: now,
	}, nil
}

// Submit answers the pending question of game gameID and issues the next
// one. value is rounded to 2 decimal places before it is compared.
func (s *Service) Submit(ctx context.Context, gameID string, value float64) (*SubmitResult, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &ValidationError{Field: "answer", Message: "must be a finite number"}
	}
	value = problemgen.Round2(value)

	var res *SubmitResult
	err := s.st.InTx(ctx, func(r store.Repo) error {
		g, err := r.GetGame(ctx, gameID)
		if err != nil {
			return mapStoreErr(err)
		}
		if PhaseOf(g) == PhaseEnded {
			return &StateError{GameID: g.ID, Phase: PhaseEnded, Op: "submit"}
		}

		pending, err := r.PendingAnswer(ctx, g.ID)
		if err != nil {
			return mapStoreErr(err)
		}

		now := s.clock.Now()
		correct := value == pending.Question.CorrectAnswer
		if err := r.CloseAnswer(ctx, pending.ID, value, correct, now); err != nil {
			return mapStoreErr(err)
		}

		answers, err := r.ListAnswers(ctx, g.ID)
		if err != nil {
			return err
		}
		score := Score(answers)

		next, err := s.issueQuestion(ctx, r, g)
		if err != nil {
			return err
		}

		pending.Value, pending.IsCorrect, pending.UpdatedAt = &value, &correct, now
		taken := TimeTaken(*pending)
		if err := r.AppendEvent(ctx, store.GameEventData{
			GameID:    g.ID,
			Action:    store.ActionAnswer,
			Timestamp: now,
			Correct:   &correct,
			TimeTaken: taken,
		}); err != nil {
			return err
		}

		res = &SubmitResult{
			Result:    resultMessage(g.Name, correct),
			Correct:   correct,
			TimeTaken: taken,
			NextQuestion: NextQuestion{
				SubmitURL: s.cfg.SubmitURL(g.ID),
				Question:  next.Equation,
			},
			CurrentScore: score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("answer submitted", "game_id", gameID, "correct", res.Correct, "time_taken", res.TimeTaken)
	if s.observer != nil {
		s.observer.AnswerSubmitted(res.Correct, res.TimeTaken)
	}
	return res, nil
}

// End finishes game gameID and returns its summary. Every call sets the
// game's updated_at to now, so total time spent runs to the latest End.
// ended_at, the end event and the observer are only set on the first call.
func (s *Service) End(ctx context.Context, gameID string) (*EndResult, error) {
	var (
		res     *EndResult
		changed bool
	)
	err := s.st.InTx(ctx, func(r store.Repo) error {
		g, err := r.GetGame(ctx, gameID)
		if err != nil {
			return mapStoreErr(err)
		}

		if PhaseOf(g) == PhaseActive {
			now := s.clock.Now()
			if err := r.EndGame(ctx, g.ID, now); err != nil {
				return mapStoreErr(err)
			}
			g.UpdatedAt, g.EndedAt = now, &now
			changed = true
		} else {
			now := s.clock.Now()
			if err := r.TouchGame(ctx, g.ID, now); err != nil {
				return mapStoreErr(err)
			}
			g.UpdatedAt = now
		}

		answers, err := r.ListAnswers(ctx, g.ID)
		if err != nil {
			return err
		}
		res = BuildSummary(g, answers)

		if !changed {
			return nil
		}
		return r.AppendEvent(ctx, store.GameEventData{
			GameID:    g.ID,
			Action:    store.ActionEnd,
			Timestamp: g.UpdatedAt,
			TimeTaken: res.TotalTimeSpent,
		})
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.logger.Info("game ended", "game_id", gameID, "score", res.CurrentScore, "total_time", res.TotalTimeSpent)
		if s.observer != nil {
			s.observer.GameEnded()
		}
	}
	return res, nil
}

// issueQuestion generates a question for g, stores it, and opens a
// pending answer for it.
func (s *Service) issueQuestion(ctx context.Context, r store.Repo, g *store.Game) (store.Question, error) {
	s.genMu.Lock()
	pq := s.gen.Generate(g.Difficulty)
	s.genMu.Unlock()

	q := store.Question{
		Equation:      pq.Equation,
		CorrectAnswer: pq.Answer,
		Difficulty:    pq.Difficulty,
		CreatedAt:     pq.CreatedAt,
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = s.clock.Now()
	}
	if err := r.CreateQuestion(ctx, &q); err != nil {
		return q, err
	}
	if _, err := r.CreateAnswer(ctx, g.ID, q, s.clock.Now()); err != nil {
		return q, err
	}
	return q, nil
}

func resultMessage(name string, correct bool) string {
	if correct {
		return fmt.Sprintf("Good job %s, your answer is correct!", name)
	}
	return fmt.Sprintf("Sorry %s, your answer is incorrect!", name)
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
