package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Game is one player's play-through.
type Game struct {
	ID         string
	Name       string
	Difficulty int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	EndedAt    *time.Time // nil while the game is active
}

// Ended reports whether the game has been ended.
func (g *Game) Ended() bool {
	return g.EndedAt != nil
}

// Question is a persisted generated expression. Immutable once stored.
type Question struct {
	ID            int
	Equation      string
	CorrectAnswer float64
	Difficulty    int
	CreatedAt     time.Time
}

// Answer is one question issued to a game and, once submitted, the
// player's response. Value and IsCorrect are nil while pending.
type Answer struct {
	ID        int
	GameID    string
	Question  Question
	Value     *float64
	IsCorrect *bool
	CreatedAt time.Time // when the question was issued
	UpdatedAt time.Time // when the answer was submitted; CreatedAt until then
}

// Pending reports whether the answer is still awaiting a submission.
func (a *Answer) Pending() bool {
	return a.Value == nil
}

// Correct reports whether the answer was submitted and correct.
func (a *Answer) Correct() bool {
	return a.IsCorrect != nil && *a.IsCorrect
}

// Repo is the persistence interface for games, questions and answers.
type Repo interface {
	// CreateGame inserts g. g.ID must be set.
	CreateGame(ctx context.Context, g *Game) error

	// GetGame returns the game with id, or ErrNotFound.
	GetGame(ctx context.Context, id string) (*Game, error)

	// EndGame sets ended_at and updated_at of an active game to at.
	// Returns ErrNotFound if no active game with id exists.
	EndGame(ctx context.Context, id string, at time.Time) error

	// TouchGame sets updated_at of the game with id to at. ended_at is
	// left as it is. Returns ErrNotFound if no game with id exists.
	TouchGame(ctx context.Context, id string, at time.Time) error

	// CreateQuestion inserts q and sets q.ID.
	CreateQuestion(ctx context.Context, q *Question) error

	// CreateAnswer inserts a pending answer for gameID referencing q and
	// sets a.ID. CreatedAt and UpdatedAt are both set to issuedAt.
	CreateAnswer(ctx context.Context, gameID string, q Question, issuedAt time.Time) (*Answer, error)

	// PendingAnswer returns the game's answer with no submitted value, or
	// ErrNotFound.
	PendingAnswer(ctx context.Context, gameID string) (*Answer, error)

	// CloseAnswer records value and correctness on a pending answer.
	// Returns ErrNotFound if the answer is missing or already closed.
	CloseAnswer(ctx context.Context, id int, value float64, correct bool, at time.Time) error

	// ListAnswers returns all of the game's answers in issue order.
	ListAnswers(ctx context.Context, gameID string) ([]Answer, error)

	// AppendEvent records a game event with the next global sequence.
	AppendEvent(ctx context.Context, data GameEventData) error

	// EventCounts returns the number of events per action.
	EventCounts(ctx context.Context) (EventCounts, error)
}

// sqlb builds SQLite-flavoured statements.
var sqlb = entsql.Dialect(dialect.SQLite)

// repo implements Repo on a driver or a transaction.
type repo struct {
	conn dialect.ExecQuerier
}

var _ Repo = (*repo)(nil)

// exec runs a statement and returns its result.
func (r *repo) exec(ctx context.Context, query string, args []any) (sql.Result, error) {
	var res sql.Result
	if err := r.conn.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// query runs a query. The caller must close the returned rows.
func (r *repo) query(ctx context.Context, query string, args []any) (*entsql.Rows, error) {
	rows := &entsql.Rows{}
	if err := r.conn.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// expectOne returns ErrNotFound unless exactly one row was affected.
func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n != 1 {
		return ErrNotFound
	}
	return nil
}
