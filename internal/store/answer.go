package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) CreateAnswer(ctx context.Context, gameID string, q Question, issuedAt time.Time) (*Answer, error) {
	query, args := sqlb.Insert(tableAnswers).
		Columns("game_id", "question_id", "created_at", "updated_at").
		Values(gameID, q.ID, issuedAt, issuedAt).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("insert answer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("answer id: %w", err)
	}
	return &Answer{
		ID:        int(id),
		GameID:    gameID,
		Question:  q,
		CreatedAt: issuedAt,
		UpdatedAt: issuedAt,
	}, nil
}

func (r *repo) PendingAnswer(ctx context.Context, gameID string) (*Answer, error) {
	sel, a := answerSelector()
	query, args := sel.
		Where(entsql.And(
			entsql.EQ(a.C("game_id"), gameID),
			entsql.IsNull(a.C("answer")),
		)).
		OrderBy(a.C("created_at"), a.C("id")).
		Limit(1).
		Query()

	answers, err := r.scanAnswers(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query pending answer: %w", err)
	}
	if len(answers) == 0 {
		return nil, ErrNotFound
	}
	return &answers[0], nil
}

func (r *repo) CloseAnswer(ctx context.Context, id int, value float64, correct bool, at time.Time) error {
	query, args := sqlb.Update(tableAnswers).
		Set("answer", value).
		Set("is_correct", correct).
		Set("updated_at", at).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.IsNull("answer"),
		)).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("close answer: %w", err)
	}
	return expectOne(res)
}

func (r *repo) ListAnswers(ctx context.Context, gameID string) ([]Answer, error) {
	sel, a := answerSelector()
	query, args := sel.
		Where(entsql.EQ(a.C("game_id"), gameID)).
		OrderBy(a.C("created_at"), a.C("id")).
		Query()

	answers, err := r.scanAnswers(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

// answerSelector selects answers joined with their questions.
func answerSelector() (*entsql.Selector, *entsql.SelectTable) {
	// Both tables carry an alias so the column references match the
	// names in the FROM and JOIN clauses.
	a := sqlb.Table(tableAnswers).As("a")
	q := sqlb.Table(tableQuestions).As("q")
	sel := sqlb.Select(
		a.C("id"), a.C("game_id"), a.C("answer"), a.C("is_correct"),
		a.C("created_at"), a.C("updated_at"),
		q.C("id"), q.C("equation"), q.C("correct_answer"), q.C("difficulty"), q.C("created_at"),
	).
		From(a).
		Join(q).
		On(a.C("question_id"), q.C("id"))
	return sel, a
}

// scanAnswers runs an answerSelector query and scans every row.
func (r *repo) scanAnswers(ctx context.Context, query string, args []any) ([]Answer, error) {
	rows, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Answer
	for rows.Next() {
		var (
			a       Answer
			value   sql.NullFloat64
			correct sql.NullBool
		)
		err := rows.Scan(
			&a.ID, &a.GameID, &value, &correct, &a.CreatedAt, &a.UpdatedAt,
			&a.Question.ID, &a.Question.Equation, &a.Question.CorrectAnswer,
			&a.Question.Difficulty, &a.Question.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if value.Valid {
			v := value.Float64
			a.Value = &v
		}
		if correct.Valid {
			c := correct.Bool
			a.IsCorrect = &c
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
