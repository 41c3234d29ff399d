package store

import (
	"context"
	"fmt"
)

func (r *repo) CreateQuestion(ctx context.Context, q *Question) error {
	query, args := sqlb.Insert(tableQuestions).
		Columns("equation", "correct_answer", "difficulty", "created_at").
		Values(q.Equation, q.CorrectAnswer, q.Difficulty, q.CreatedAt).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	q.ID = int(id)
	return nil
}
