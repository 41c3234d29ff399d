package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) CreateGame(ctx context.Context, g *Game) error {
	query, args := sqlb.Insert(tableGames).
		Columns("id", "name", "difficulty", "created_at", "updated_at").
		Values(g.ID, g.Name, g.Difficulty, g.CreatedAt, g.UpdatedAt).
		Query()
	if _, err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *repo) GetGame(ctx context.Context, id string) (*Game, error) {
	query, args := sqlb.Select("id", "name", "difficulty", "created_at", "updated_at", "ended_at").
		From(sqlb.Table(tableGames)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()
	rows, err := r.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query game: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query game: %w", err)
		}
		return nil, ErrNotFound
	}

	var (
		g     Game
		ended sql.NullTime
	)
	if err := rows.Scan(&g.ID, &g.Name, &g.Difficulty, &g.CreatedAt, &g.UpdatedAt, &ended); err != nil {
		return nil, fmt.Errorf("scan game: %w", err)
	}
	if ended.Valid {
		t := ended.Time
		g.EndedAt = &t
	}
	return &g, nil
}

func (r *repo) EndGame(ctx context.Context, id string, at time.Time) error {
	query, args := sqlb.Update(tableGames).
		Set("ended_at", at).
		Set("updated_at", at).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.IsNull("ended_at"),
		)).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("end game: %w", err)
	}
	return expectOne(res)
}

func (r *repo) TouchGame(ctx context.Context, id string, at time.Time) error {
	query, args := sqlb.Update(tableGames).
		Set("updated_at", at).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("touch game: %w", err)
	}
	return expectOne(res)
}
