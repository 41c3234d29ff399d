package store

// Game event log.
//
// Every state change of a game (start, answer, end) is appended to the
// game_events table with a global monotonic sequence number. The event log
// is append-only and feeds the stats command.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Event actions.
const (
	ActionStart  = "start"
	ActionAnswer = "answer"
	ActionEnd    = "end"
)

// GameEventData captures the data for a single game event.
type GameEventData struct {
	GameID    string
	Action    string
	Timestamp time.Time
	Correct   *bool // answer events only
	TimeTaken int   // seconds; answer and end events
}

// EventCounts is a summary of the event log.
type EventCounts struct {
	Started  int
	Answered int
	Correct  int
	Ended    int
}

// createSequenceTable ensures the single-row counter table exists.
// It lives outside the migrated schema because the row is seeded once and
// guarded by a CHECK constraint.
func createSequenceTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// nextSequence atomically returns the next sequence number and increments
// the counter. Run inside the same transaction as the event insert so a
// rolled-back event does not consume a number.
func nextSequence(ctx context.Context, conn dialect.ExecQuerier) (int64, error) {
	rows := &entsql.Rows{}
	err := conn.Query(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, rows,
	)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}

func (r *repo) AppendEvent(ctx context.Context, data GameEventData) error {
	seq, err := nextSequence(ctx, r.conn)
	if err != nil {
		return err
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var correct any
	if data.Correct != nil {
		correct = *data.Correct
	}

	query, args := sqlb.Insert(tableEvents).
		Columns("sequence", "timestamp", "game_id", "action", "correct", "time_taken").
		Values(seq, ts, data.GameID, data.Action, correct, data.TimeTaken).
		Query()
	if _, err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save game event: %w", err)
	}
	return nil
}

func (r *repo) EventCounts(ctx context.Context) (EventCounts, error) {
	var counts EventCounts

	query, args := sqlb.Select("action", entsql.Count("*")).
		From(sqlb.Table(tableEvents)).
		GroupBy("action").
		Query()
	rows, err := r.query(ctx, query, args)
	if err != nil {
		return counts, fmt.Errorf("count events: %w", err)
	}
	for rows.Next() {
		var (
			action string
			n      int
		)
		if err := rows.Scan(&action, &n); err != nil {
			rows.Close()
			return counts, fmt.Errorf("scan event count: %w", err)
		}
		switch action {
		case ActionStart:
			counts.Started = n
		case ActionAnswer:
			counts.Answered = n
		case ActionEnd:
			counts.Ended = n
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return counts, err
	}
	rows.Close()

	query, args = sqlb.Select(entsql.Count("*")).
		From(sqlb.Table(tableEvents)).
		Where(entsql.And(
			entsql.EQ("action", ActionAnswer),
			entsql.EQ("correct", true),
		)).
		Query()
	rows, err = r.query(ctx, query, args)
	if err != nil {
		return counts, fmt.Errorf("count correct answers: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&counts.Correct); err != nil {
			return counts, fmt.Errorf("scan correct count: %w", err)
		}
	}
	return counts, rows.Err()
}
