package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var t0 = time.Date(2025, 6, 25, 9, 30, 15, 0, time.UTC)

func createTestGame(t *testing.T, r Repo, id string) *Game {
	t.Helper()
	g := &Game{ID: id, Name: "Ada", Difficulty: 2, CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, r.CreateGame(context.Background(), g))
	return g
}

func createTestQuestion(t *testing.T, r Repo, eq string, answer float64) Question {
	t.Helper()
	q := Question{Equation: eq, CorrectAnswer: answer, Difficulty: 1, CreatedAt: t0}
	require.NoError(t, r.CreateQuestion(context.Background(), &q))
	return q
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by the file-based test.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mindspeed.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"games", "questions", "answers", "game_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestGameRoundTrip(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	createTestGame(t, r, "g-1")

	g, err := r.GetGame(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", g.Name)
	assert.Equal(t, 2, g.Difficulty)
	assert.True(t, g.CreatedAt.Equal(t0))
	assert.False(t, g.Ended())

	_, err = r.GetGame(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEndGame(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	createTestGame(t, r, "g-1")
	at := t0.Add(42 * time.Second)

	require.NoError(t, r.EndGame(ctx, "g-1", at))

	g, err := r.GetGame(ctx, "g-1")
	require.NoError(t, err)
	require.True(t, g.Ended())
	assert.True(t, g.EndedAt.Equal(at))
	assert.True(t, g.UpdatedAt.Equal(at))

	// Ending twice is rejected and leaves the first timestamps alone.
	assert.ErrorIs(t, r.EndGame(ctx, "g-1", at.Add(time.Minute)), ErrNotFound)
	g, err = r.GetGame(ctx, "g-1")
	require.NoError(t, err)
	assert.True(t, g.UpdatedAt.Equal(at))

	assert.ErrorIs(t, r.EndGame(ctx, "missing", at), ErrNotFound)
}

func TestTouchGameKeepsEndedAt(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	createTestGame(t, r, "g-1")
	endedAt := t0.Add(42 * time.Second)
	require.NoError(t, r.EndGame(ctx, "g-1", endedAt))

	later := endedAt.Add(time.Minute)
	require.NoError(t, r.TouchGame(ctx, "g-1", later))

	g, err := r.GetGame(ctx, "g-1")
	require.NoError(t, err)
	assert.True(t, g.UpdatedAt.Equal(later))
	require.NotNil(t, g.EndedAt)
	assert.True(t, g.EndedAt.Equal(endedAt))

	assert.ErrorIs(t, r.TouchGame(ctx, "missing", later), ErrNotFound)
}

func TestAnswerLifecycle(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	createTestGame(t, r, "g-1")
	q := createTestQuestion(t, r, "5 + 3", 8)

	created, err := r.CreateAnswer(ctx, "g-1", q, t0)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	pending, err := r.PendingAnswer(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, pending.ID)
	assert.True(t, pending.Pending())
	assert.Equal(t, "5 + 3", pending.Question.Equation)
	assert.Equal(t, 8.0, pending.Question.CorrectAnswer)
	assert.True(t, pending.UpdatedAt.Equal(pending.CreatedAt))

	closedAt := t0.Add(2500 * time.Millisecond)
	require.NoError(t, r.CloseAnswer(ctx, pending.ID, 8, true, closedAt))

	// A closed answer cannot be closed again.
	err = r.CloseAnswer(ctx, pending.ID, 9, false, closedAt)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.PendingAnswer(ctx, "g-1")
	assert.ErrorIs(t, err, ErrNotFound)

	answers, err := r.ListAnswers(ctx, "g-1")
	require.NoError(t, err)
	require.Len(t, answers, 1)
	a := answers[0]
	require.NotNil(t, a.Value)
	assert.Equal(t, 8.0, *a.Value)
	assert.True(t, a.Correct())
	assert.True(t, a.UpdatedAt.Equal(closedAt), "updated_at keeps millisecond precision")
}

func TestListAnswersOrder(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	createTestGame(t, r, "g-1")
	createTestGame(t, r, "g-2")

	eqs := []string{"1 + 1", "2 + 2", "3 + 3"}
	for i, eq := range eqs {
		q := createTestQuestion(t, r, eq, float64(2*(i+1)))
		// Same issue time for the first two: the id breaks the tie.
		at := t0
		if i == 2 {
			at = t0.Add(time.Second)
		}
		_, err := r.CreateAnswer(ctx, "g-1", q, at)
		require.NoError(t, err)
	}
	other := createTestQuestion(t, r, "9 - 9", 0)
	_, err := r.CreateAnswer(ctx, "g-2", other, t0)
	require.NoError(t, err)

	answers, err := r.ListAnswers(ctx, "g-1")
	require.NoError(t, err)
	require.Len(t, answers, 3)
	for i, a := range answers {
		assert.Equal(t, eqs[i], a.Question.Equation)
		assert.Equal(t, "g-1", a.GameID)
	}

	none, err := r.ListAnswers(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnswerSelectorQualifiesColumnsByAlias(t *testing.T) {
	sel, _ := answerSelector()
	query, _ := sel.Query()

	assert.Contains(t, query, "FROM `answers` AS `a`")
	assert.Contains(t, query, "JOIN `questions` AS `q`")
	assert.Contains(t, query, "`q`.`equation`")
	assert.NotContains(t, query, "`questions`.")
	assert.NotContains(t, query, "`answers`.")
}

func TestPendingAnswerAfterClosedAnswers(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	createTestGame(t, r, "g-1")
	q1 := createTestQuestion(t, r, "1 + 1", 2)
	first, err := r.CreateAnswer(ctx, "g-1", q1, t0)
	require.NoError(t, err)
	require.NoError(t, r.CloseAnswer(ctx, first.ID, 2, true, t0.Add(2*time.Second)))

	q2 := createTestQuestion(t, r, "3 * 3", 9)
	second, err := r.CreateAnswer(ctx, "g-1", q2, t0.Add(2*time.Second))
	require.NoError(t, err)

	pending, err := r.PendingAnswer(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, pending.ID)
	assert.Equal(t, q2.ID, pending.Question.ID)
	assert.Equal(t, "3 * 3", pending.Question.Equation)
}

func TestAnswerRequiresExistingGame(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()

	q := createTestQuestion(t, r, "5 + 3", 8)
	_, err := r.CreateAnswer(context.Background(), "missing", q, t0)
	assert.Error(t, err, "foreign key on game_id should reject orphan answers")
}

func TestInTxRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(r Repo) error {
		createTestGame(t, r, "g-1")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Repo().GetGame(ctx, "g-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInTxCommits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(r Repo) error {
		createTestGame(t, r, "g-1")
		return r.AppendEvent(ctx, GameEventData{GameID: "g-1", Action: ActionStart, Timestamp: t0})
	})
	require.NoError(t, err)

	g, err := s.Repo().GetGame(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "g-1", g.ID)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := nextSequence(ctx, s.drv)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestEventLog(t *testing.T) {
	s := openTestStore(t)
	r := s.Repo()
	ctx := context.Background()

	yes, no := true, false
	events := []GameEventData{
		{GameID: "g-1", Action: ActionStart, Timestamp: t0},
		{GameID: "g-1", Action: ActionAnswer, Correct: &yes, TimeTaken: 3, Timestamp: t0},
		{GameID: "g-1", Action: ActionAnswer, Correct: &no, TimeTaken: 5, Timestamp: t0},
		{GameID: "g-1", Action: ActionAnswer, Correct: &yes, TimeTaken: 1, Timestamp: t0},
		{GameID: "g-1", Action: ActionEnd, TimeTaken: 20, Timestamp: t0},
		{GameID: "g-2", Action: ActionStart},
	}
	for _, e := range events {
		require.NoError(t, r.AppendEvent(ctx, e))
	}

	counts, err := r.EventCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, EventCounts{Started: 2, Answered: 3, Correct: 2, Ended: 1}, counts)

	var maxSeq int64
	require.NoError(t, s.DB().QueryRow("SELECT MAX(sequence) FROM game_events").Scan(&maxSeq))
	assert.Equal(t, int64(len(events)), maxSeq)
}

func TestEventCountsEmpty(t *testing.T) {
	s := openTestStore(t)
	counts, err := s.Repo().EventCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EventCounts{}, counts)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(dir, "custom", "x.db")
		t.Setenv("MINDSPEED_DB", p)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.DirExists(t, filepath.Dir(p))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("MINDSPEED_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "mindspeed", "mindspeed.db"), got)
	})
}
