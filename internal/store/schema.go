package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the migration and the queries.
const (
	tableGames     = "games"
	tableQuestions = "questions"
	tableAnswers   = "answers"
	tableEvents    = "game_events"
)

var (
	// gamesColumns holds the columns for the "games" table.
	gamesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "ended_at", Type: field.TypeTime, Nullable: true},
	}
	gamesTable = &schema.Table{
		Name:       tableGames,
		Columns:    gamesColumns,
		PrimaryKey: []*schema.Column{gamesColumns[0]},
	}

	// questionsColumns holds the columns for the "questions" table.
	questionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "equation", Type: field.TypeString},
		{Name: "correct_answer", Type: field.TypeFloat64},
		{Name: "difficulty", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
	}
	questionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0]},
	}

	// answersColumns holds the columns for the "answers" table.
	answersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "answer", Type: field.TypeFloat64, Nullable: true},
		{Name: "is_correct", Type: field.TypeBool, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "game_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeInt},
	}
	answersTable = &schema.Table{
		Name:       tableAnswers,
		Columns:    answersColumns,
		PrimaryKey: []*schema.Column{answersColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "answers_games_answers",
				Columns:    []*schema.Column{answersColumns[5]},
				RefColumns: []*schema.Column{gamesColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "answers_questions_answers",
				Columns:    []*schema.Column{answersColumns[6]},
				RefColumns: []*schema.Column{questionsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "answer_game_id_answer",
				Unique:  false,
				Columns: []*schema.Column{answersColumns[5], answersColumns[1]},
			},
		},
	}

	// eventsColumns holds the columns for the "game_events" table.
	eventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "game_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool, Nullable: true},
		{Name: "time_taken", Type: field.TypeInt, Default: 0},
	}
	eventsTable = &schema.Table{
		Name:       tableEvents,
		Columns:    eventsColumns,
		PrimaryKey: []*schema.Column{eventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "gameevent_game_id", Columns: []*schema.Column{eventsColumns[3]}},
			{Name: "gameevent_action", Columns: []*schema.Column{eventsColumns[4]}},
		},
	}

	// tables holds all the tables in the schema.
	tables = []*schema.Table{
		gamesTable,
		questionsTable,
		answersTable,
		eventsTable,
	}
)

func init() {
	answersTable.ForeignKeys[0].RefTable = gamesTable
	answersTable.ForeignKeys[1].RefTable = questionsTable
}
