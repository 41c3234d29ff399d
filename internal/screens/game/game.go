package game

import (
	"context"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindspeed/internal/router"
	"github.com/abhisek/mindspeed/internal/screen"
	"github.com/abhisek/mindspeed/internal/session"
	"github.com/abhisek/mindspeed/internal/ui/components"
	"github.com/abhisek/mindspeed/internal/ui/layout"
)

// Service is the game service the screen plays against.
type Service interface {
	Start(ctx context.Context, name string, difficulty int) (*session.StartResult, error)
	Submit(ctx context.Context, gameID string, value float64) (*session.SubmitResult, error)
	End(ctx context.Context, gameID string) (*session.EndResult, error)
}

// SummaryFactory builds the screen shown once the game ends.
type SummaryFactory func(*session.EndResult) screen.Screen

// GameScreen plays one game: it starts the game, submits each typed
// answer and ends the game on request.
type GameScreen struct {
	svc        Service
	summary    SummaryFactory
	name       string
	difficulty int
	now        func() time.Time

	gameID   string
	started  time.Time
	elapsed  int
	question string
	score    string
	last     *session.SubmitResult
	answered int
	input    components.TextInput
	busy     bool // waiting on the service
	confirm  bool // "end game?" prompt shown
	endAfter bool // end once the in-flight submit returns
	ended    bool
	inputErr string
	errMsg   string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a GameScreen for player name at difficulty.
func New(svc Service, summary SummaryFactory, name string, difficulty int) *GameScreen {
	return &GameScreen{
		svc:        svc,
		summary:    summary,
		name:       name,
		difficulty: difficulty,
		now:        time.Now,
		score:      "0/0",
		input:      newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Type your answer...", true, 16)
}

func (s *GameScreen) Init() tea.Cmd {
	s.busy = true
	return tea.Batch(
		s.startCmd(),
		s.input.Init(),
	)
}

func (s *GameScreen) Title() string {
	return "Level " + strconv.Itoa(s.difficulty)
}

func (s *GameScreen) Status() string {
	if s.gameID == "" {
		return ""
	}
	return "Score " + s.score + "   " + layout.FormatSeconds(s.elapsed)
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "End game"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gameStartedMsg:
		return s.handleStarted(msg)

	case answerResultMsg:
		return s.handleAnswer(msg)

	case gameEndedMsg:
		return s.handleEnded(msg)

	case timerTickMsg:
		if s.ended || s.gameID == "" {
			return s, nil
		}
		s.elapsed = int(s.now().Sub(s.started) / time.Second)
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GameScreen) handleStarted(msg gameStartedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.gameID = msg.Result.GameID
	s.question = msg.Result.Question
	s.started = s.now()
	return s, tickCmd()
}

func (s *GameScreen) handleAnswer(msg answerResultMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
	} else {
		s.last = msg.Result
		s.answered++
		s.score = msg.Result.CurrentScore
		s.question = msg.Result.NextQuestion.Question
		s.input.Reset()
		s.input.Submit(msg.Result.Correct)
	}
	if s.endAfter {
		s.endAfter = false
		return s, s.endCmd()
	}
	return s, nil
}

func (s *GameScreen) handleEnded(msg gameEndedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.ended = true
	next := s.summary(msg.Result)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm {
		switch key {
		case "y", "Y":
			s.confirm = false
			if s.busy {
				s.endAfter = true
				return s, nil
			}
			return s, s.endCmd()
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if s.gameID == "" || s.ended {
		return s, nil
	}

	switch key {
	case "esc":
		s.confirm = true
		return s, nil
	case "enter":
		if s.busy {
			return s, nil
		}
		v, err := s.input.NumericValue()
		if err != nil {
			s.inputErr = "Enter a number"
			return s, nil
		}
		s.inputErr = ""
		return s, s.submitCmd(v)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GameScreen) startCmd() tea.Cmd {
	svc, name, difficulty := s.svc, s.name, s.difficulty
	return func() tea.Msg {
		res, err := svc.Start(context.Background(), name, difficulty)
		return gameStartedMsg{Result: res, Err: err}
	}
}

func (s *GameScreen) submitCmd(v float64) tea.Cmd {
	s.busy = true
	svc, id := s.svc, s.gameID
	return func() tea.Msg {
		res, err := svc.Submit(context.Background(), id, v)
		return answerResultMsg{Result: res, Err: err}
	}
}

func (s *GameScreen) endCmd() tea.Cmd {
	s.busy = true
	svc, id := s.svc, s.gameID
	return func() tea.Msg {
		res, err := svc.End(context.Background(), id)
		return gameEndedMsg{Result: res, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
