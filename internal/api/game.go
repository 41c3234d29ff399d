package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mindspeed/internal/session"
)

// GameService is the part of session.Service the handlers use.
type GameService interface {
	Start(ctx context.Context, name string, difficulty int) (*session.StartResult, error)
	Submit(ctx context.Context, gameID string, value float64) (*session.SubmitResult, error)
	End(ctx context.Context, gameID string) (*session.EndResult, error)
}

// GameHandler serves the game endpoints.
type GameHandler struct {
	svc    GameService
	logger *slog.Logger
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(svc GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the game routes on r.
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/start", h.Start)
		r.Post("/{id}/submit", h.Submit)
		r.Get("/{id}/end", h.End)
	})
}

// StartGameRequest is the body of POST /game/start.
type StartGameRequest struct {
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}

// StartGameResponse is returned when a game starts.
type StartGameResponse struct {
	Message     string    `json:"message"`
	SubmitURL   string    `json:"submit_url"`
	Question    string    `json:"question"`
	TimeStarted time.Time `json:"time_started"`
}

// SubmitAnswerRequest is the body of POST /game/{id}/submit.
type SubmitAnswerRequest struct {
	Answer Answer `json:"answer"`
}

// Answer is a submitted value. It accepts a JSON number or a numeric string.
type Answer float64

func (a *Answer) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("answer must be a number")
	}
	*a = Answer(v)
	return nil
}

// NextQuestionResponse is the question issued after an answer.
type NextQuestionResponse struct {
	SubmitURL string `json:"submit_url"`
	Question  string `json:"question"`
}

// SubmitAnswerResponse is returned for each submitted answer.
type SubmitAnswerResponse struct {
	Result       string               `json:"result"`
	TimeTaken    int                  `json:"time_taken"`
	NextQuestion NextQuestionResponse `json:"next_question"`
	CurrentScore string               `json:"current_score"`
}

// QuestionResult is one answered question in a summary.
type QuestionResult struct {
	Question  string  `json:"question"`
	Answer    float64 `json:"answer"`
	TimeTaken int     `json:"time_taken"`
}

// EndGameResponse is the summary returned when a game ends.
type EndGameResponse struct {
	Name           string           `json:"name"`
	Difficulty     int              `json:"difficulty"`
	CurrentScore   string           `json:"current_score"`
	TotalTimeSpent int              `json:"total_time_spent"`
	BestScore      *QuestionResult  `json:"best_score"`
	History        []QuestionResult `json:"history"`
}

// Start handles POST /game/start.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if err := decodeBody(w, r, startGameSchema, &req); err != nil {
		h.bodyError(w, err)
		return
	}

	res, err := h.svc.Start(r.Context(), req.Name, req.Difficulty)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, StartGameResponse{
		Message:     res.Message,
		SubmitURL:   res.SubmitURL,
		Question:    res.Question,
		TimeStarted: res.TimeStarted,
	})
}

// Submit handles POST /game/{id}/submit.
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if err := decodeBody(w, r, submitAnswerSchema, &req); err != nil {
		h.bodyError(w, err)
		return
	}

	res, err := h.svc.Submit(r.Context(), chi.URLParam(r, "id"), float64(req.Answer))
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, SubmitAnswerResponse{
		Result:    res.Result,
		TimeTaken: res.TimeTaken,
		NextQuestion: NextQuestionResponse{
			SubmitURL: res.NextQuestion.SubmitURL,
			Question:  res.NextQuestion.Question,
		},
		CurrentScore: res.CurrentScore,
	})
}

// End handles GET /game/{id}/end.
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.End(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}

	out := EndGameResponse{
		Name:           res.Name,
		Difficulty:     res.Difficulty,
		CurrentScore:   res.CurrentScore,
		TotalTimeSpent: res.TotalTimeSpent,
		History:        make([]QuestionResult, 0, len(res.History)),
	}
	if b := res.BestScore; b != nil {
		out.BestScore = &QuestionResult{Question: b.Question, Answer: b.Answer, TimeTaken: b.TimeTaken}
	}
	for _, e := range res.History {
		out.History = append(out.History, QuestionResult{
			Question:  e.Question,
			Answer:    e.Answer,
			TimeTaken: e.TimeTaken,
		})
	}
	JSON(w, http.StatusOK, out)
}

func (h *GameHandler) bodyError(w http.ResponseWriter, err error) {
	var be *bodyError
	if errors.As(err, &be) {
		Error(w, http.StatusBadRequest, be.msg)
		return
	}
	h.logger.Error("decode request body", "error", err)
	Error(w, http.StatusInternalServerError, "internal server error")
}
