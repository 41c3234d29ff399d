package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mindspeed/internal/session"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	GamesStarted    *prometheus.CounterVec
	Answers         *prometheus.CounterVec
	AnswerTime      prometheus.Histogram
	GamesEnded      prometheus.Counter
}

var _ session.Observer = (*Metrics)(nil)

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		GamesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindspeed_games_started_total",
				Help: "Games started, by difficulty",
			},
			[]string{"difficulty"},
		),
		Answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindspeed_answers_total",
				Help: "Answers submitted, by correctness",
			},
			[]string{"correct"},
		),
		AnswerTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mindspeed_answer_time_seconds",
				Help:    "Seconds between issuing a question and its answer",
				Buckets: []float64{1, 2, 3, 5, 10, 20, 30, 60},
			},
		),
		GamesEnded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mindspeed_games_ended_total",
				Help: "Games ended",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDuration,
		m.GamesStarted,
		m.Answers,
		m.AnswerTime,
		m.GamesEnded,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records a request count and duration per route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) GameStarted(difficulty int) {
	m.GamesStarted.WithLabelValues(strconv.Itoa(difficulty)).Inc()
}

func (m *Metrics) AnswerSubmitted(correct bool, timeTaken int) {
	m.Answers.WithLabelValues(strconv.FormatBool(correct)).Inc()
	m.AnswerTime.Observe(float64(timeTaken))
}

func (m *Metrics) GameEnded() {
	m.GamesEnded.Inc()
}
