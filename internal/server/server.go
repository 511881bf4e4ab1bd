package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/grounded/config"
	"github.com/mohammad-safakhou/grounded/internal/answer"
	"github.com/mohammad-safakhou/grounded/internal/creds"
	"github.com/mohammad-safakhou/grounded/internal/telemetry"
	"github.com/mohammad-safakhou/grounded/provider"
)

// Answerer is the pipeline surface the HTTP layer depends on.
type Answerer interface {
	Answer(ctx context.Context, question string, webSearch bool) (answer.Result, error)
}

// Server exposes the answer pipeline over HTTP.
type Server struct {
	orch   Answerer
	logger *log.Logger
}

func New(orch Answerer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	}
	return &Server{orch: orch, logger: logger}
}

// Run composes the whole pipeline (top-level DI) and serves it. Credentials
// are resolved first so a missing key fails before any client is built or
// any network call happens.
func Run(cfg *config.Config) error {
	c, err := creds.Resolve("", "")
	if err != nil {
		return err
	}

	llm, err := answer.NewLLMProvider(cfg.LLM, c)
	if err != nil {
		return err
	}
	searcher, err := answer.NewSearcher(cfg.Search, c)
	if err != nil {
		return err
	}
	tele := telemetry.NewTelemetry(cfg.Telemetry)

	orchLogger := log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	orch, err := answer.NewOrchestrator(cfg, orchLogger, tele, searcher, llm)
	if err != nil {
		return err
	}

	s := New(orch, log.New(log.Writer(), "[HTTP] ", log.LstdFlags))
	e := s.Echo()
	s.logger.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// Echo builds the routed echo instance; split from Run so tests can exercise
// the handlers without binding a port.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/api/answer", s.handleAnswer)
	return e
}

type answerRequest struct {
	Question  string `json:"question"`
	WebSearch bool   `json:"web_search"`
}

func (s *Server) handleAnswer(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}

	reqID := uuid.NewString()
	s.logger.Printf("[%s] answer request (web_search=%v)", reqID, req.WebSearch)

	res, err := s.orch.Answer(c.Request().Context(), req.Question, req.WebSearch)
	if err != nil {
		var genErr *provider.GenerationError
		switch {
		case errors.As(err, &genErr) && !genErr.Retryable:
			return echo.NewHTTPError(http.StatusBadGateway, "the language model rejected the request")
		case errors.As(err, &genErr):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "the language model is currently unavailable")
		case errors.Is(err, context.Canceled):
			// Client went away; nothing to send.
			return err
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if res.Warning != "" {
		s.logger.Printf("[%s] degraded answer: %s", reqID, res.Warning)
	}
	return c.JSON(http.StatusOK, res)
}
