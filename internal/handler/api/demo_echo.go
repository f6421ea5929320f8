package api

import (
	"net/http"

	"QuantLab/internal/timeline"
	xlogger "QuantLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DemoHandler exposes the scripted demo session: a looping 60 second phase
// sequence with one-shot narration cues, shared by every client.
type DemoHandler struct {
	logger  *xlogger.Logger
	session *timeline.Session
}

func NewDemoHandler(logger *xlogger.Logger) *DemoHandler {
	h := &DemoHandler{logger: logger}
	h.session = timeline.NewSession(timeline.AutoPlayOptions{
		AutoStart: true,
		OnPhaseChange: func(p timeline.Phase) {
			logger.Debug("demo phase change", xlogger.String("phase", string(p)))
		},
	}, nil, func(t timeline.Trigger) {
		logger.Debug("demo narration cue", xlogger.String("trigger", string(t)))
	})
	return h
}

func (h *DemoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/demo")
	g.GET("/session", h.Session)
	g.POST("/toggle", h.Toggle)
	g.POST("/reset", h.Reset)
}

// Session samples the demo timeline and returns its current state.
func (h *DemoHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.Sample())
}

// Toggle pauses or resumes the demo clock.
func (h *DemoHandler) Toggle(c echo.Context) error {
	h.session.Toggle()
	return c.JSON(http.StatusOK, h.session.Sample())
}

// Reset rewinds the demo to the start of the sequence.
func (h *DemoHandler) Reset(c echo.Context) error {
	h.session.Reset()
	return c.JSON(http.StatusOK, h.session.Sample())
}
