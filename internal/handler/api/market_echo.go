package api

import (
	"net/http"
	"time"

	models "QuantLab/internal/domain/models"
	"QuantLab/internal/usecase"
	xhttp "QuantLab/pkg/http"
	xlogger "QuantLab/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// MarketHandler serves the derived market view over REST and WebSocket.
type MarketHandler struct {
	logger         *xlogger.Logger
	agg            *usecase.OverviewAggregator
	streamInterval time.Duration
	upgrader       websocket.Upgrader
}

func NewMarketHandler(logger *xlogger.Logger, agg *usecase.OverviewAggregator, streamInterval time.Duration) *MarketHandler {
	if streamInterval <= 0 {
		streamInterval = 10 * time.Second
	}
	return &MarketHandler{
		logger:         logger,
		agg:            agg,
		streamInterval: streamInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/market", h.Market)
	g.GET("/market/stream", h.Stream)
	e.GET("/healthz", h.Health)
}

// Market returns one full overview. The payload is flat so browser clients
// can consume it without unwrapping an envelope; errors still use the
// standard envelope.
func (h *MarketHandler) Market(c echo.Context) error {
	overview, err := h.agg.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("market overview error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("market data unavailable").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=10")
	return c.JSON(http.StatusOK, overview)
}

// Stream pushes overviews over a WebSocket: one immediately on connect,
// then one per interval until the client goes away.
func (h *MarketHandler) Stream(c echo.Context) error {
	req := &models.StreamRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	interval := h.streamInterval
	if req.Interval > 0 {
		interval = time.Duration(req.Interval) * time.Second
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// Drain control frames so close is noticed between pushes.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, rerr := conn.ReadMessage(); rerr != nil {
				return
			}
		}
	}()

	if err := h.push(c, conn); err != nil {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case <-ticker.C:
			if err := h.push(c, conn); err != nil {
				return nil
			}
		}
	}
}

func (h *MarketHandler) push(c echo.Context, conn *websocket.Conn) error {
	overview, err := h.agg.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("market stream overview error", xlogger.Error(err))
		return err
	}
	if err := conn.WriteJSON(overview); err != nil {
		h.logger.Debug("market stream write failed", xlogger.Error(err))
		return err
	}
	return nil
}

// Health reports liveness.
func (h *MarketHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
