package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/meter"
)

const pingInterval = 30 * time.Second

// MeterHandler streams score meter frames over a WebSocket.
type MeterHandler struct {
	logger         *slog.Logger
	upgrader       websocket.Upgrader
	allowedOrigins []string
	options        []meter.Option
}

// NewMeterHandler builds the handler. With no allowed origins only
// same-host browser origins may connect.
func NewMeterHandler(logger *slog.Logger, allowedOrigins []string, opts ...meter.Option) *MeterHandler {
	h := &MeterHandler{
		logger:         logger,
		allowedOrigins: allowedOrigins,
		options:        opts,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *MeterHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(h.allowedOrigins) == 0 {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// meterMessage restarts the animation on an open connection.
type meterMessage struct {
	Score *float64 `json:"score"`
}

func parseScore(raw string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q", raw)
	}
	return checkScore(score)
}

func checkScore(score float64) (float64, error) {
	if math.IsNaN(score) || score < meter.MinScore || score > meter.MaxScore {
		return 0, fmt.Errorf("score %v out of range", score)
	}
	return score, nil
}

// Stream upgrades the connection and animates ?score=N. The client may send
// {"score": N} at any time to restart with a new target.
func (h *MeterHandler) Stream(c *gin.Context) {
	score, err := parseScore(c.Query("score"))
	if err != nil {
		BadRequest(c, "Score must be a number between 0 and 100")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	log := middleware.LoggerFromContext(c)

	ctx, cancel := context.WithCancel(c.Request.Context())
	frames := make(chan meter.Frame, 16)
	opts := append([]meter.Option{meter.WithFrameFunc(func(f meter.Frame) {
		offerFrame(frames, f)
	})}, h.options...)
	m := meter.New(opts...)
	defer func() {
		cancel()
		m.Stop()
	}()

	restarts := make(chan float64)
	errCh := make(chan error, 1)
	go h.readLoop(ctx, conn, restarts, errCh, cancel)

	m.Start(ctx, score)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			log.Info("meter connection closed", slog.Any("error", err))
			return
		case next := <-restarts:
			m.Start(ctx, next)
		case frame := <-frames:
			if err := conn.WriteJSON(frame); err != nil {
				log.Info("write meter frame failed", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), deadline); err != nil {
				log.Info("write ping failed", slog.Any("error", err))
				return
			}
		}
	}
}

// readLoop only reads; every write happens in Stream.
func (h *MeterHandler) readLoop(
	ctx context.Context,
	conn *websocket.Conn,
	restarts chan<- float64,
	errCh chan<- error,
	cancel context.CancelFunc,
) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			errCh <- fmt.Errorf("read message: %w", err)
			cancel()
			return
		}

		var msg meterMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.Score == nil {
			writeClose(conn, websocket.CloseUnsupportedData, "expected {\"score\": number}")
			errCh <- fmt.Errorf("invalid meter message")
			cancel()
			return
		}
		score, err := checkScore(*msg.Score)
		if err != nil {
			writeClose(conn, websocket.CloseUnsupportedData, "score must be between 0 and 100")
			errCh <- err
			cancel()
			return
		}

		select {
		case restarts <- score:
		case <-ctx.Done():
			return
		}
	}
}

// offerFrame never blocks the animation: when the writer falls behind, the
// oldest queued frame is dropped. The settled frame is always the last one
// offered, so it is never lost.
func offerFrame(frames chan meter.Frame, f meter.Frame) {
	for {
		select {
		case frames <- f:
			return
		default:
		}
		select {
		case <-frames:
		default:
		}
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	deadline := time.Now().Add(5 * time.Second)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
}
