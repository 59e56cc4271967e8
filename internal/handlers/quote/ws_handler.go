// internal/handlers/quote/ws_handler.go
package quote

import (
	"net/http"
	"strings"
	"time"

	"fitlife-service/internal/domain/purchase"
	"fitlife-service/internal/pkg/jwt"
	"fitlife-service/internal/pkg/response"
	service "fitlife-service/internal/service/checkout"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the web client domains are fixed
		return true
	},
}

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// quoteResult is one message on the live-quote channel. Seq echoes the
// client's sequence number so it can drop responses superseded by a newer
// request (last-write-wins).
type quoteResult struct {
	Seq   int64       `json:"seq"`
	Quote interface{} `json:"quote,omitempty"`
	Error string      `json:"error,omitempty"`
}

type quoteRequest struct {
	Seq int64 `json:"seq"`
	purchase.QuoteRequest
}

// QuoteStreamHandler serves live price quotes over a websocket. Each client
// message is an independent quote request triggered by a UI change; every
// computation is stateless, so no coordination is needed between messages.
type QuoteStreamHandler struct {
	checkoutService *service.CheckoutService
	verifier        *jwt.Verifier
	logger          *zap.Logger
}

func NewQuoteStreamHandler(checkoutService *service.CheckoutService, verifier *jwt.Verifier, logger *zap.Logger) *QuoteStreamHandler {
	return &QuoteStreamHandler{
		checkoutService: checkoutService,
		verifier:        verifier,
		logger:          logger,
	}
}

// HandleConnection upgrades the request and serves quotes until the client
// disconnects
func (h *QuoteStreamHandler) HandleConnection(c *gin.Context) {
	token := h.extractToken(c)
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "missing authentication token", nil)
		return
	}

	claims, err := h.verifier.Verify(token)
	if err != nil {
		h.logger.Warn("websocket authentication failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		response.Error(c, http.StatusUnauthorized, "authentication failed", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}
	defer conn.Close()

	h.logger.Info("quote stream connected", zap.Int64("user_id", claims.UserID))

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req quoteRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("quote stream read error", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		result := quoteResult{Seq: req.Seq}
		calc, err := h.checkoutService.Quote(c.Request.Context(), claims.UserID, &req.QuoteRequest)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Quote = calc
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(result); err != nil {
			h.logger.Warn("quote stream write error", zap.Error(err))
			return
		}
	}
}

// extractToken extracts the token from query param or Authorization header
func (h *QuoteStreamHandler) extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return ""
}
