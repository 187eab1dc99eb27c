package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"pizza-pos/internal/logger"
	"pizza-pos/internal/models"
)

const requestIDKey = "request_id"

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes a single till session over HTTP. Requests are applied to the
// session one at a time, in arrival order.
type Handler struct {
	mu      sync.Mutex
	session *Session
	pinger  Pinger
	logger  *logger.Logger
}

// NewHandler creates a new order handler; pinger may be nil
func NewHandler(session *Session, pinger Pinger, log *logger.Logger) *Handler {
	return &Handler{
		session: session,
		pinger:  pinger,
		logger:  log,
	}
}

type addItemRequest struct {
	MenuIndex *int `json:"menu_index"`
	Quantity  *int `json:"quantity"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type addItemResponse struct {
	Added bool `json:"added"`
	OrderView
}

type checkoutResponse struct {
	TransactionID string         `json:"transaction_id"`
	Amount        string         `json:"amount"`
	Method        string         `json:"method"`
	Outcome       models.Outcome `json:"outcome"`
	Message       string         `json:"message"`
	View          OrderView      `json:"view"`
}

// SetupRoutes registers the till endpoints
func (h *Handler) SetupRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.withLogging())

	r.GET("/health", h.HealthCheck)
	r.GET("/menu", h.GetMenu)
	r.GET("/order", h.GetOrder)
	r.POST("/order/items", h.AddItem)
	r.DELETE("/order", h.ClearOrder)
	r.POST("/order/checkout", h.Checkout)

	return r
}

// GetMenu handles GET /menu
func (h *Handler) GetMenu(c *gin.Context) {
	h.mu.Lock()
	menu := h.session.Menu()
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"items": menu})
}

// GetOrder handles GET /order
func (h *Handler) GetOrder(c *gin.Context) {
	h.mu.Lock()
	view := h.session.View()
	h.mu.Unlock()

	c.JSON(http.StatusOK, view)
}

// AddItem handles POST /order/items. Missing selection or quantity below 1 is a
// no-op reported as added=false.
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	index, quantity := -1, 1
	if req.MenuIndex != nil {
		index = *req.MenuIndex
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	h.mu.Lock()
	added := h.session.AddItem(index, quantity)
	view := h.session.View()
	h.mu.Unlock()

	c.JSON(http.StatusOK, addItemResponse{Added: added, OrderView: view})
}

// ClearOrder handles DELETE /order
func (h *Handler) ClearOrder(c *gin.Context) {
	h.mu.Lock()
	h.session.Clear()
	view := h.session.View()
	h.mu.Unlock()

	c.JSON(http.StatusOK, view)
}

// Checkout handles POST /order/checkout
func (h *Handler) Checkout(c *gin.Context) {
	// An empty body means no method was chosen
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	method := models.ParsePaymentMethod(req.PaymentMethod)

	h.mu.Lock()
	result, err := h.session.Checkout(c.Request.Context(), method)
	view := h.session.View()
	h.mu.Unlock()

	if err != nil {
		h.logger.Error("checkout_failed", "Checkout failed", c.GetString(requestIDKey), err, nil)
		h.writeErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	tx := result.Transaction
	c.JSON(http.StatusOK, checkoutResponse{
		TransactionID: tx.ID(),
		Amount:        models.FormatMoney(tx.Amount()),
		Method:        tx.Method().Label(),
		Outcome:       result.Outcome,
		Message:       ResultMessage(result),
		View:          view,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
	}

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Error("health_check_failed", "Database ping failed", c.GetString(requestIDKey), err, nil)
			response["status"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": c.GetString(requestIDKey),
	})
}

// withLogging assigns a request id and logs each request
func (h *Handler) withLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      c.Request.Method,
				"path":        c.Request.URL.Path,
				"remote_addr": c.ClientIP(),
				"user_agent":  c.Request.UserAgent(),
			})

		c.Next()

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status()),
			requestID,
			map[string]interface{}{
				"method":      c.Request.Method,
				"path":        c.Request.URL.Path,
				"status_code": c.Writer.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}
