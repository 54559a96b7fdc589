package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brewkit/brewkit/internal/catalog"
	"github.com/brewkit/brewkit/internal/chat"
	"github.com/brewkit/brewkit/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// ChatSender abstracts the orchestrator for the HTTP layer.
type ChatSender interface {
	Send(ctx context.Context, sessionID, message string) (string, error)
}

// OrderLister abstracts the order service for the listing endpoint.
type OrderLister interface {
	RecentOrders(limit int) ([]storage.Order, error)
	CountOrders() (int, error)
}

// NewHandler returns the brewkit REST API handler.
func NewHandler(sender ChatSender, lister OrderLister, menu []catalog.Item) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Get("/v1/menu", handleMenu(menu))
	r.Get("/v1/orders", handleOrders(lister))
	r.Post("/v1/chat", handleChat(sender))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleMenu(menu []catalog.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"items": menu,
		})
	}
}

// OrdersResponse is the reply of GET /v1/orders.
type OrdersResponse struct {
	Orders []storage.Order `json:"orders"`
	Total  int             `json:"total"`
}

func handleOrders(lister OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "limit must be a positive integer, got %q", raw)
				return
			}
			limit = n
		}

		recent, err := lister.RecentOrders(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing orders: %v", err)
			return
		}
		total, err := lister.CountOrders()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "counting orders: %v", err)
			return
		}
		if recent == nil {
			recent = []storage.Order{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(OrdersResponse{
			Orders: recent,
			Total:  total,
		})
	}
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse is the reply of POST /v1/chat.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func handleChat(sender ChatSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required and must not be empty")
			return
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		reply, err := sender.Send(r.Context(), sessionID, req.Message)
		if err != nil {
			if errors.Is(err, chat.ErrToolDepthExceeded) {
				httpError(w, http.StatusBadGateway, "tool_loop_error", "conversation exceeded the tool call limit")
				return
			}
			httpError(w, http.StatusBadGateway, "api_error", "chat failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatResponse{
			SessionID: sessionID,
			Reply:     reply,
		})
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
