// Package server is the thin HTTP surface over the sales core. Routing and
// JSON shaping only; all behavior lives in checkout and lifecycle.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/musika/salescore/internal/checkout"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/lifecycle"
)

type Server struct {
	sales     *checkout.Service
	lifecycle *lifecycle.Manager
	logger    *slog.Logger
}

func New(sales *checkout.Service, lc *lifecycle.Manager, logger *slog.Logger) *Server {
	return &Server{sales: sales, lifecycle: lc, logger: logger}
}

// Router builds the chi mux for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sales", s.handleCreateSale)
		r.Post("/sales/{transactionID}/confirm", s.handleConfirm)
		r.Post("/sales/{transactionID}/cancel", s.handleCancel)
		r.Get("/price", s.handlePriceInquiry)
	})
	return r
}

type createSaleRequest struct {
	Message      string `json:"message"`
	UserID       string `json:"user_id"`
	StoreID      string `json:"store_id"`
	CustomerName string `json:"customer_name,omitempty"`
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" || req.UserID == "" || req.StoreID == "" {
		s.respondError(w, http.StatusBadRequest, "message, user_id and store_id are required")
		return
	}

	result, err := s.sales.ParseAndPrice(r.Context(), req.Message, req.UserID, req.StoreID, req.CustomerName)
	if err != nil {
		s.logger.Error("sale processing failed", "user_id", req.UserID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "sale processing failed")
		return
	}
	status := http.StatusCreated
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	s.respondJSON(w, status, result)
}

type lifecycleRequest struct {
	UserID  string `json:"user_id"`
	StoreID string `json:"store_id"`
}

type lifecycleResponse struct {
	Success bool        `json:"success"`
	Status  string      `json:"status,omitempty"`
	Receipt interface{} `json:"receipt,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s.handleLifecycle(w, r, lifecycle.ActionConfirm)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.handleLifecycle(w, r, lifecycle.ActionCancel)
}

func (s *Server) handleLifecycle(w http.ResponseWriter, r *http.Request, action lifecycle.Action) {
	txID := chi.URLParam(r, "transactionID")
	var req lifecycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.StoreID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id and store_id are required")
		return
	}

	receipt, err := s.lifecycle.ConfirmOrCancel(r.Context(), txID, req.UserID, req.StoreID, action)
	if err != nil {
		s.logger.Warn("lifecycle action failed", "tx_id", txID, "action", action, "error", err)
		s.respondJSON(w, common.HTTPStatus(err), lifecycleResponse{Error: err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, lifecycleResponse{
		Success: true,
		Status:  string(receipt.Status),
		Receipt: receipt,
	})
}

func (s *Server) handlePriceInquiry(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	storeID := r.URL.Query().Get("store_id")
	if query == "" || storeID == "" {
		s.respondError(w, http.StatusBadRequest, "q and store_id are required")
		return
	}

	info, suggestions, err := s.sales.PriceInquiry(r.Context(), query, storeID)
	if err != nil {
		resp := map[string]interface{}{"error": err.Error()}
		if len(suggestions) > 0 {
			resp["suggestions"] = suggestions
		}
		status := common.HTTPStatus(err)
		if errors.Is(err, common.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.respondJSON(w, status, resp)
		return
	}
	s.respondJSON(w, http.StatusOK, info)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
