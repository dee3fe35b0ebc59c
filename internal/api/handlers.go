package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/username/tool-rental/internal/rental"
)

// --- Request / Response DTOs ---

// CheckoutRequest is the body of POST /checkout
type CheckoutRequest struct {
	ToolCode        string `json:"tool_code"`
	RentalDays      int    `json:"rental_days"`
	DiscountPercent int    `json:"discount_percent"`
	CheckoutDate    string `json:"checkout_date"` // MM/DD/YY
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Handler struct & constructor ---

// Handler serves the rental endpoints
type Handler struct {
	calc   *rental.Calculator
	logger *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(calc *rental.Calculator, logger *zap.Logger) *Handler {
	return &Handler{calc: calc, logger: logger}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}

// isClientError reports whether err was caused by the checkout input
func isClientError(err error) bool {
	var dateErr *rental.DateParseError
	return errors.Is(err, rental.ErrInvalidArgument) || errors.As(err, &dateErr)
}

// --- Handlers ---

// Checkout handles POST /checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	agreement, err := h.calc.Checkout(req.ToolCode, req.RentalDays, req.DiscountPercent, req.CheckoutDate)
	if err != nil {
		if isClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Checkout failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, agreement)
}

// ListTools handles GET /tools
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.calc.GetCatalog().List())
}

// GetTool handles GET /tools/{code}
func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))

	tool, ok := h.calc.GetCatalog().FindByCode(code)
	if !ok {
		writeError(w, http.StatusNotFound, "tool "+code+" does not exist")
		return
	}

	writeJSON(w, http.StatusOK, tool)
}
