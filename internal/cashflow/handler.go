package cashflow

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/libreta-app/libreta/internal/shared"
)

const dayLayout = "2006-01-02"

// Handler manages the cash-flow endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers the cash-flow routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/summary", h.summary)
	r.Delete("/{id}", h.remove)
}

type expenseRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description" validate:"required,max=255"`
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return
	}
	entries, err := h.service.List(r.Context(), scope, filterFromQuery(r))
	if err != nil {
		h.logger.Error("list expenses", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if entries == nil {
		entries = []ExpenseEntry{}
	}
	shared.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Revisa los campos del gasto.")
		return
	}

	entry, err := h.service.Create(r.Context(), scope, ExpenseInput{
		Date:        parseDayOr(req.Date, time.Now()),
		Description: req.Description,
		Category:    Category(strings.ToUpper(strings.TrimSpace(req.Category))),
		Amount:      req.Amount,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			shared.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("create expense", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	shared.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return
	}
	q := r.URL.Query()
	summary, err := h.service.Summarize(r.Context(), scope,
		parseOptionalDay(q.Get("date_from")), parseOptionalDay(q.Get("date_to")))
	if err != nil {
		h.logger.Error("cashflow summary", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	shared.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}
	if err := h.service.Delete(r.Context(), scope, id); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			shared.RespondError(w, http.StatusNotFound, "Gasto no encontrado.")
		case errors.Is(err, shared.ErrForbidden):
			shared.RespondError(w, http.StatusForbidden, "No tienes permiso para este gasto.")
		default:
			h.logger.Error("delete expense", slog.Any("error", err))
			shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	f := Filter{}
	if c := strings.TrimSpace(q.Get("filter_category")); c != "" {
		f.Category = Category(strings.ToUpper(c))
	}
	f.DateFrom = parseOptionalDay(q.Get("date_from"))
	f.DateTo = parseOptionalDay(q.Get("date_to"))
	return f
}

func parseDayOr(s string, fallback time.Time) time.Time {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return fallback.Truncate(24 * time.Hour)
	}
	return t
}

func parseOptionalDay(s string) *time.Time {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
