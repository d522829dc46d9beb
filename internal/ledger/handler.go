package ledger

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

// Handler manages the sales ledger endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers the ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/export.csv", h.exportCSV)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
	r.Post("/{id}/payment", h.recordPayment)
	r.Post("/{id}/mark-paid", h.markPaid)
}

type saleRequest struct {
	Date         string  `json:"date"`
	ClientID     *int64  `json:"client_id"`
	ClientName   string  `json:"client_name" validate:"required,max=120"`
	ProductName  string  `json:"product_name" validate:"required,max=120"`
	CostPerUnit  float64 `json:"cost_per_unit" validate:"gte=0"`
	PricePerUnit float64 `json:"price_per_unit" validate:"gte=0"`
	Quantity     int     `json:"quantity" validate:"omitempty,gte=1"`
	Status       string  `json:"status"`
	PaymentType  string  `json:"payment_type" validate:"omitempty,max=50"`
	AmountPaid   float64 `json:"amount_paid" validate:"gte=0"`
	DueDate      string  `json:"due_date"`
	Notes        string  `json:"notes" validate:"omitempty,max=500"`
}

type paymentRequest struct {
	AmountPaid float64 `json:"amount_paid" validate:"gte=0"`
}

type listResponse struct {
	Entries []SaleEntry `json:"entries"`
	Summary Summary     `json:"summary"`
}

func (r saleRequest) toInput() SaleInput {
	status := StatusPaid
	if r.Status != "" {
		status = Status(strings.ToUpper(strings.TrimSpace(r.Status)))
	}
	return SaleInput{
		Date:         parseDayOr(r.Date, time.Now()),
		ClientID:     r.ClientID,
		ClientName:   r.ClientName,
		ProductName:  r.ProductName,
		CostPerUnit:  r.CostPerUnit,
		PricePerUnit: r.PricePerUnit,
		Quantity:     r.Quantity,
		Status:       status,
		PaymentType:  r.PaymentType,
		AmountPaid:   r.AmountPaid,
		DueDate:      parseOptionalDay(r.DueDate),
		Notes:        r.Notes,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return
	}
	entries, summary, err := h.service.List(r.Context(), scope, filterFromQuery(r))
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if entries == nil {
		entries = []SaleEntry{}
	}
	shared.RespondJSON(w, http.StatusOK, listResponse{Entries: entries, Summary: summary})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return
	}
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Revisa los campos de la venta.")
		return
	}

	entry, err := h.service.Create(r.Context(), scope, req.toInput())
	if err != nil {
		h.respondWriteError(w, "create sale", err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	scope, id, ok := h.scopeAndID(w, r)
	if !ok {
		return
	}
	entry, err := h.service.Get(r.Context(), scope, id)
	if err != nil {
		h.respondWriteError(w, "get sale", err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	scope, id, ok := h.scopeAndID(w, r)
	if !ok {
		return
	}
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Revisa los campos de la venta.")
		return
	}

	entry, err := h.service.Update(r.Context(), scope, id, req.toInput())
	if err != nil {
		h.respondWriteError(w, "update sale", err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	scope, id, ok := h.scopeAndID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), scope, id); err != nil {
		h.respondWriteError(w, "delete sale", err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	scope, id, ok := h.scopeAndID(w, r)
	if !ok {
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "El monto abonado no puede ser negativo.")
		return
	}

	entry, err := h.service.RecordPayment(r.Context(), scope, id, req.AmountPaid)
	if err != nil {
		h.respondWriteError(w, "record payment", err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	scope, id, ok := h.scopeAndID(w, r)
	if !ok {
		return
	}
	entry, err := h.service.MarkPaid(r.Context(), scope, id)
	if err != nil {
		h.respondWriteError(w, "mark paid", err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return
	}
	entries, _, err := h.service.List(r.Context(), scope, filterFromQuery(r))
	if err != nil {
		h.logger.Error("export sales", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ventas.csv"`)
	if err := WriteCSV(w, entries); err != nil {
		h.logger.Error("write sales csv", slog.Any("error", err))
	}
}

func (h *Handler) scopeAndID(w http.ResponseWriter, r *http.Request) (shared.Scope, int64, bool) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return shared.Scope{}, 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Identificador inválido.")
		return shared.Scope{}, 0, false
	}
	return scope, id, true
}

func (h *Handler) respondWriteError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		shared.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		shared.RespondError(w, http.StatusNotFound, "Venta no encontrada.")
	case errors.Is(err, shared.ErrForbidden):
		shared.RespondError(w, http.StatusForbidden, "No tienes permiso para esta venta.")
	default:
		h.logger.Error(op, slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// filterFromQuery builds a listing filter from the query string. Dates
// that fail to parse are ignored rather than rejected.
func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	f := Filter{ClientName: strings.TrimSpace(q.Get("filter_client"))}
	if s := strings.TrimSpace(q.Get("filter_status")); s != "" {
		f.Status = Status(strings.ToUpper(s))
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
