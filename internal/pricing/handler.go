package pricing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/libreta-app/libreta/internal/shared"
)

// Handler manages the price calculator endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers pricing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/quote", h.quote)
}

type quoteRequest struct {
	Mode          string  `json:"mode" validate:"omitempty,oneof=price_from_cost cost_from_price"`
	Cost          float64 `json:"cost"`
	Price         float64 `json:"price"`
	Margin        float64 `json:"margin"`
	Quantity      int     `json:"quantity"`
	ProductName   string  `json:"product_name"`
	SaveToCatalog bool    `json:"save_to_catalog"`
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Modo de cálculo inválido.")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	quote, err := h.service.Calculate(r.Context(), Request{
		Mode:          Mode(req.Mode),
		Cost:          req.Cost,
		Price:         req.Price,
		MarginPercent: req.Margin,
		Quantity:      req.Quantity,
		ProductName:   req.ProductName,
		SaveToCatalog: req.SaveToCatalog,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			shared.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("pricing quote", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	shared.RespondJSON(w, http.StatusOK, quote)
}
