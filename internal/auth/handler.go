package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/libreta-app/libreta/internal/shared"
)

// Handler wires HTTP endpoints for authentication and user management.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		sessionManager: sessions,
		validator:      validator.New(),
	}
}

// MountRoutes registers login/logout routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

// MountUserRoutes registers admin-only user management routes.
func (h *Handler) MountUserRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Post("/", h.createUser)
	r.Delete("/{id}", h.deleteUser)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Usuario y contraseña son obligatorios.")
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		shared.RespondError(w, http.StatusUnauthorized, "Usuario o contraseña inválidos.")
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	sess.SetUser(user.ID, user.IsAdmin)

	shared.RespondJSON(w, http.StatusOK, loginResponse{ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		h.sessionManager.Destroy(sess)
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	shared.RespondJSON(w, http.StatusOK, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Usuario y contraseña son obligatorios.")
		return
	}

	user, err := h.service.CreateUser(r.Context(), CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			shared.RespondError(w, http.StatusConflict, "Ya existe un usuario con ese nombre.")
		case errors.Is(err, ErrValidation):
			shared.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("create user", slog.Any("error", err))
			shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}
	shared.RespondJSON(w, http.StatusCreated, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}
	scope, _ := shared.ScopeFromContext(r.Context())

	if err := h.service.DeleteUser(r.Context(), scope, id); err != nil {
		switch {
		case errors.Is(err, ErrSelfDelete):
			shared.RespondError(w, http.StatusBadRequest, "No puedes eliminar tu propio usuario.")
		case errors.Is(err, shared.ErrNotFound):
			shared.RespondError(w, http.StatusNotFound, "Usuario no encontrado.")
		default:
			h.logger.Error("delete user", slog.Any("error", err))
			shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
