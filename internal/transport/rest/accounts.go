package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexanderramin/parley/internal/app"
	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/domain"
)

// AccountHandler serves the /api/accounts CRUD routes. Responses never
// carry a password.
type AccountHandler struct {
	accounts app.AccountUseCase
	log      *slog.Logger
}

func NewAccountHandler(accounts app.AccountUseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, log: logger.With("handler", "accounts")}
}

type createAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type updateAccountRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "Error fetching accounts", "")
		return
	}
	writeData(w, http.StatusOK, contract.NewAccountViewsFor(accounts))
}

// Create handles POST /api/accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Email, password, and name are required")
		return
	}

	acc, err := h.accounts.Create(r.Context(), contract.NewAccount{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		h.fail(w, r, err, "Error creating account", "Account with this email already exists")
		return
	}
	writeData(w, http.StatusCreated, contract.NewAccountViewFor(acc))
}

// Update handles PUT /api/accounts/{id}.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changes := contract.AccountChanges{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		changes.Role = &role
	}

	acc, err := h.accounts.UpdateByID(r.Context(), r.PathValue("id"), changes)
	if err != nil {
		h.fail(w, r, err, "Error updating account", "Email already exists")
		return
	}
	writeData(w, http.StatusOK, contract.NewAccountViewFor(acc))
}

// Delete handles DELETE /api/accounts/{id}.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accounts.DeleteByID(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err, "Error deleting account", "")
		return
	}
	writeMessage(w, "Account deleted successfully")
}

// ByEmail handles GET /api/accounts/email/{email}.
func (h *AccountHandler) ByEmail(w http.ResponseWriter, r *http.Request) {
	acc, err := h.accounts.FindByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		h.fail(w, r, err, "Error fetching account", "")
		return
	}
	writeData(w, http.StatusOK, contract.NewAccountViewFor(acc))
}

func (h *AccountHandler) fail(w http.ResponseWriter, r *http.Request, err error, fallback, duplicate string) {
	status, known := statusFor(err)
	switch {
	case status == http.StatusNotFound:
		writeError(w, status, "Account not found")
	case errors.Is(err, domain.ErrAlreadyExists) && duplicate != "":
		writeError(w, status, duplicate)
	case known:
		writeError(w, status, validationMessage(err, fallback))
	default:
		h.log.ErrorContext(r.Context(), fallback, slog.String("error", err.Error()))
		writeError(w, status, fallback)
	}
}
