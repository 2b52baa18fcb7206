// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/campaignhq/campaign-backend/internal/core"
	"github.com/campaignhq/campaign-backend/internal/user"
	"github.com/campaignhq/campaign-backend/internal/validation"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Get("/validate-token", h.ValidateToken)
		r.Post("/complete-registration", h.CompleteRegistration)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
			r.Post("/logout", h.Logout)
		})
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed-in user plus the bearer token HTTP
// clients present on subsequent requests.
type LoginResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.manager.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeLoginError(w, err)
		return
	}

	core.OK(w, LoginResponse{
		User:  *resp,
		Token: h.manager.SessionToken(),
	})
}

func (h *Handler) writeLoginError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		core.BadRequest(w, strings.Join(validationErr.Violations, "; "))
		return
	}

	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		core.JSONError(w, core.NewAppError(
			err,
			rateErr.Error(),
			http.StatusTooManyRequests,
			"RATE_LIMITED",
		))
		return
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		core.JSONError(w, core.UnauthorizedError("Invalid email or password"))
	case errors.Is(err, ErrAccountLocked):
		core.JSONError(w, core.NewAppError(
			err,
			"Account is temporarily locked due to too many failed attempts",
			http.StatusForbidden,
			"ACCOUNT_LOCKED",
		))
	case errors.Is(err, ErrRegistrationIncomplete):
		core.JSONError(w, core.NewAppError(
			err,
			"Please complete your registration first",
			http.StatusForbidden,
			"REGISTRATION_INCOMPLETE",
		))
	case errors.Is(err, ErrPendingApproval):
		core.JSONError(w, core.NewAppError(
			err,
			"Your account is pending approval",
			http.StatusForbidden,
			"PENDING_APPROVAL",
		))
	case errors.Is(err, ErrAccountDeactivated):
		core.JSONError(w, core.NewAppError(
			err,
			"Your account has been deactivated",
			http.StatusForbidden,
			"ACCOUNT_DEACTIVATED",
		))
	default:
		core.InternalServerError(w, err)
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Logout(); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	current := h.manager.CurrentUser()
	if current == nil {
		core.Unauthorized(w, "")
		return
	}

	core.OK(w, current)
}

// ValidateToken resolves a registration token to its invitee. Expired and
// unknown tokens both come back 404.
func (h *Handler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		core.BadRequest(w, "token is required")
		return
	}

	invitee := h.manager.ValidateToken(token)
	if invitee == nil {
		core.NotFound(w, "registration token")
		return
	}

	core.OK(w, invitee)
}

func (h *Handler) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	var req validation.RegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.manager.CompleteRegistration(r.Context(), req); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			core.BadRequest(w, strings.Join(validationErr.Violations, "; "))
			return
		}
		if errors.Is(err, ErrInvalidToken) {
			core.JSONError(w, core.TokenInvalidError())
			return
		}
		if errors.Is(err, ErrTokenExpired) {
			core.JSONError(w, core.TokenExpiredError())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
