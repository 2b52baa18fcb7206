// AngelaMos | 2026
// users.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/campaignhq/campaign-backend/internal/core"
	"github.com/campaignhq/campaign-backend/internal/validation"
)

// UsersHandler exposes the user-lifecycle surface: inviting, listing,
// approving and rejecting. It lives next to the session handler because
// every operation is authorized against the current-session slot.
type UsersHandler struct {
	manager *Manager
}

func NewUsersHandler(manager *Manager) *UsersHandler {
	return &UsersHandler{manager: manager}
}

func (h *UsersHandler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.CreateUser)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.GetAllUsers)
			r.Get("/pending", h.GetPendingUsers)
			r.Post("/{userID}/approve", h.ApproveUser)
			r.Delete("/{userID}", h.RejectUser)
		})
	})
}

// CreateUser invites a new user. Who may invite whom is decided by the
// role matrix, so this route is open to any authenticated caller and the
// manager rejects the rest.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	result, err := h.manager.CreateUser(r.Context(), req)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			core.BadRequest(w, strings.Join(validationErr.Violations, "; "))
			return
		}
		if errors.Is(err, ErrForbidden) {
			core.Forbidden(w, "You don't have permission to create this user type")
			return
		}
		if errors.Is(err, ErrDuplicateEmail) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, result)
}

func (h *UsersHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.manager.GetAllUsers())
}

func (h *UsersHandler) GetPendingUsers(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.manager.GetPendingUsers())
}

func (h *UsersHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		core.BadRequest(w, "user ID required")
		return
	}

	if err := h.manager.ApproveUser(r.Context(), userID); err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *UsersHandler) RejectUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		core.BadRequest(w, "user ID required")
		return
	}

	if err := h.manager.RejectUser(r.Context(), userID); err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *UsersHandler) writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	default:
		core.InternalServerError(w, err)
	}
}
