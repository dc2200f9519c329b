package http

import (
	"net/http"

	"soldo/internal/domain/user"
	"soldo/internal/shared/apperror"
	"soldo/internal/shared/middleware"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// HandleMe returns the authenticated user's profile.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, apperror.Unauthorized("Invalid or expired token"))
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// requireUser pulls the authenticated user id out of the request context.
// The auth middleware guarantees it for protected routes; a miss means the
// route was wired without it.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, apperror.Unauthorized("Invalid or expired token"))
		return "", false
	}
	return userID, true
}
