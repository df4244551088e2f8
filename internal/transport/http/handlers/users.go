package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListUsers — GET /users (только Admin).
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetUser — GET /users/{username} (только сам пользователь).
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.Service.UserByUsername(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}
