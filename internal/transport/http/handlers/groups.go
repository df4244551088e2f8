package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/service"
	"github.com/pribylovaa/go-finance-tracker/internal/transport/http/middleware"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type groupMemberRequest struct {
	Email string `json:"email"`
}

type groupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func groupToResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID.String(),
		Name:      g.Name,
		Members:   g.MemberEmails(),
		CreatedAt: g.CreatedAt,
	}
}

// CreateGroup — POST /groups. Создатель становится первым участником.
func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in createGroupRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.Service.CreateGroup(r.Context(), in.Name, claims)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, groupToResponse(group))
}

// GetGroup — GET /groups/{name} (только участники).
func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.Service.GroupByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, groupToResponse(group))
}

// GroupTransactions — GET /groups/{name}/transactions (только участники).
func (h *Handlers) GroupTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Service.GroupTransactions(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, transactionToResponse(&txs[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// AddGroupMember — POST /groups/{name}/members (только участники).
func (h *Handlers) AddGroupMember(w http.ResponseWriter, r *http.Request) {
	var in groupMemberRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AddGroupMember(r.Context(), chi.URLParam(r, "name"), in.Email); err != nil {
		// Незарегистрированный email — ошибка запроса, а не аутентификации.
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusBadRequest, "user not found")
			return
		}

		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "member added"})
}

// RemoveGroupMember — DELETE /groups/{name}/members (только участники).
func (h *Handlers) RemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	var in groupMemberRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.RemoveGroupMember(r.Context(), chi.URLParam(r, "name"), in.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "member removed"})
}

// DeleteGroup — DELETE /groups/{name} (только Admin).
func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteGroup(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
