package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
)

type createCategoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func categoryToResponse(c *models.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// CreateCategory — POST /categories.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in createCategoryRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), userID, in.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryToResponse(category))
}

// ListCategories — GET /categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categories, err := h.Service.CategoriesByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, categoryToResponse(&categories[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// DeleteCategory — DELETE /categories/{id}.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
