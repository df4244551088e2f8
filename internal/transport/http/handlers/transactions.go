package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/service"
)

// transactionRequest — тело создания/обновления транзакции.
// Сумма задаётся в минорных единицах валюты (копейки, центы).
type transactionRequest struct {
	CategoryID string    `json:"category_id,omitempty"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at,omitempty"`
}

type transactionResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id,omitempty"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func transactionToResponse(t *models.Transaction) transactionResponse {
	out := transactionResponse{
		ID:         t.ID.String(),
		UserID:     t.UserID.String(),
		Amount:     t.Amount,
		Currency:   t.Currency,
		Note:       t.Note,
		OccurredAt: t.OccurredAt,
	}
	if t.CategoryID != uuid.Nil {
		out.CategoryID = t.CategoryID.String()
	}
	return out
}

func (in transactionRequest) toParams() (service.CreateTransactionParams, error) {
	params := service.CreateTransactionParams{
		Amount:     in.Amount,
		Currency:   in.Currency,
		Note:       in.Note,
		OccurredAt: in.OccurredAt,
	}

	if in.CategoryID != "" {
		id, err := uuid.Parse(in.CategoryID)
		if err != nil {
			return service.CreateTransactionParams{}, err
		}
		params.CategoryID = id
	}

	return params, nil
}

// CreateTransaction — POST /transactions.
func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in transactionRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := in.toParams()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	tx, err := h.Service.CreateTransaction(r.Context(), userID, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transactionToResponse(tx))
}

// ListTransactions — GET /transactions.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	txs, err := h.Service.TransactionsByUser(r.Context(), userID)
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

// UpdateTransaction — PUT /transactions/{id}.
func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var in transactionRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := in.toParams()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	tx, err := h.Service.UpdateTransaction(r.Context(), userID, id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionToResponse(tx))
}

// DeleteTransaction — DELETE /transactions/{id}.
func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.Service.DeleteTransaction(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
