// Package handlers содержит REST-обработчики finance-service.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/config"
	"github.com/pribylovaa/go-finance-tracker/internal/service"
	"github.com/pribylovaa/go-finance-tracker/internal/transport/http/middleware"
)

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	Service *service.Service
	Auth    config.AuthConfig
}

func New(svc *service.Service, auth config.AuthConfig) *Handlers {
	return &Handlers{Service: svc, Auth: auth}
}

func (h *Handlers) cookieOpts() middleware.CookieOptions {
	return middleware.CookieOptions{
		Path:   h.Auth.CookiePath,
		Secure: h.Auth.CookieSecure,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeError — ответ с причиной отказа в формате {"error": "..."}.
func writeError(w http.ResponseWriter, status int, cause string) {
	writeJSON(w, status, map[string]string{"error": cause})
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// writeServiceError мапит сентинельные ошибки сервиса на HTTP-ответ.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCredentials):
		writeError(w, http.StatusBadRequest, "email and password cannot be empty")
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "invalid email format")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "user not found")
	case errors.Is(err, service.ErrWrongCredentials):
		writeError(w, http.StatusUnauthorized, "wrong credentials")
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, service.ErrGroupNotFound):
		writeError(w, http.StatusBadRequest, "Group does not exist")
	case errors.Is(err, service.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid argument")
	default:
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// subjectID достаёт uuid пользователя из claims в контексте запроса.
func subjectID(r *http.Request) (uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
