package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/go-finance-tracker/internal/models"
	logctx "github.com/pribylovaa/go-finance-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-finance-tracker/internal/pkg/redact"
	"github.com/pribylovaa/go-finance-tracker/internal/service"
	"github.com/pribylovaa/go-finance-tracker/internal/transport/http/middleware"
)

// registerRequest — тело запроса регистрации.
type registerRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// loginRequest — тело запроса входа. Указатели различают
// отсутствующее поле и пустую строку: причины отказа разные.
type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// userResponse — представление пользователя в ответах API.
type userResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// loginResponse — ответ на вход: пользователь и пара токенов.
// Токены дублируются в теле для клиентов без cookie-jar;
// основной канал доставки — HttpOnly cookie.
type loginResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func userToResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterUser — POST /auth/register.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if in.Username == nil || in.Email == nil || in.Password == nil {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, pair, err := h.Service.RegisterUser(r.Context(), *in.Username, *in.Email, *in.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	opts := h.cookieOpts()
	middleware.SetTokenCookie(w, opts, middleware.AccessCookie, pair.AccessToken, h.Auth.AccessTokenTTL)
	middleware.SetTokenCookie(w, opts, middleware.RefreshCookie, pair.RefreshToken, h.Auth.RefreshTokenTTL)

	logctx.From(r.Context()).Info("user registered",
		slog.String("email", redact.Email(user.Email)),
	)

	writeJSON(w, http.StatusCreated, loginResponse{
		User:         userToResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// LoginUser — POST /auth/login.
// Успешный вход выставляет HttpOnly cookie accessToken/refreshToken.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if in.Email == nil || in.Password == nil {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, pair, err := h.Service.LoginUser(r.Context(), *in.Email, *in.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	opts := h.cookieOpts()
	middleware.SetTokenCookie(w, opts, middleware.AccessCookie, pair.AccessToken, h.Auth.AccessTokenTTL)
	middleware.SetTokenCookie(w, opts, middleware.RefreshCookie, pair.RefreshToken, h.Auth.RefreshTokenTTL)

	logctx.From(r.Context()).Info("user logged in",
		slog.String("email", redact.Email(user.Email)),
	)

	writeJSON(w, http.StatusOK, loginResponse{
		User:         userToResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// LogoutUser — POST /auth/logout.
// Сессия снимается по значению refresh-токена без криптопроверки:
// выход должен работать и для просроченного токена. Отсутствующий
// cookie или неизвестный токен — 400.
func (h *Handlers) LogoutUser(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.RefreshCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusBadRequest, "no refresh token")
		return
	}

	if err := h.Service.LogoutUser(r.Context(), cookie.Value); err != nil {
		// Неизвестный токен — ошибка клиента; сбой хранилища — наш.
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrNoRefreshToken) {
			logctx.From(r.Context()).Info("logout rejected",
				slog.String("refresh_token", redact.Anchor(cookie.Value)),
			)
			writeError(w, http.StatusBadRequest, "user not found")
			return
		}

		writeServiceError(w, err)
		return
	}

	opts := h.cookieOpts()
	middleware.ClearTokenCookie(w, opts, middleware.AccessCookie)
	middleware.ClearTokenCookie(w, opts, middleware.RefreshCookie)

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
