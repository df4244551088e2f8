package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-finance-tracker/internal/config"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/service"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
	"github.com/pribylovaa/go-finance-tracker/internal/transport/http/middleware"
	"github.com/pribylovaa/go-finance-tracker/mocks"
)

func testAuthCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 168 * time.Hour,
		CookiePath:      "/api",
		CookieSecure:    true,
	}
}

func newHandlers(t *testing.T) (*Handlers, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := service.New(st, nil, testAuthCfg())
	return New(svc, testAuthCfg()), st, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func postJSON(h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginUser_OK_SetsCookies(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "test@example.com",
		PasswordHash: mustHashPW(t, "123"),
		Role:         models.RoleRegular,
	}
	st.EXPECT().UserByEmail(gomock.Any(), "test@example.com").Return(user, nil)
	st.EXPECT().UpdateRefreshToken(gomock.Any(), user.ID, gomock.Any()).Return(nil)

	rec := postJSON(h.LoginUser, "/api/auth/login", `{"email":"test@example.com","password":"123"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(rec, middleware.AccessCookie)
	refresh := cookieByName(rec, middleware.RefreshCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	require.True(t, access.HttpOnly)
	require.True(t, refresh.HttpOnly)
	require.Equal(t, "/api", access.Path)
	require.Equal(t, int(time.Hour.Seconds()), access.MaxAge)
	require.Equal(t, int((168 * time.Hour).Seconds()), refresh.MaxAge)

	// Токены продублированы в теле.
	body := decodeBody(t, rec)
	require.Equal(t, access.Value, body["access_token"])
	require.Equal(t, refresh.Value, body["refresh_token"])
}

func TestLoginUser_MissingFields(t *testing.T) {
	t.Parallel()

	h, _, ctrl := newHandlers(t)
	defer ctrl.Finish()

	rec := postJSON(h.LoginUser, "/api/auth/login", `{"email":"test@example.com"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "email and password are required", decodeBody(t, rec)["error"])
}

func TestLoginUser_EmptyFields(t *testing.T) {
	t.Parallel()

	h, _, ctrl := newHandlers(t)
	defer ctrl.Finish()

	rec := postJSON(h.LoginUser, "/api/auth/login", `{"email":"","password":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "email and password cannot be empty", decodeBody(t, rec)["error"])
}

func TestLoginUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	h, _, ctrl := newHandlers(t)
	defer ctrl.Finish()

	rec := postJSON(h.LoginUser, "/api/auth/login", `{"email":"not-an-email","password":"123"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid email format", decodeBody(t, rec)["error"])
}

func TestLoginUser_UnknownUser(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	rec := postJSON(h.LoginUser, "/api/auth/login", `{"email":"ghost@example.com","password":"123"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "user not found", decodeBody(t, rec)["error"])
}

func TestLoginUser_WrongPassword(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "test@example.com",
		PasswordHash: mustHashPW(t, "123"),
		Role:         models.RoleRegular,
	}
	st.EXPECT().UserByEmail(gomock.Any(), "test@example.com").Return(user, nil)

	rec := postJSON(h.LoginUser, "/api/auth/login", `{"email":"test@example.com","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "wrong credentials", decodeBody(t, rec)["error"])
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().UpdateRefreshToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	rec := postJSON(h.RegisterUser, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"123"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	// Регистрация тоже выставляет сессионные cookie.
	require.NotNil(t, cookieByName(rec, middleware.AccessCookie))
	require.NotNil(t, cookieByName(rec, middleware.RefreshCookie))

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "alice", user["username"])
	require.Equal(t, string(models.RoleRegular), user["role"])
	require.NotEmpty(t, body["access_token"])
}

func TestRegisterUser_Duplicate(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	rec := postJSON(h.RegisterUser, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"123"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "user already exists", decodeBody(t, rec)["error"])
}

func TestLogoutUser_OK_ClearsCookies(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Username: "alice", Email: "test@example.com"}
	st.EXPECT().UserByRefreshToken(gomock.Any(), "stored-refresh").Return(user, nil)
	st.EXPECT().UpdateRefreshToken(gomock.Any(), user.ID, "").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: "stored-refresh"})
	rec := httptest.NewRecorder()
	h.LogoutUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(rec, middleware.AccessCookie)
	refresh := cookieByName(rec, middleware.RefreshCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	require.Equal(t, -1, access.MaxAge)
	require.Equal(t, -1, refresh.MaxAge)
	require.Empty(t, access.Value)
	require.Empty(t, refresh.Value)
}

func TestLogoutUser_NoCookie(t *testing.T) {
	t.Parallel()

	h, _, ctrl := newHandlers(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.LogoutUser(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no refresh token", decodeBody(t, rec)["error"])
}

func TestLogoutUser_UnknownToken(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	st.EXPECT().UserByRefreshToken(gomock.Any(), "unknown").Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: "unknown"})
	rec := httptest.NewRecorder()
	h.LogoutUser(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "user not found", decodeBody(t, rec)["error"])
}

// Сбой хранилища при выходе — это 500, а не отказ «user not found».
func TestLogoutUser_StorageFailure(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	st.EXPECT().UserByRefreshToken(gomock.Any(), "stored-refresh").
		Return(nil, errors.New("connection reset"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: "stored-refresh"})
	rec := httptest.NewRecorder()
	h.LogoutUser(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal", decodeBody(t, rec)["error"])
}

// Контекст прокидывается в сторадж как есть.
func TestLoginUser_ContextPropagated(t *testing.T) {
	t.Parallel()

	h, st, ctrl := newHandlers(t)
	defer ctrl.Finish()

	type ctxKey struct{}
	st.EXPECT().UserByEmail(gomock.Any(), "test@example.com").DoAndReturn(
		func(ctx context.Context, _ string) (*models.User, error) {
			require.Equal(t, "marker", ctx.Value(ctxKey{}))
			return nil, storage.ErrNotFound
		})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"test@example.com","password":"123"}`))
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "marker"))
	rec := httptest.NewRecorder()
	h.LoginUser(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
