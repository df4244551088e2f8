package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/service"
)

// Authorizer проверяет пару токенов против capability.
// Реализуется сервисным слоем; интерфейс нужен для тестов.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken, refreshToken string, cap service.Capability) (service.Verdict, error)
}

type claimsKey struct{}

// ClaimsFrom возвращает claims авторизованного пользователя из контекста.
func ClaimsFrom(ctx context.Context) (models.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(models.Claims)
	return c, ok
}

// AuthzOptions — зависимости авторизационных мидлваров.
type AuthzOptions struct {
	Authorizer Authorizer
	Cookies    CookieOptions
	// AccessTTL — срок жизни cookie перевыпущенного access-токена.
	AccessTTL time.Duration
}

// RequireAuth пускает запрос при валидной паре токенов.
func RequireAuth(opts AuthzOptions) Middleware {
	return requireCapability(opts, func(*http.Request) (service.Capability, bool) {
		return service.Plain(), true
	})
}

// RequireSameUser пускает запрос, только если username из токена
// совпадает с URL-параметром {username}. Пустой параметр — отказ
// "Unauthorized" до обращения к токенам.
func RequireSameUser(opts AuthzOptions) Middleware {
	return requireCapability(opts, func(r *http.Request) (service.Capability, bool) {
		username := chi.URLParam(r, "username")
		if username == "" {
			return service.Capability{}, false
		}
		return service.SameUser(username), true
	})
}

// RequireAdmin пускает запрос только с ролью Admin.
func RequireAdmin(opts AuthzOptions) Middleware {
	return requireCapability(opts, func(*http.Request) (service.Capability, bool) {
		return service.AdminRole(), true
	})
}

// RequireGroupMember пускает запрос, только если email из токена
// состоит в группе из URL-параметра {name}. Пустой параметр — отказ
// "Unauthorized" до обращения к токенам.
func RequireGroupMember(opts AuthzOptions) Middleware {
	return requireCapability(opts, func(r *http.Request) (service.Capability, bool) {
		name := chi.URLParam(r, "name")
		if name == "" {
			return service.Capability{}, false
		}
		return service.GroupMembership(name), true
	})
}

// requireCapability — общий каркас авторизации: достаёт токены из
// cookie, спрашивает Authorizer и либо пропускает запрос с claims в
// контексте, либо отвечает отказом. Перевыпущенный access-токен
// попадает в cookie в обоих исходах.
func requireCapability(opts AuthzOptions, capFor func(*http.Request) (service.Capability, bool)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capability, ok := capFor(r)
			if !ok {
				writeAuthzError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			access := cookieValue(r, AccessCookie)
			refresh := cookieValue(r, RefreshCookie)

			verdict, err := opts.Authorizer.Authorize(r.Context(), access, refresh, capability)
			if err != nil {
				writeAuthzError(w, http.StatusInternalServerError, "internal")
				return
			}

			if verdict.RenewedAccessToken != "" {
				SetTokenCookie(w, opts.Cookies, AccessCookie, verdict.RenewedAccessToken, opts.AccessTTL)
			}

			if !verdict.Authorized {
				writeAuthzError(w, statusForCause(verdict.Cause), verdict.Cause)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, verdict.Claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusForCause мапит причину отказа на HTTP-статус: любой отказ
// авторизации — 401, кроме несуществующей группы (400, дефект
// запроса, а не токенов или прав).
func statusForCause(cause string) int {
	if cause == "Group does not exist" {
		return http.StatusBadRequest
	}
	return http.StatusUnauthorized
}

func writeAuthzError(w http.ResponseWriter, status int, cause string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": cause})
}
