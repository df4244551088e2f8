// Package http собирает HTTP-роутер finance-service: chi, мидлвары
// и REST-маршруты с capability-авторизацией по cookie-токенам.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-finance-tracker/internal/config"
	"github.com/pribylovaa/go-finance-tracker/internal/service"
	"github.com/pribylovaa/go-finance-tracker/internal/transport/http/handlers"
	"github.com/pribylovaa/go-finance-tracker/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	Auth     config.AuthConfig
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, opts.Auth)

	authz := middleware.AuthzOptions{
		Authorizer: svc,
		Cookies: middleware.CookieOptions{
			Path:   opts.Auth.CookiePath,
			Secure: opts.Auth.CookieSecure,
		},
		AccessTTL: opts.Auth.AccessTokenTTL,
	}

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, authz)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, authz)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, authz middleware.AuthzOptions) {
	// auth
	r.Post("/auth/register", h.RegisterUser)
	r.Post("/auth/login", h.LoginUser)
	r.Post("/auth/logout", h.LogoutUser)

	// users
	r.With(middleware.RequireAdmin(authz)).Get("/users", h.ListUsers)
	r.With(middleware.RequireSameUser(authz)).Get("/users/{username}", h.GetUser)

	// categories
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authz))
		r.Post("/categories", h.CreateCategory)
		r.Get("/categories", h.ListCategories)
		r.Delete("/categories/{id}", h.DeleteCategory)
	})

	// transactions
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authz))
		r.Post("/transactions", h.CreateTransaction)
		r.Get("/transactions", h.ListTransactions)
		r.Put("/transactions/{id}", h.UpdateTransaction)
		r.Delete("/transactions/{id}", h.DeleteTransaction)
	})

	// groups
	r.With(middleware.RequireAuth(authz)).Post("/groups", h.CreateGroup)
	r.With(middleware.RequireAdmin(authz)).Delete("/groups/{name}", h.DeleteGroup)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireGroupMember(authz))
		r.Get("/groups/{name}", h.GetGroup)
		r.Get("/groups/{name}/transactions", h.GroupTransactions)
		r.Post("/groups/{name}/members", h.AddGroupMember)
		r.Delete("/groups/{name}/members", h.RemoveGroupMember)
	})
}
