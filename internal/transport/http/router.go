// Package http собирает REST-слой сервиса: роутер, мидлвары и хендлеры.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/news-reader-api/internal/service"
	"github.com/pribylovaa/news-reader-api/internal/transport/http/handlers"
	"github.com/pribylovaa/news-reader-api/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
// Без Bearer-токена доступны только /healthz и /v1/auth/*; остальные /v1-роуты
// требуют валидный access-токен.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	h := handlers.New(svc)

	root.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	root.Route("/v1", func(r chi.Router) {
		// auth — без Bearer-токена.
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/refresh", h.Refresh)
		r.Post("/auth/logout", h.Logout)

		// всё остальное — только с валидным access-токеном.
		r.Group(func(pr chi.Router) {
			pr.Use(middleware.Auth(svc))

			pr.Get("/news", h.ListNews)
			pr.Get("/news/breaking", h.ListBreaking)
			pr.Get("/news/breaking/highlight", h.BreakingHighlight)
			pr.Get("/news/recommendations", h.ListRecommendations)
			pr.Get("/news/recommendations/highlight", h.RecommendationsHighlight)
			pr.Get("/news/{id}", h.GetNewsByID)

			pr.Post("/favorites/{newsId}", h.AddFavorite)
			pr.Delete("/favorites/{favoriteId}", h.RemoveFavorite)
			pr.Get("/favorites", h.ListFavorites)

			pr.Post("/reading-history", h.MarkAsRead)
			pr.Get("/reading-history", h.History)
			pr.Delete("/reading-history/{newsId}", h.RemoveFromHistory)
		})
	})

	// Внешние мидлвары (внешний -> внутренний).
	mws := []middleware.Middleware{
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	}
	if opts.Timeout > 0 {
		mws = append(mws, middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	return middleware.Chain(root, mws...)
}
