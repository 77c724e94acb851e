package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/api/handler"
	m "github.com/RoyceAzure/lab/foodorder/internal/api/middleware"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRouter(server *handler.Server, tokenMaker token.Maker, checkoutLimiter ratelimit.ILimiter, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	r.Get("/healthz", server.HealthHandler.Healthz)

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		// 付款服務回呼, 以簽章驗證身分
		r.Post("/payments/webhook", server.PaymentHandler.Webhook)

		r.Get("/restaurants/{id}", server.RestaurantHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.With(m.RateLimitMiddleware(checkoutLimiter)).Post("/checkout/session", server.CheckoutHandler.CreateCheckoutSession)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/mine", server.OrderHandler.ListMine)
				r.Get("/{id}", server.OrderHandler.Get)
				r.Put("/{id}/status", server.OrderHandler.UpdateStatus)
			})

			r.Get("/restaurants/mine", server.RestaurantHandler.ListMine)
			r.Get("/restaurants/{id}/orders", server.OrderHandler.ListForRestaurant)
		})
	})

	// 在設置完所有路由後打印路由樹
	if logger != nil {
		chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
			return nil
		})
	}
	return r
}
