package middleware

import (
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/api"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/foodorder/internal/util"
	"github.com/rs/zerolog"
)

// RateLimitMiddleware 以使用者 id 為 key, 未登入時退回使用來源 ip
func RateLimitMiddleware(limiter ratelimit.ILimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := util.GetUserID(r.Context())
			if key == "" {
				key = clientIP(r)
			}

			if !limiter.Allow(r.Context(), key) {
				zerolog.Ctx(r.Context()).Warn().Str("limiter_key", key).Msg("request rate limited")
				api.WriteError(w, apperr.New(apperr.RateLimited, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return "ip:" + host
	}
	return "ip:" + r.RemoteAddr
}
