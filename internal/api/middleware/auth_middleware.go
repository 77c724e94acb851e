package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/api"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/foodorder/internal/util"
)

// 驗證是ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetTokenPayloadFromContext(r.Context()) == nil {
			api.WriteError(w, apperr.New(apperr.Unauthenticated, "unauthenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
