package middleware

import (
	"net/http"
	"runtime/debug"

	"hvac-backend/pkg/utils"

	"go.uber.org/zap"
)

func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				zap.S().Errorw("[Recovery] Panic recovered",
					"panic", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				utils.Error(w, http.StatusInternalServerError, "Erro interno do servidor")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
