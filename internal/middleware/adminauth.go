package middleware

import (
	"log/slog"
	"net/http"

	"github.com/booldo/booldo/internal/auth"
)

// AdminKeyHeader carries the admin API key on management requests.
const AdminKeyHeader = "X-Admin-Key"

// AdminAuth guards the admin endpoints with an argon2-hashed API key.
// The hash is configured at deploy time; an empty hash disables the
// endpoints entirely rather than leaving them open.
func AdminAuth(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				http.Error(w, "admin endpoints disabled", http.StatusNotFound)
				return
			}

			key := r.Header.Get(AdminKeyHeader)
			if key == "" {
				unauthorized(w)
				return
			}

			ok, err := auth.VerifyKey(key, keyHash)
			if err != nil {
				logger.Error("admin key verification failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !ok {
				logger.Warn("admin key rejected",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("remote_addr", r.RemoteAddr),
				)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Key realm="admin"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}
