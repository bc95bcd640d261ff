package auth

import (
	"encoding/json"
	"net/http"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/internal/transport"
)

// Middleware rejects requests without a valid externally-issued bearer token
// and stores the caller's user id in the request context. When no token
// secret is configured it is a no-op so the API stays usable in local
// development against the seeded database.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !v.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := transport.BearerToken(r)
		if token == "" {
			writeDetail(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := v.Verify(token)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := internal.ContextWithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
