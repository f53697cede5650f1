package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/helios-hq/helios/pkg/composables"
	"github.com/helios-hq/helios/pkg/configuration"
	"github.com/helios-hq/helios/pkg/session"
)

// RequireOrganization resolves the caller's session token against the injected
// store and places the session's organization id into the request context.
// Handlers never read an organization id from the request itself.
func RequireOrganization(store session.Store) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r, conf.SessionTokenHeader)
			if token == "" {
				writeUnauthorized(w, "missing session token")
				return
			}

			sess, err := store.Get(r.Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					writeUnauthorized(w, "invalid or expired session")
					return
				}
				http.Error(w, "session lookup failed", http.StatusInternalServerError)
				return
			}

			ctx := composables.WithOrganizationID(r.Context(), sess.OrganizationID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request, header string) string {
	raw := strings.TrimSpace(r.Header.Get(header))
	if raw == "" {
		return ""
	}
	if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return raw
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}
