package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/config"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/logging"
)

// APIKeyHeader carries the client's key on protected requests.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth guards state-changing endpoints, such as dataset reloads, with
// the keys in cfg. When RequireAPIKey is false every request passes.
func APIKeyAuth(cfg config.SecurityConfig) func(http.Handler) http.Handler {
	keys := make([][]byte, len(cfg.APIKeys))
	for i, k := range cfg.APIKeys {
		keys[i] = []byte(k)
	}

	return func(next http.Handler) http.Handler {
		if !cfg.RequireAPIKey {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			switch {
			case key == "":
				logging.FromContext(r.Context()).Warn("auth: missing API key", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				denied(w, http.StatusUnauthorized, "API key required", "AUTH001")
			case !validKey([]byte(key), keys):
				logging.FromContext(r.Context()).Warn("auth: invalid API key", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				denied(w, http.StatusForbidden, "API key not accepted", "AUTH002")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// validKey compares against every key in constant time, so the response time
// does not reveal which key, if any, matched.
func validKey(key []byte, keys [][]byte) bool {
	match := 0
	for _, k := range keys {
		match |= subtle.ConstantTimeCompare(key, k)
	}
	return match == 1
}

func denied(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   message,
		"message": message,
		"action":  "Send a configured key in the " + APIKeyHeader + " header",
		"code":    code,
	})
}
