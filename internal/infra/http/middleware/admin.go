package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminAuth gates the admin routes on the shared admin password. When no
// password is configured the whole admin surface is closed, not open.
func AdminAuth(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get("X-Admin-Password")

			if password == "" ||
				subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
