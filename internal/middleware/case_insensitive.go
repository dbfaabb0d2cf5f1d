package middleware

import (
	"net/http"
	"strings"
)

// CaseInsensitiveMiddleware converts all URL paths to lowercase
// This allows API endpoints to be accessed regardless of case
// Example: /API/ENTRIES and /api/entries both work
// Useful for QR codes where uppercase letters encode more efficiently
func CaseInsensitiveMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = strings.ToLower(r.URL.Path)

		next.ServeHTTP(w, r)
	})
}
