// Package middleware provides request middleware specific to the
// conversion API.
package middleware

import "net/http"

// BodyLimit caps the request body at maxBytes. Reads past the cap fail
// with *http.MaxBytesError, which the upload layer reports as an
// invalid-parameter rejection instead of buffering an unbounded upload.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
