package middleware

import "net/http"

// MaxRequestSize caps the request body. Handlers decoding an oversized body
// get an error from http.MaxBytesReader instead of reading unbounded input.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
