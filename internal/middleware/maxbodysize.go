package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that caps request body size at
// limit bytes. A request advertising a larger Content-Length is rejected with
// 413 before any body bytes are read; bodies with unknown length are wrapped
// in http.MaxBytesReader, so the handler's read fails once the limit is
// crossed. Photo uploads are the reason this exists.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
