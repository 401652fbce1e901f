package middleware

import (
	"bytes"
	"io"
	"mime"
	"net/http"
)

// MaxBodyBytes bounds request bodies accepted by RequireJSON.
const MaxBodyBytes = 1 << 20

// RequireJSON checks that write requests carry a non-empty JSON body.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType != "application/json" {
			deny(w, http.StatusUnsupportedMediaType, "Content-Type header must be application/json")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
		if err != nil {
			deny(w, http.StatusBadRequest, "Error reading request body")
			return
		}
		if len(body) > MaxBodyBytes {
			deny(w, http.StatusRequestEntityTooLarge, "Request body is too large")
			return
		}
		if len(bytes.TrimSpace(body)) == 0 {
			deny(w, http.StatusBadRequest, "Request body is empty")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
