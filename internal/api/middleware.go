package api

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogger logs every request with a request id, method, path and
// duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		next.ServeHTTP(w, r)
		log.Printf("%s %s request_id=%s remote=%s duration=%s",
			r.Method, r.URL.Path, reqID, r.RemoteAddr, time.Since(start))
	})
}
