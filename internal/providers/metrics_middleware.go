package providers

import (
	"net/http"
	"strings"
	"time"
)

// ImagesPathPrefix is where locally stored images are served from.
const ImagesPathPrefix = "/data/images/"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// endpointLabel keeps the label set bounded: every image file collapses
// into its directory.
func endpointLabel(path string) string {
	if strings.HasPrefix(path, ImagesPathPrefix) {
		return ImagesPathPrefix
	}
	return path
}

func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		endpoint := endpointLabel(r.URL.Path)
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, duration)
	})
}
