package restapi

import (
	"fmt"
	"net/http"
)

const noCacheHeader = "no-cache, no-store, must-revalidate"

// CacheControlMiddleware marks successful responses cacheable for
// maxAgeSeconds. Errors and a zero max age are never cached.
func CacheControlMiddleware(maxAgeSeconds int, next http.Handler) http.Handler {
	headerValue := noCacheHeader
	if maxAgeSeconds > 0 {
		headerValue = fmt.Sprintf("public, max-age=%d", maxAgeSeconds)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cacheControlWriter{ResponseWriter: w, headerValue: headerValue}, r)
	})
}

type cacheControlWriter struct {
	http.ResponseWriter
	headerValue   string
	headerWritten bool
}

func (w *cacheControlWriter) WriteHeader(code int) {
	if !w.headerWritten {
		w.headerWritten = true
		value := noCacheHeader
		if code >= 200 && code < 300 {
			value = w.headerValue
		}
		w.ResponseWriter.Header().Set("Cache-Control", value)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheControlWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
