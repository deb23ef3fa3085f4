package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// minCompressSize keeps small envelopes such as errors uncompressed.
const minCompressSize = 1024

// CompressionMiddleware gzips responses for clients that accept it.
func CompressionMiddleware(next http.Handler) http.Handler {
	wrapper, err := gzhttp.NewWrapper(gzhttp.MinSize(minCompressSize))
	if err != nil {
		return gzhttp.GzipHandler(next)
	}
	return wrapper(next)
}
