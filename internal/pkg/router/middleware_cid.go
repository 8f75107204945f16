package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/shandysiswandi/aquarium/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the correlation ID in both directions.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted from proxies that only set a request ID.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

// inboundCIDHeaders is checked in order; the first usable value wins.
var inboundCIDHeaders = []string{HeaderCorrelationID, HeaderRequestID}

// sanitizeCID rejects header-injection attempts and clamps the length.
func sanitizeCID(v string) string {
	if strings.ContainsAny(v, "\r\n") {
		return ""
	}
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	return v
}

func correlationID(r *http.Request, gen uid.StringID) string {
	for _, h := range inboundCIDHeaders {
		if cid := sanitizeCID(r.Header.Get(h)); cid != "" {
			return cid
		}
	}
	if gen == nil {
		return ""
	}
	return gen.Generate()
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cid := correlationID(r, gen); cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}
			next.ServeHTTP(w, r)
		})
	}
}
