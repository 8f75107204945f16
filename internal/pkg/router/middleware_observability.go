package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/aquarium/internal/pkg/config"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Aquarium payloads are small; anything above this is logged truncated.
const maxLoggedBodyBytes = 16 * 1024

// responseCapture records what the handler wrote so it can be logged and
// measured after the fact.
type responseCapture struct {
	http.ResponseWriter
	status    int
	written   int
	body      bytes.Buffer
	truncated bool
	err       error
}

func (c *responseCapture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(p []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.keep(p)

	n, err := c.ResponseWriter.Write(p)
	c.written += n
	return n, err
}

func (c *responseCapture) keep(p []byte) {
	room := maxLoggedBodyBytes - c.body.Len()
	if room <= 0 {
		c.truncated = c.truncated || len(p) > 0
		return
	}
	if len(p) > room {
		p = p[:room]
		c.truncated = true
	}
	c.body.Write(p)
}

// SetError lets the router hand the handler error to the span.
func (c *responseCapture) SetError(err error) {
	c.err = err
}

func (c *responseCapture) Flush() {
	if f, ok := c.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (c *responseCapture) code() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// loggableBody renders a JSON body with sensitive keys masked. Non-JSON text is
// logged as is and binary content is omitted.
func loggableBody(body []byte, maskKeys map[string]struct{}) any {
	if len(body) == 0 {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		return instrument.MaskData(decoded, maskKeys)
	}
	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	return string(body)
}

// peekRequestBody reads up to maxLoggedBodyBytes and rewinds r.Body so the
// handler still sees the full payload.
func peekRequestBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	//nolint:errcheck // best effort for logging only
	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(head), r.Body))
	if len(head) > maxLoggedBodyBytes {
		return head[:maxLoggedBodyBytes]
	}
	return head
}

func maskedHeaders(h http.Header, maskKeys map[string]struct{}) http.Header {
	out := h.Clone()
	for key := range out {
		if _, masked := maskKeys[http.CanonicalHeaderKey(key)]; masked {
			out.Set(key, "***")
		}
	}
	return out
}

type httpMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newHTTPMetrics(meter metric.Meter) httpMetrics {
	var m httpMetrics
	var err error

	m.requests, err = meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	m.duration, err = meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return m
}

func (m httpMetrics) record(ctx context.Context, elapsed time.Duration, attrs []attribute.KeyValue) {
	opt := metric.WithAttributes(attrs...)
	if m.requests != nil {
		m.requests.Add(ctx, 1, opt)
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, opt)
	}
}

func finishSpan(span trace.Span, c *responseCapture, attrs []attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetAttributes(attribute.Int("http.response_content_length", c.written))

	if c.err != nil {
		span.RecordError(c.err)
	}
	switch {
	case c.code() < http.StatusInternalServerError:
		span.SetStatus(codes.Ok, "")
	case c.err != nil:
		span.SetStatus(codes.Error, c.err.Error())
	default:
		span.SetStatus(codes.Error, http.StatusText(c.code()))
	}
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	var maskKeys map[string]struct{}
	if cfg != nil {
		maskKeys = instrument.MaskKeys(cfg.GetArray("instrument.log_mask_fields"))
	} else {
		maskKeys = instrument.MaskKeys(nil)
	}
	headerMask := make(map[string]struct{}, len(maskKeys))
	for k := range maskKeys {
		headerMask[http.CanonicalHeaderKey(k)] = struct{}{}
	}

	tracer := ins.Tracer("http.server")
	metrics := newHTTPMetrics(ins.Meter("http.server"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := matchedRoutePath(r)

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
					semconv.NetworkProtocolVersionKey.String(r.Proto),
					semconv.ServerAddressKey.String(r.Host),
					semconv.UserAgentOriginalKey.String(r.UserAgent()),
				),
			)
			defer span.End()

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"client_ip", r.RemoteAddr,
				"headers", maskedHeaders(r.Header, headerMask),
				"body", loggableBody(peekRequestBody(r), maskKeys),
			)

			c := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(c, r.WithContext(ctx))

			elapsed := time.Since(start)
			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(c.code()),
			}
			finishSpan(span, c, attrs)
			metrics.record(ctx, elapsed, attrs)

			body := loggableBody(c.body.Bytes(), maskKeys)
			if c.truncated {
				body = map[string]any{"body": body, "truncated": true}
			}
			slog.InfoContext(ctx, "response sent",
				"method", r.Method,
				"path", route,
				"status", c.code(),
				"bytes", c.written,
				"latency_ms", elapsed.Milliseconds(),
				"body", body,
			)
		})
	}
}
