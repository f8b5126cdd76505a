package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xy-planning-network/ridewitus"
)

// A LogRequestRecord is the structured log line LogRequest writes for every request.
type LogRequestRecord struct {
	BodySize       int    `json:"bodySize"`
	Duration       string `json:"duration"`
	Host           string `json:"host"`
	ID             string `json:"id"`
	IPAddr         string `json:"ipAddr"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer"`
	ReqContentType string `json:"reqContentType"`
	Scheme         string `json:"scheme"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent"`
}

// LogValue implements [log/slog.LogValuer].
func (rec LogRequestRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bodySize", rec.BodySize),
		slog.String("duration", rec.Duration),
		slog.String("host", rec.Host),
		slog.String("id", rec.ID),
		slog.String("ipAddr", rec.IPAddr),
		slog.String("method", rec.Method),
		slog.String("path", rec.Path),
		slog.String("protocol", rec.Protocol),
		slog.String("referrer", rec.Referrer),
		slog.String("reqContentType", rec.ReqContentType),
		slog.String("scheme", rec.Scheme),
		slog.Int("status", rec.Status),
		slog.String("uri", rec.URI),
		slog.String("userAgent", rec.UserAgent),
	)
}

// LogRequest logs the request's method, requested URL, originating IP address,
// response status, duration and request ID using the enclosed *slog.Logger.
//
// LogRequest scrubs the values for the following keys:
//   - password
//
// if l is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l *slog.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			h.ServeHTTP(sw, r)

			uri := r.URL.Path
			q := r.URL.Query()
			ridewitus.Mask(q, "password")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			if sw.status == 0 {
				sw.status = http.StatusOK
			}

			rec := LogRequestRecord{
				BodySize:       sw.size,
				Duration:       time.Since(start).String(),
				Host:           r.Host,
				ID:             ridewitus.RequestID(r.Context()),
				IPAddr:         IPAddress(r.Context()),
				Method:         r.Method,
				Path:           r.URL.Path,
				Protocol:       r.Proto,
				Referrer:       r.Referer(),
				ReqContentType: r.Header.Get("Content-Type"),
				Scheme:         r.URL.Scheme,
				Status:         sw.status,
				URI:            uri,
				UserAgent:      r.UserAgent(),
			}

			attrs := rec.LogValue().Group()
			args := make([]any, 0, len(attrs)+1)
			args = append(args, slog.Attr{Key: ridewitus.LogKindKey, Value: ridewitus.HTTPLogKind})
			for _, a := range attrs {
				args = append(args, a)
			}

			l.Info("", args...)
		})
	}
}

// A statusWriter records the status code and body size written through it.
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}

	n, err := sw.ResponseWriter.Write(b)
	sw.size += n
	return n, err
}

// Unwrap exposes the underlying http.ResponseWriter to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }
