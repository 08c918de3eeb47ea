package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"gotire/internal/pkg/logger"
)

// statusRecorder guarda o status escrito pelo handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush repassa ao writer original; o stream SSE depende disso.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("hijack não suportado")
}

// RequestLogger registra cada requisição com método, caminho, status, latência e IP,
// e propaga/gera o cabeçalho X-Request-ID.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			fields := map[string]interface{}{
				"status":     rec.status,
				"method":     r.Method,
				"path":       r.URL.Path,
				"query":      redactQuery(r.URL),
				"ip":         r.RemoteAddr,
				"latency":    time.Since(start).String(),
				"request_id": requestID,
			}

			switch {
			case rec.status >= 500:
				log.Warn("Server error", fields)
			case rec.status >= 400:
				log.Info("Client error", fields)
			default:
				log.Debug("Request", fields)
			}
		})
	}
}

// redactQuery mascara o token aceito na query do stream SSE.
func redactQuery(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	q := u.Query()
	if !q.Has("token") {
		return u.RawQuery
	}
	q.Set("token", "[REDACTED]")
	return q.Encode()
}
