package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"front_desk/internal/adapters/observability"
)

// Timeout answers 503 when a handler runs longer than d.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// recorder keeps the status and body size a handler produced.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *recorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *recorder) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// routeOf is the matched chi pattern; unmatched paths share one label.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Observe records request metrics and writes one access-log line per
// request. Lines name the desk entity addressed by {id} and are raised to
// Warn for client errors and Error for server errors.
func Observe(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			route := routeOf(r)
			took := time.Since(start)
			observability.ObserveHTTP(route, r.Method, rec.code(), took)

			var ev *zerolog.Event
			switch code := rec.code(); {
			case code >= http.StatusInternalServerError:
				ev = l.Error()
			case code >= http.StatusBadRequest:
				ev = l.Warn()
			default:
				ev = l.Info()
			}
			if id := chi.URLParam(r, "id"); id != "" {
				entity, _, _ := strings.Cut(strings.TrimPrefix(route, "/v1/"), "/")
				ev = ev.Str("entity", entity).Str("entity_id", id)
			}
			ev.Str("request_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("route", route).
				Int("status", rec.code()).
				Int("bytes", rec.bytes).
				Dur("took", took).
				Str("remote", r.RemoteAddr).
				Msg("desk request")
		})
	}
}

// RequireJSON rejects write requests whose body is not declared as JSON and
// caps the body size at maxBytes.
func RequireJSON(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				ct := r.Header.Get("Content-Type")
				if r.ContentLength != 0 && ct != "" && !strings.HasPrefix(ct, "application/json") {
					writeProblem(w, http.StatusUnsupportedMediaType, "Unsupported Media Type", "send application/json")
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
