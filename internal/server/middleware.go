package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rshade/esgsync/internal/logging"
)

// requestLogger attaches a request-scoped logger and trace id to the request
// context, then logs and counts the request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		traceID := middleware.GetReqID(r.Context())
		if traceID == "" {
			traceID = logging.NewTraceID()
		}
		ctx := s.logger.WithContext(r.Context())
		ctx = logging.ContextWithTraceID(ctx, traceID)

		next.ServeHTTP(ww, r.WithContext(ctx))

		route := chi.RouteContext(ctx).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.Requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		s.metrics.Duration.WithLabelValues(route).Observe(elapsed.Seconds())

		l := logging.FromContext(ctx)
		ev := l.Debug()
		if status >= http.StatusInternalServerError {
			ev = l.Error()
		}
		ev.Str("method", r.Method).
			Str("route", route).
			Int(logging.FieldStatus, status).
			Int64(logging.FieldDurationMs, elapsed.Milliseconds()).
			Msg("request")
	})
}
