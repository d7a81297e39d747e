package http

import (
	"log/slog"
	"net/http"
)

// NewRouter wires the API routes. Computation routes go through the rate
// limiter; every route is logged.
func NewRouter(
	schedules *ScheduleHandler,
	curves *CurveHandler,
	health http.Handler,
	limiter *RateLimiter,
	logger *slog.Logger,
) http.Handler {
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /schedule", limited(schedules.Generate))
	mux.Handle("PUT /curve/{term}", limited(curves.Put))
	mux.Handle("GET /curve/{term}", limited(curves.Get))
	mux.Handle("GET /curve/{term}/samples", limited(curves.Samples))
	mux.Handle("GET /health", health)

	return Logging(logger, mux)
}
