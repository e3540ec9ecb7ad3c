package httpapi

import (
	"net/http"

	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

// NewRouter wires routes behind tracing, request logging, CORS and panic recovery, outermost first.
func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	for _, rt := range routes(handler) {
		if rt.docs && !swaggerEnabled {
			continue
		}
		mux.HandleFunc(rt.pattern, rt.handle)
	}

	return chain(mux,
		RequestTracing,
		RequestLogging(logger),
		CORS(corsAllowedOrigins),
		recoverPanic(logger),
	)
}

type route struct {
	pattern string
	handle  http.HandlerFunc
	// docs routes are only mounted when swagger is enabled.
	docs bool
}

func routes(h *Handler) []route {
	return []route{
		{pattern: "GET /healthz", handle: h.Healthz},
		{pattern: "GET /readyz", handle: h.Readyz},
		{pattern: "GET /openapi.yaml", handle: h.OpenAPI, docs: true},
		{pattern: "GET /docs", handle: h.SwaggerUI, docs: true},
		{pattern: "GET /docs/", handle: h.SwaggerUI, docs: true},

		{pattern: "GET /v1/profiles", handle: h.ListProfiles},
		{pattern: "GET /v1/profiles/{profileID}", handle: h.GetProfile},
		{pattern: "GET /v1/profiles/{profileID}/trades/{tradeID}", handle: h.GetSignalDetails},
		{pattern: "GET /v1/profiles/{profileID}/alpha-card", handle: h.GetAlphaCard},
		{pattern: "GET /v1/feed", handle: h.ListFeed},
		{pattern: "POST /v1/trades/{tradeID}/copy-quote", handle: h.QuoteCopyTrade},
	}
}

func recoverPanic(logger *logging.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx), "path", r.URL.Path)
				writeInternalError(ctx, w)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
