package rest

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/bibbank/agriscore/internal/application/usecase"
)

// RouterConfig configures the HTTP surface.
type RouterConfig struct {
	Engine        *usecase.Engine
	Logger        *slog.Logger
	Metrics       http.Handler // served on /metrics when set
	ServiceName   string
	AllowedOrigin string
	RetrainPerMin float64 // zero disables retrain rate limiting
}

// NewRouter builds the HTTP handler with every route and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	var retrain func(http.Handler) http.Handler
	if cfg.RetrainPerMin > 0 {
		retrain = RateLimit(rate.NewLimiter(rate.Limit(cfg.RetrainPerMin/60), 1))
	}

	NewScoringHandler(cfg.Engine, cfg.Logger).RegisterRoutes(mux, retrain)
	NewHealthHandler(cfg.Engine.Models, cfg.ServiceName).RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return Chain(mux, RequestID(), Logging(cfg.Logger), CORS(origin))
}
