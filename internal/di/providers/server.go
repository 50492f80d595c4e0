package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/api"
	"github.com/bookspace/bookspace-server/internal/config"
	"github.com/bookspace/bookspace-server/internal/logger"
	"github.com/bookspace/bookspace-server/internal/ratelimit"
	"github.com/bookspace/bookspace-server/internal/service"
)

// shutdownTimeout bounds how long the HTTP server may drain on shutdown.
const shutdownTimeout = 30 * time.Second

// AuthRateLimiterHandle wraps the auth endpoint rate limiter with shutdown capability.
type AuthRateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *AuthRateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideAuthRateLimiter provides the per-IP limiter for login and register.
func ProvideAuthRateLimiter(i do.Injector) (*AuthRateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return &AuthRateLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.RateLimit.AuthRequestsPerSecond, cfg.RateLimit.AuthBurst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	authLimiter := do.MustInvoke[*AuthRateLimiterHandle](i)

	services := api.Services{
		Auth:           do.MustInvoke[*service.AuthService](i),
		Book:           do.MustInvoke[*service.BookService](i),
		Collection:     do.MustInvoke[*service.CollectionService](i),
		Goal:           do.MustInvoke[*service.GoalService](i),
		Review:         do.MustInvoke[*service.ReviewService](i),
		Insights:       do.MustInvoke[*service.InsightsService](i),
		Recommendation: do.MustInvoke[*service.RecommendationService](i),
	}

	server := api.NewServer(storeHandle.Store, services, authLimiter.KeyedRateLimiter, cfg.Server.Name, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv}, nil
}
