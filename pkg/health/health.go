package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/rs/zerolog/log"

	"github.com/aosmith-community/aosmith-go/pkg/aosmith"
	"github.com/aosmith-community/aosmith-go/pkg/config"
)

type Health interface {
	Start() error
	Stop() error
}

type health struct {
	config config.HealthCheckConfig
	client aosmith.Client
	health *healthgo.Health

	server         *http.Server
	serverCtx      context.Context
	serverStopCtx  context.CancelFunc
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewHealth exposes the vendor status probe as a standard health endpoint:
// the check passes while the A. O. Smith backend reports that everything is
// okay.
func NewHealth(config config.HealthCheckConfig, client aosmith.Client) Health {
	h, _ := healthgo.New(healthgo.WithComponent(healthgo.Component{
		Name:    "aosmith-go",
		Version: "v1.0",
	}),
	)

	err := h.Register(healthgo.Config{
		Name:      "aosmith-api",
		Timeout:   time.Second * 25,
		SkipOnErr: false,
		Check: func(ctx context.Context) error {
			okay, err := client.IsEverythingOkay(ctx)
			if err != nil {
				return err
			}
			if !okay {
				return errors.New("A. O. Smith API reports a problem")
			}
			return nil
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Unable to register A. O. Smith healthcheck")
		return nil
	}

	return &health{
		config: config,
		client: client,
		health: h,
	}
}

func (h *health) Start() error {
	listenAddr := fmt.Sprintf("0.0.0.0:%d", h.config.Port)
	h.server = &http.Server{Addr: listenAddr, Handler: h.service()}
	h.serverCtx, h.serverStopCtx = context.WithCancel(context.Background())
	h.shutdownCtx, h.shutdownCancel = context.WithTimeout(h.serverCtx, 30*time.Second)
	go func() {
		log.Info().Msgf("Starting health check server on %s", listenAddr)
		err := h.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Unable to start health check server")
		}
	}()
	return nil
}

func (h *health) Stop() error {
	err := h.server.Shutdown(h.shutdownCtx)
	if err != nil {
		return err
	}
	h.shutdownCancel()
	h.serverStopCtx()
	log.Info().Msg("Health check server stopped")
	return nil
}

func (h *health) service() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.health.HandlerFunc)
	r.Get("/health/ready", h.health.HandlerFunc)
	r.Get("/health/live", h.health.HandlerFunc)
	return r
}
