package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/fuelrouter-go/internal/adapters/geocoding"
	"github.com/andrescamacho/fuelrouter-go/internal/adapters/httpapi"
	"github.com/andrescamacho/fuelrouter-go/internal/adapters/routing"
	appplanning "github.com/andrescamacho/fuelrouter-go/internal/application/planning"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the route-planning API server",
		Long: `Run the route-planning API server.
Shuts down gracefully on SIGINT or SIGTERM, draining in-flight requests
within the configured grace period.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			geocoder := geocoding.NewClient(&rt.cfg.Geocoding, rt.logger)
			router := routing.NewClient(&rt.cfg.OSRM, rt.logger)
			selector := appplanning.NewSelector(rt.stations, rt.cfg.Planner.MaxCandidateStations)
			planner := appplanning.NewService(geocoder, router, selector, rt.cfg.Planner, rt.logger)
			handler := httpapi.NewHandler(planner, rt.stations, rt.logger)

			server := &http.Server{
				Addr:         rt.cfg.Server.Address,
				Handler:      httpapi.NewRouter(handler, &rt.cfg.Server, rt.logger),
				ReadTimeout:  rt.cfg.Server.ReadTimeout,
				WriteTimeout: rt.cfg.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				rt.logger.WithField("address", server.Addr).Info("api server listening")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case sig := <-quit:
				rt.logger.WithField("signal", sig.String()).Info("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			rt.logger.Info("server stopped")
			return nil
		},
	}
}
