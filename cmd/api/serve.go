package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	"github.com/BruksfildServices01/workshop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/workshop-scheduler/internal/routes"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			dispatcher := audit.NewDispatcher(audit.New(a.store), a.log)
			defer dispatcher.Close()

			deps := a.deps()
			deps.Audit = dispatcher

			var m *metrics.Metrics
			if a.cfg.MetricsEnabled {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				m = metrics.New(reg)
				deps.Metrics = m
			}

			r := gin.New()
			r.Use(gin.Logger(), gin.Recovery())
			routes.RegisterRoutes(r, a.cfg, a.store, deps, m)

			srv := &http.Server{
				Addr:              a.cfg.Addr(),
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server running on %s", a.cfg.Addr())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			a.log.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
}
