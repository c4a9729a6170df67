package main

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/bigm"
	"github.com/askiada/bigm/internal/metrics"
	"github.com/askiada/bigm/internal/server"
)

const readHeaderTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long:  `Starts a JSON API exposing POST /v1/solve, GET /healthz and GET /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.conf.Server.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	return cmd
}

// serve runs the API until ctx is done, then drains in-flight requests.
func (a *app) serve(ctx context.Context) error {
	m := metrics.New()
	opts, err := a.conf.SolverOptions()
	if err != nil {
		return err
	}
	s, err := bigm.NewSolver(append(opts, bigm.WithLogger(a.logger), bigm.WithHooks(m.Hooks()))...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: a.conf.Server.Addr,
		Handler: server.NewHandler(s, server.Options{
			Metrics:      m.Handler(),
			Logger:       a.logger,
			MaxBodyBytes: a.conf.Server.MaxBodyBytes,
		}),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")
	case <-ctx.Done():
		a.logger.Info("shutting down", "timeout", a.conf.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.conf.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("graceful shutdown did not complete", "error", err)
			return errors.Wrap(srv.Close(), "close server")
		}
		a.logger.Info("server stopped")
		return nil
	}
}
