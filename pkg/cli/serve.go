package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/duke-colab/bluebook/pkg/cli/config"
	httpctrl "github.com/duke-colab/bluebook/pkg/controller/http"
	"github.com/duke-colab/bluebook/pkg/service/worker"
	"github.com/duke-colab/bluebook/pkg/usecase"
	"github.com/duke-colab/bluebook/pkg/utils/async"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var upstreamCfg config.Upstream
	var cacheCfg config.Cache
	var referenceCfg config.Reference

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("BLUEBOOK_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, upstreamCfg.Flags()...)
	flags = append(flags, cacheCfg.Flags()...)
	flags = append(flags, referenceCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cacheCfg.Validate(); err != nil {
				return goerr.Wrap(err, "invalid cache configuration")
			}

			feedClient, directoryClient, scholarClient, err := upstreamCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure upstream clients")
			}

			referenceData, err := referenceCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load reference data")
			}
			logging.Default().Info("Reference data loaded",
				"groups", len(referenceData.Groups),
				"categories", len(referenceData.Categories),
			)

			uc := usecase.New(feedClient, directoryClient, scholarClient,
				usecase.WithCalendarTTL(cacheCfg.TTL()),
				usecase.WithReferenceTTL(cacheCfg.TTL()),
				usecase.WithLookaheadDays(cacheCfg.LookaheadDays()),
			)

			// A refresh worker keeps the event generation warm. Without
			// one the first request after expiry pays the feed fetch, so
			// prewarm once in the background.
			var refreshWorker *worker.FeedRefreshWorker
			if cacheCfg.RefreshInterval() > 0 {
				refreshWorker = worker.NewFeedRefreshWorker(uc.Calendar, cacheCfg.RefreshInterval())
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start feed refresh worker")
				}
			} else {
				async.Dispatch(ctx, func(ctx context.Context) error {
					return uc.Calendar.Refresh(ctx)
				})
			}

			httpHandler := httpctrl.New(
				httpctrl.WithCalendar(uc.Calendar),
				httpctrl.WithDirectory(uc.Directory),
				httpctrl.WithScholars(uc.Scholars),
				httpctrl.WithReference(referenceData),
				httpctrl.WithVersion(version),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"cache", cacheCfg,
					"upstream", upstreamCfg,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop the feed refresh worker first
				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
