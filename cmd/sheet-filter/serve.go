package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheet-filter/internal/config"
	"sheet-filter/internal/logger"
	"sheet-filter/internal/source"
	"sheet-filter/internal/store"
	"sheet-filter/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr, location string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filter page on a local address",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if location != "" {
				cfg.Source.Location = location
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().StringVar(&location, "source", "", "Spreadsheet path or URL to load at startup")
	return cmd
}

func runServe(ctx context.Context, c *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := c.CodecOptions()
	if err != nil {
		return err
	}

	st := store.New(opts)
	var src source.Source
	if c.Source.Location != "" {
		src = source.Open(c.Source.Location)
		// The page still comes up empty when the first load fails
		if _, err := st.LoadFrom(ctx, src); err != nil {
			logger.Warn("Initial load failed: %v", err)
			logger.LogLoadError(c.Source.Location, err)
		} else {
			logger.Info("Loaded %d rows from %s", len(st.Current()), src.Name())
		}
	}

	srv := web.NewServer(st, src, web.Options{
		DefaultMode:     c.Filter.Mode,
		DefaultFileName: c.Output.FileName,
		Formats:         c.Output.Formats,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(c.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-sigCh:
		logger.Info("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
