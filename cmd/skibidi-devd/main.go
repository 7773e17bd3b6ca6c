// Package main runs the in-memory development backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/devbackend"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	addr     string
	faucet   int64
	priceUSD float64
	debug    bool
)

// sugarLogger adapts a zap SugaredLogger to devbackend.Logger.
type sugarLogger struct {
	s *zap.SugaredLogger
}

func (l sugarLogger) Info(format string, args ...any) {
	l.s.Infof(format, args...)
}

func main() {
	root := &cobra.Command{
		Use:   "skibidi-devd",
		Short: "Run an in-memory wallet backend for development",
		Long: `skibidi-devd serves the wallet backend API from memory. Wallets are
derived from their phrase, so restoring the same phrase twice yields the
same wallet id. Nothing here is real bitcoin.

Example:
  skibidi-devd --addr 127.0.0.1:8787 --faucet 100000
  SKIBIDI_BACKEND_URL=http://127.0.0.1:8787 SKIBIDI_PRICE_URL=http://127.0.0.1:8787 skibidi wallet create`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "listen address")
	root.Flags().Int64Var(&faucet, "faucet", 100_000, "sats credited to every new wallet")
	root.Flags().Float64Var(&priceUSD, "price", devbackend.DefaultPriceUSD, "BTC/USD price served on /simple/price")
	root.Flags().BoolVar(&debug, "debug", false, "development logging")

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "skibidi-devd:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	zl, err := newZap()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	srv := devbackend.New(devbackend.Options{
		Faucet:   faucet,
		PriceUSD: priceUSD,
		Logger:   sugarLogger{s: log},
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Infow("dev backend listening", "addr", ln.Addr().String(), "faucet", faucet, "price_usd", priceUSD)

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func newZap() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
