package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/devserver"
	"github.com/casedesk/cli/internal/format"
)

// DevserverCmd runs a local backend with static data
var DevserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local development backend",
	Long: `Run a local backend that implements the auth endpoints and serves
static case data. Every mobile number accepts the configured OTP and PIN.`,
	RunE: runDevserver,
}

func runDevserver(cmd *cobra.Command, args []string) error {
	cfg := config.Get().DevAPI
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	var mw []func(http.Handler) http.Handler
	if config.IsDebug() {
		mw = append(mw, middleware.Logger)
	}
	r := devserver.New(cfg.OTP, cfg.PIN).Router(mw...)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- fmt.Errorf("server failed: %w", err)
			return
		}
		done <- nil
	}()

	format.PrintInfo("Development backend listening on http://%s (OTP %s, PIN %s)", cfg.Addr, cfg.OTP, cfg.PIN)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-done:
		return err
	}
}

func init() {
	DevserverCmd.Flags().String("addr", "", "listen address (default devserver.addr)")
}
