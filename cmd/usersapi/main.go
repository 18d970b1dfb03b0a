package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfagnish/users-api/internal/config"
	"github.com/alfagnish/users-api/internal/events"
	"github.com/alfagnish/users-api/internal/server"
	"github.com/alfagnish/users-api/internal/users"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "usersapi",
		Short: "In-memory users CRUD API",
		Long: `usersapi serves CRUD endpoints over an in-memory user collection
plus a health check. Configuration is read from the environment
(PORT, LISTEN_ADDR, CORS_ALLOWED_ORIGINS, SHUTDOWN_TIMEOUT_SEC, SEED_USERS).`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if listen != "" {
				cfg.ListenAddr = listen
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides LISTEN_ADDR and PORT)")
	return cmd
}

func run(cfg *config.Config) error {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 1. Configuration.
	log.Printf("config: listen=%s origins=%v seed=%t", cfg.ListenAddr, cfg.AllowedOrigins, cfg.SeedUsers)

	// 2. Create the in-memory repository.
	var repo *users.Repository
	if cfg.SeedUsers {
		repo = users.NewRepository(users.Seed()...)
	} else {
		repo = users.NewRepository()
	}
	log.Printf("repository ready with %d users", repo.Len())

	// 3. Change feed for WebSocket clients.
	hub := events.NewHub()

	// 4. Set up the chi router with all handlers.
	handler := server.New(cfg, repo, hub, log.Default())

	// 5. Start the HTTP server.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      0, // WebSocket streams are long-lived
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-done:
	}
	log.Println("shutting down...")

	// Close WebSocket streams first; Shutdown does not wait for hijacked connections.
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}

	log.Println("server stopped")
	return nil
}
