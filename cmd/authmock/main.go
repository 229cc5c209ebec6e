// Command authmock serves the mock authentication backend the panel signs
// in against.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/nhle/admin-panel/internal/authapi"
	"github.com/nhle/admin-panel/internal/credential"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Printf("authmock: %v", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr        = flag.String("addr", ":8080", "listen address")
		dbPath      = flag.String("db", model.DefaultAppConfig().Storage.DBPath, "SQLite database holding accounts")
		resetSecret = flag.Bool("reset-secret", false, "forget the stored signing secret before starting")
	)
	flag.Parse()

	if *resetSecret {
		if err := credential.ResetJWTSecret(); err != nil {
			return fmt.Errorf("reset secret: %w", err)
		}
	}

	secret, err := signingSecret()
	if err != nil {
		return fmt.Errorf("load signing secret: %w", err)
	}

	db, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	e := authapi.NewServer(authapi.NewService(db, secret))

	srv := &http.Server{
		Addr:         *addr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("authmock listening on %s", *addr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutdown signal received: %v", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// signingSecret prefers PANEL_JWT_SECRET over the keyring.
func signingSecret() ([]byte, error) {
	if s := os.Getenv("PANEL_JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return credential.JWTSecret()
}
