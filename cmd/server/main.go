// Package main runs the todo list web server.
//
// The server keeps every todo in process memory and exposes it through a
// small JSON API plus a single HTML page:
//
//	┌─────────────────────────────────────────┐
//	│               Server                    │
//	├─────────────────────────────────────────┤
//	│  HTTP API:                              │
//	│    /             - HTML page            │
//	│    /health       - Health check         │
//	│    /todos        - List / create        │
//	│    /todos/{id}   - Delete               │
//	├─────────────────────────────────────────┤
//	│  Components:                            │
//	│    api.Server          - Handlers       │
//	│    storage.MemoryStore - Todo items     │
//	└─────────────────────────────────────────┘
//
// Configuration:
//   - PORT: Listen port (default: "3000")
//
// A .env file in the working directory is read first; variables already
// set in the environment win over it.
//
// Example usage:
//
//	PORT=8080 ./server
//
//	curl -X POST localhost:8080/todos -d '{"title":"Buy groceries"}'
//	curl localhost:8080/todos
//	curl -X DELETE localhost:8080/todos/1
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dreamware/todolist/internal/api"
	"github.com/dreamware/todolist/internal/storage"
)

// defaultPort is used when PORT is unset or empty.
const defaultPort = "3000"

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 5 * time.Second

// logFatal is a variable to allow mocking fatal exits in tests.
var logFatal = func(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

// config holds everything the server reads from its environment.
type config struct {
	Port string
}

// addr returns the listen address for the configured port.
func (c config) addr() string {
	return net.JoinHostPort("", c.Port)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig(".env")
	if err != nil {
		logFatal("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logFatal("server: %v", err)
	}
}

// loadConfig reads the optional dotenv file, then the environment.
//
// A missing dotenv file is not an error; a malformed one is.
func loadConfig(dotenv string) (config, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load %s: %w", dotenv, err)
	}
	return config{
		Port: getenv("PORT", defaultPort),
	}, nil
}

// run serves the todo API until ctx is canceled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.addr(), err)
	}
	return serve(ctx, ln, logger)
}

// serve runs the HTTP server on ln until ctx is done.
func serve(ctx context.Context, ln net.Listener, logger *slog.Logger) error {
	store := storage.NewMemoryStore()
	srv := api.NewServer(store, logger)

	s := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("todo app running", "url", "http://"+displayAddr(ln.Addr()))
		if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped", "todos", store.Len())
	return nil
}

// displayAddr renders a listener address as localhost:port.
func displayAddr(a net.Addr) string {
	if tcp, ok := a.(*net.TCPAddr); ok {
		return net.JoinHostPort("localhost", fmt.Sprint(tcp.Port))
	}
	return a.String()
}

// getenv retrieves an environment variable with a default fallback value.
//
// Example:
//
//	port := getenv("PORT", "3000")
//	// Returns $PORT if set and non-empty, otherwise "3000"
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
