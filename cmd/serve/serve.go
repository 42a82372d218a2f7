// Package serve runs the HTTP API
package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 30 * time.Second

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the expense tracker HTTP API",
	Long: `Serve the expense tracker over HTTP: add and classify expenses, list the
history and fetch the 50/30/20 summary as JSON.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := root.NewContainer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	listenAddr := addr
	if listenAddr == "" {
		listenAddr = c.GetConfig().Server.Addr
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	return Run(ctx, listener, c)
}

// NewHTTPServer builds the http.Server for the container's services.
func NewHTTPServer(c *container.Container) *http.Server {
	if c.GetConfig().Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(c.GetTracker(), c.GetLogger(), server.Options{
		AllowedOrigins: c.GetConfig().Server.AllowedOrigins,
	})

	return &http.Server{
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   2 * c.GetConfig().AITimeout(),
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
		ErrorLog:       logging.NewStdLogger(c.GetLogger()),
	}
}

// Run serves on listener until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, listener net.Listener, c *container.Container) error {
	srv := NewHTTPServer(c)
	logger := c.GetLogger()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expense-ledger server", logging.Field{Key: "addr", Value: listener.Addr().String()})
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
