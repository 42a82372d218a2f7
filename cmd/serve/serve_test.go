package serve_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/expense-ledger/cmd/serve"
	"fjacquet/expense-ledger/internal/classifier"
	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.NotNil(t, serve.Cmd.RunE)
	assert.NotNil(t, serve.Cmd.Flags().Lookup("addr"))
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Ledger.File = filepath.Join(t.TempDir(), "expenses.csv")
	cfg.Categories.Profile = "budget"
	cfg.AI.Provider = classifier.ProviderStatic
	cfg.AI.TimeoutSeconds = 5
	cfg.Server.AllowedOrigins = []string{"*"}

	logger := logging.NewMockLogger()
	c, err := container.NewContainer(context.Background(), cfg, container.WithLogger(logger))
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve.Run(ctx, listener, c) }()

	url := fmt.Sprintf("http://%s/health", listener.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) // #nosec G107 -- test server
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, logger.HasEntry("INFO", "Server stopped gracefully"))
}

func TestNewHTTPServer_RoutesServerErrorsToLogger(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Ledger.File = filepath.Join(t.TempDir(), "expenses.csv")
	cfg.Categories.Profile = "budget"
	cfg.AI.Provider = classifier.ProviderStatic
	cfg.AI.TimeoutSeconds = 5

	logger := logging.NewMockLogger()
	c, err := container.NewContainer(context.Background(), cfg, container.WithLogger(logger))
	require.NoError(t, err)

	srv := serve.NewHTTPServer(c)
	require.NotNil(t, srv.ErrorLog)
	assert.Equal(t, 2*cfg.AITimeout(), srv.WriteTimeout)

	srv.ErrorLog.Print("http: Accept error: too many open files")
	assert.True(t, logger.HasEntry("ERROR", "http: Accept error: too many open files"))
}
