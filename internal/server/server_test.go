package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/config"
	"github.com/hearthapp/hearth/internal/server"
)

func openStore(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "nested", "hearth.db"),
	}
}

func waitForAddr(t *testing.T, srv *server.Server) string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if addr := srv.Addr(); addr != "" {
			return addr
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not start listening")
	return ""
}

func TestServer_StartAndShutdown(t *testing.T) {
	store, err := server.OpenStore(context.Background(), openStore(t), zap.NewNop())
	require.NoError(t, err)

	srv := server.New(server.Options{Addr: "localhost:0"}, store, nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	addr := waitForAddr(t, srv)

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/health", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Error("server did not stop after shutdown")
	}

	// The store is closed with the server.
	assert.Error(t, store.Ping(context.Background()))
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	store, err := server.OpenStore(context.Background(), openStore(t), zap.NewNop())
	require.NoError(t, err)

	srv := server.New(server.Options{Addr: "localhost:0", ShutdownTimeout: time.Second}, store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe(ctx)
	}()

	waitForAddr(t, srv)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	store, err := server.OpenStore(context.Background(), openStore(t), zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	srv := server.New(server.Options{}, store, nil)
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.Empty(t, srv.Addr())
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := server.OpenStore(context.Background(), config.DatabaseConfig{Driver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}
