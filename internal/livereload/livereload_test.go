package livereload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/packlane/internal/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

// startServer binds a server on an ephemeral port and returns its base URL.
func startServer(t *testing.T, root, staticDir string) (*Server, string) {
	t.Helper()
	s := New(root, staticDir, "127.0.0.1:0")
	require.NoError(t, s.Start(testContext()))
	t.Cleanup(func() { s.Close() })
	return s, fmt.Sprintf("http://%s", s.Addr())
}

func TestServer_ServesRootAndStatic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	staticDir := filepath.Join(root, "static")
	require.NoError(t, os.MkdirAll(staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "logo.svg"), []byte("<svg/>"), 0o644))

	_, baseURL := startServer(t, root, staticDir)

	resp, err := http.Get(baseURL + "/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html>app</html>", string(body))

	resp, err = http.Get(baseURL + "/static/logo.svg")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_BroadcastReachesClient(t *testing.T) {
	t.Parallel()

	s, baseURL := startServer(t, t.TempDir(), t.TempDir())

	opts := socket.DefaultOptions()
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	client := manager.Socket("/", opts)
	defer client.Disconnect()

	connected := make(chan struct{}, 1)
	reloaded := make(chan struct{}, 1)
	client.On(types.EventName("connect"), func(...any) {
		connected <- struct{}{}
	})
	client.On(types.EventName(ReloadEvent), func(...any) {
		reloaded <- struct{}{}
	})
	client.Connect()

	select {
	case <-connected:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for client connection")
	}

	s.Broadcast()

	select {
	case <-reloaded:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}
}

func TestServer_AddrBeforeStart(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir(), t.TempDir(), ":35729")
	assert.Equal(t, ":35729", s.Addr())
}

func TestServer_BindFailure(t *testing.T) {
	t.Parallel()

	s, _ := startServer(t, t.TempDir(), t.TempDir())

	other := New(t.TempDir(), t.TempDir(), s.Addr())
	assert.Error(t, other.Start(testContext()))
}
