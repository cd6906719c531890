package reportserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestServeOnShutsDownWithContext ensures cancellation stops the server cleanly.
func TestServeOnShutsDownWithContext(t *testing.T) {
	dir := t.TempDir()
	handler, err := NewHandler(Config{ExportDir: dir})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveOn(ctx, ln, withAccessLog(handler, zerolog.Nop()), zerolog.Nop()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "No exported results yet") {
		t.Fatalf("unexpected index: %d %s", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(2 * shutdownGrace):
		t.Fatalf("server did not stop")
	}
}

// TestServeReportsBindFailure ensures a taken port fails before serving.
func TestServeReportsBindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	err = Serve(context.Background(), Config{Addr: ln.Addr().String(), ExportDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
}

// TestAccessLogRecordsStatus ensures the recorder captures handler status codes.
func TestAccessLogRecordsStatus(t *testing.T) {
	var buf strings.Builder
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	handler := withAccessLog(http.NotFoundHandler(), log)
	resp := get(t, handler, "/missing")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if !strings.Contains(buf.String(), `"status":404`) {
		t.Fatalf("expected status in access log, got %s", buf.String())
	}
}
