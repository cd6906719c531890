package testutil

import (
	"net/http/httptest"
	"testing"
	"time"
)

// ServerConfig wires dependencies for StartServer.
type ServerConfig struct {
	Now          func() time.Time
	StrictExpiry bool
}

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL string
	APIURL  string
	Exams   *ExamServer
	Close   func()
}

// StartServer launches an in-memory exam API server closed at test cleanup.
func StartServer(t testing.TB, cfg ServerConfig) *ServerInstance {
	t.Helper()
	exams := NewExamServer(ExamServerConfig{Now: cfg.Now, StrictExpiry: cfg.StrictExpiry})
	server := httptest.NewServer(exams.Handler())
	t.Cleanup(server.Close)
	return &ServerInstance{
		BaseURL: server.URL,
		APIURL:  server.URL + "/api/v1",
		Exams:   exams,
		Close:   server.Close,
	}
}
