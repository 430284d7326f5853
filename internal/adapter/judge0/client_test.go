package judge0_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/crucible-dev/crucible/internal/adapter/judge0"
	"github.com/crucible-dev/crucible/internal/config"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newClient(serverURL string) *judge0.Client {
	return judge0.NewClient(&config.BackendConfig{
		Url:            serverURL,
		RequestTimeout: 5 * time.Second,
	}, nopLogger{})
}

func TestListLanguages(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/languages" {
			t.Errorf("path = %s, want /languages", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 71, "name": "Python (3.8.1)", "aliases": ["py"]},
			{"id": 60, "name": "Go (1.13.5)"}
		]`))
	}))
	defer srv.Close()

	entries, err := newClient(srv.URL).ListLanguages(context.Background())
	if err != nil {
		t.Fatalf("ListLanguages: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != 71 || entries[0].Name != "Python (3.8.1)" || len(entries[0].Aliases) != 1 {
		t.Errorf("first entry = %+v", entries[0])
	}
}

func TestListLanguagesServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newClient(srv.URL).ListLanguages(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestExecuteSuccess(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submissions" {
			t.Errorf("request = %s %s, want POST /submissions", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("wait") != "true" {
			t.Error("wait=true query parameter missing")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"stdout": "hi\n",
			"time": "0.002",
			"memory": 1024,
			"status": {"id": 3, "description": "Accepted"}
		}`))
	}))
	defer srv.Close()

	outcome := newClient(srv.URL).Execute(context.Background(), 71, "print('hi')", time.Second)
	if outcome.Failed() {
		t.Fatalf("Execute failed: %s", outcome.FailureReason)
	}

	result := outcome.Result
	if result.Stdout != "hi\n" {
		t.Errorf("stdout = %q, want %q", result.Stdout, "hi\n")
	}
	if result.ExecutionTimeMs != 2 {
		t.Errorf("time = %d ms, want 2", result.ExecutionTimeMs)
	}
	if result.MemoryUsedKb != 1024 {
		t.Errorf("memory = %d kb, want 1024", result.MemoryUsedKb)
	}
	if result.StatusID != 3 || result.StatusDescription != "Accepted" {
		t.Errorf("status = (%d, %q), want (3, Accepted)", result.StatusID, result.StatusDescription)
	}
}

func TestExecuteBackendError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	outcome := newClient(srv.URL).Execute(context.Background(), 71, "print('hi')", time.Second)
	if !outcome.Failed() {
		t.Fatal("expected failure for 503 response")
	}
	if !strings.Contains(outcome.FailureReason, "status 503") {
		t.Errorf("reason = %q, want the backend status surfaced", outcome.FailureReason)
	}
}

func TestExecuteMalformedResponse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "missing status", body: "{}"},
		{name: "zero status id", body: `{"status": {"id": 0}}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			outcome := newClient(srv.URL).Execute(context.Background(), 71, "print('hi')", time.Second)
			if !outcome.Failed() {
				t.Fatal("expected failure for malformed response")
			}
			if !strings.Contains(outcome.FailureReason, "malformed") {
				t.Errorf("reason = %q, want malformed-response failure", outcome.FailureReason)
			}
		})
	}
}

func TestExecuteTimeout(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	outcome := newClient(srv.URL).Execute(context.Background(), 71, "while True: pass", 30*time.Millisecond)
	if !outcome.Failed() {
		t.Fatal("expected failure for timed-out execution")
	}
	if !strings.Contains(outcome.FailureReason, "timed out") {
		t.Errorf("reason = %q, want a timeout indication", outcome.FailureReason)
	}
}

func TestExecuteBackendUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	outcome := newClient(srv.URL).Execute(context.Background(), 71, "print('hi')", time.Second)
	if !outcome.Failed() {
		t.Fatal("expected failure for unreachable backend")
	}
	if !strings.Contains(outcome.FailureReason, "unreachable") {
		t.Errorf("reason = %q, want an unreachable indication", outcome.FailureReason)
	}
}
