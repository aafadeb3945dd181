// Package httpx provides a stub HTTP server for tests that exercise HTTP clients.
// It serves canned responses per path and records every request it receives,
// so assertions can cover both what was returned and what was asked.
package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/tidewater-io/util/syncx"
)

// Stub is a canned response for a single path.
// When Handler is set it takes over completely and the other fields are ignored.
type Stub struct {
	Status      int
	ContentType string
	Body        []byte
	Handler     http.HandlerFunc
}

// RecordedRequest captures one request received by the [Server].
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Server is a test-only HTTP server with per-path canned responses.
// Unstubbed paths return 404. Stubs may be added or replaced while the server is running.
type Server struct {
	mux      sync.Mutex
	server   *httptest.Server
	stubs    map[string]Stub
	requests []RecordedRequest
}

// NewServer starts a [Server] on a local ephemeral port.
// Callers should defer [Server.Close].
func NewServer() *Server {
	s := &Server{stubs: map[string]Stub{}}
	s.server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	// Recording consumed the body, so restore it for custom handlers.
	r.Body = io.NopCloser(bytes.NewReader(body))
	var (
		stub  Stub
		found bool
	)
	syncx.Locked(&s.mux, func() {
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		stub, found = s.stubs[r.URL.Path]
	})
	if !found {
		http.NotFound(w, r)
		return
	}
	if stub.Handler != nil {
		stub.Handler(w, r)
		return
	}
	if len(stub.ContentType) > 0 {
		w.Header().Set("Content-Type", stub.ContentType)
	}
	status := stub.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(stub.Body)
}

// Stub registers or replaces the canned response for path, returning the same [Server] for chaining.
func (s *Server) Stub(path string, stub Stub) *Server {
	syncx.Locked(&s.mux, func() {
		s.stubs[path] = stub
	})
	return s
}

// StubText registers a plain-text response for path.
func (s *Server) StubText(path string, status int, body string) *Server {
	return s.Stub(path, Stub{Status: status, ContentType: "text/plain", Body: []byte(body)})
}

// StubJSON registers a JSON response for path, marshalling payload.
// Marshalling failures panic, since they indicate a broken test fixture.
func (s *Server) StubJSON(path string, status int, payload any) *Server {
	data, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("stubbing %s: %v", path, err))
	}
	return s.Stub(path, Stub{Status: status, ContentType: "application/json", Body: data})
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return s.server.URL
}

// Requests returns a copy of every request received so far, in arrival order.
func (s *Server) Requests() []RecordedRequest {
	s.mux.Lock()
	defer s.mux.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Reset clears recorded requests while keeping registered stubs.
func (s *Server) Reset() {
	syncx.Locked(&s.mux, func() {
		s.requests = nil
	})
}

// Close shuts the server down and blocks until outstanding requests finish.
func (s *Server) Close() {
	s.server.Close()
}
