// Package protocoltest provides a scripted API server for tests of code
// built on the protocol client.
package protocoltest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol"
	"github.com/bytedance/sonic"
)

var namePattern = regexp.MustCompile(`^\s*(?:query|mutation|subscription)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// Request is one received operation
type Request struct {
	Operation string
	Query     string
	Variables map[string]interface{}
	Header    http.Header
}

// Response scripts the reply for an operation
type Response struct {
	Status int    // defaults to 200
	Body   string // raw response body
}

// Server answers operations by name with scripted responses
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	requests  []Request
}

// NewServer starts a server closed at test cleanup
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{responses: make(map[string]Response)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Client returns a protocol client pointed at the server
func (s *Server) Client(t testing.TB, tokens protocol.TokenSource, attach bool) *protocol.Client {
	t.Helper()
	return s.ClientWith(t, func(o *protocol.Options) {
		o.Tokens = tokens
		o.AttachToken = attach
	})
}

// ClientWith returns a client for the server after applying mutate
func (s *Server) ClientWith(t testing.TB, mutate func(*protocol.Options)) *protocol.Client {
	t.Helper()
	opts := protocol.Options{Endpoint: s.URL}
	if mutate != nil {
		mutate(&opts)
	}
	c, err := protocol.NewClient(opts)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

// On scripts a 200 response with body for operation
func (s *Server) On(operation, body string) {
	s.OnStatus(operation, http.StatusOK, body)
}

// OnStatus scripts a response with an explicit status
func (s *Server) OnStatus(operation string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[operation] = Response{Status: status, Body: body}
}

// Requests returns the operations received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request
func (s *Server) Last() (Request, bool) {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}, false
	}
	return reqs[len(reqs)-1], true
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := sonic.Unmarshal(raw, &body); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	name := "anonymous"
	if m := namePattern.FindStringSubmatch(body.Query); m != nil {
		name = m[1]
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Operation: name,
		Query:     body.Query,
		Variables: body.Variables,
		Header:    r.Header.Clone(),
	})
	resp, ok := s.responses[name]
	s.mu.Unlock()

	if !ok {
		resp = Response{Body: `{"errors":[{"message":"unknown operation ` + name + `"}]}`}
	}
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}
