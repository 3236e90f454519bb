package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// MockTranslator mocks a translation provider. It is safe for concurrent use.
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Delays       map[string]time.Duration

	mu    sync.Mutex
	calls []string
}

// Name returns the provider name
func (m *MockTranslator) Name() string {
	return "mock"
}

// Translate returns the configured translation, error, or a default
func (m *MockTranslator) Translate(ctx context.Context, word, targetLang string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fmt.Sprintf("%s->%s", word, targetLang))
	m.mu.Unlock()

	if d, ok := m.Delays[word]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err, ok := m.Errors[word]; ok {
		return "", err
	}

	if translation, ok := m.Translations[word]; ok {
		return translation, nil
	}

	return fmt.Sprintf("mock translation of %s", word), nil
}

// Calls returns the recorded calls in the order they were made
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MockCorpusServer serves body at any path and counts the requests
type MockCorpusServer struct {
	*httptest.Server
	hits atomic.Int32
}

// NewMockCorpusServer starts a server answering every request with status
// and body. It is closed when the test ends.
func NewMockCorpusServer(t *testing.T, status int, body []byte) *MockCorpusServer {
	t.Helper()

	m := &MockCorpusServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(m.Close)
	return m
}

// Hits returns the number of requests served
func (m *MockCorpusServer) Hits() int {
	return int(m.hits.Load())
}
