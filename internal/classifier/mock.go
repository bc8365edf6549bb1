package classifier

import (
	"context"
	"sync"

	"github.com/abhisek/bcdetect/internal/features"
)

// MockResponse is a canned response for the MockClassifier.
type MockResponse struct {
	Labels []int64
	Err    error
}

// MockClassifier is a deterministic Classifier for testing.
// It returns canned responses in FIFO order and records all calls.
type MockClassifier struct {
	mu        sync.Mutex
	responses []MockResponse
	fallback  *MockResponse
	Calls     [][]features.Row
}

// NewMockClassifier creates a MockClassifier with the given canned responses.
func NewMockClassifier(responses ...MockResponse) *MockClassifier {
	return &MockClassifier{responses: responses}
}

// Predict returns the next canned response. With the queue empty it returns
// the fallback if one is set, otherwise ErrNoResponse.
func (m *MockClassifier) Predict(_ context.Context, rows []features.Row) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]features.Row, len(rows))
	for i, r := range rows {
		copied[i] = append(features.Row(nil), r...)
	}
	m.Calls = append(m.Calls, copied)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.fallback != nil:
		resp = *m.fallback
	default:
		return nil, &ErrNoResponse{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Labels, nil
}

// ModelID returns "mock".
func (m *MockClassifier) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockClassifier) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// SetFallback sets the response served whenever the queue is empty.
func (m *MockClassifier) SetFallback(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &resp
}

// CallCount returns the number of Predict calls made.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
