package mock

import (
	"context"
	"sync"
)

// MockGenerator is a test double for ai.Generator.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Response is returned.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// Response is the fixed completion used when GenerateFunc is nil.
	Response string

	mu      sync.Mutex
	prompts []string
}

// NewMockGenerator creates a generator that always answers with response.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

// Generate records the prompt and returns the configured completion.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return m.Response, nil
}

// CallCount returns the number of Generate calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt received, in call order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears recorded prompts and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.GenerateFunc = nil
}
