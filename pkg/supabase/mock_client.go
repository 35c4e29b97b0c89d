package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockClient answers procedure calls from in-memory fixtures. It backs the demo
// mode and tests.
type MockClient struct {
	mu       sync.RWMutex
	payloads map[string]json.RawMessage
	errs     map[string]error
	calls    map[string]int
}

// NewMockClient builds a mock from procedure → JSON payload fixtures.
func NewMockClient(fixtures map[string]json.RawMessage) *MockClient {
	m := &MockClient{
		payloads: make(map[string]json.RawMessage, len(fixtures)),
		errs:     map[string]error{},
		calls:    map[string]int{},
	}
	for name, payload := range fixtures {
		m.payloads[name] = append(json.RawMessage(nil), payload...)
	}
	return m
}

// Set replaces a fixture.
func (m *MockClient) Set(procedure string, payload json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[procedure] = append(json.RawMessage(nil), payload...)
	delete(m.errs, procedure)
}

// Fail makes the procedure return err until Set is called again.
func (m *MockClient) Fail(procedure string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[procedure] = err
}

// Calls reports how many times a procedure was called.
func (m *MockClient) Calls(procedure string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[procedure]
}

// Call implements admin.ProcedureCaller.
func (m *MockClient) Call(ctx context.Context, procedure string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[procedure]++
	if err := m.errs[procedure]; err != nil {
		return nil, err
	}
	payload, ok := m.payloads[procedure]
	if !ok {
		return nil, &RemoteError{
			Status:  404,
			Code:    "PGRST202",
			Message: fmt.Sprintf("Could not find the function public.%s without parameters in the schema cache", procedure),
		}
	}
	return append(json.RawMessage(nil), payload...), nil
}
