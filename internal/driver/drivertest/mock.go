// Package drivertest provides an in-memory GraphDriver for tests.
package drivertest

import (
	"context"
	"strings"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type Call struct {
	Query  string
	Params map[string]any
}

// MockDriver records every query it is given. Respond, when set, decides
// the result; otherwise MockResult and Err are returned. Safe for
// concurrent use.
type MockDriver struct {
	MockResult neo4j.EagerResult
	Err        error
	Respond    func(query string, params map[string]any) (neo4j.EagerResult, error)

	IndicesBuilt bool

	mu    sync.Mutex
	calls []Call
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Query: query, Params: params})
	m.mu.Unlock()

	if m.Respond != nil {
		return m.Respond(query, params)
	}
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IndicesBuilt = true
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// LastCall returns the most recent call, or the zero Call.
func (m *MockDriver) LastCall() Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}
	}
	return m.calls[len(m.calls)-1]
}

// CallsContaining returns the calls whose query contains substr.
func (m *MockDriver) CallsContaining(substr string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if strings.Contains(c.Query, substr) {
			out = append(out, c)
		}
	}
	return out
}

// NodeResult builds a one-column result with a node per props map under
// key "n".
func NodeResult(label string, props ...map[string]any) neo4j.EagerResult {
	records := make([]*neo4j.Record, 0, len(props))
	for _, p := range props {
		records = append(records, &neo4j.Record{
			Keys:   []string{"n"},
			Values: []any{neo4j.Node{Labels: []string{label}, Props: p}},
		})
	}
	return neo4j.EagerResult{Keys: []string{"n"}, Records: records}
}

// ValueResult builds a single-record result with one column.
func ValueResult(key string, value any) neo4j.EagerResult {
	return neo4j.EagerResult{
		Keys:    []string{key},
		Records: []*neo4j.Record{{Keys: []string{key}, Values: []any{value}}},
	}
}
