// Package viewstate keeps per-user UI expansion state for list rows
// (e.g. which inventory products show their variants).
package viewstate

import (
	"context"
	"sort"
	"sync"
)

// Store holds one set of expanded row ids per scope (typically a profile id
// plus a view name).
type Store interface {
	// Toggle flips id and returns whether it is now expanded.
	Toggle(ctx context.Context, scope, id string) (bool, error)
	Expanded(ctx context.Context, scope string) ([]string, error)
	ExpandAll(ctx context.Context, scope string, ids []string) error
	CollapseAll(ctx context.Context, scope string) error
}

// ToggleAll collapses everything when every visible id is already expanded,
// otherwise expands exactly the visible ids. It returns the resulting set.
func ToggleAll(ctx context.Context, s Store, scope string, visible []string) ([]string, error) {
	current, err := s.Expanded(ctx, scope)
	if err != nil {
		return nil, err
	}
	expanded := make(map[string]struct{}, len(current))
	for _, id := range current {
		expanded[id] = struct{}{}
	}

	all := len(visible) > 0
	for _, id := range visible {
		if _, ok := expanded[id]; !ok {
			all = false
			break
		}
	}

	if all {
		return []string{}, s.CollapseAll(ctx, scope)
	}
	if err := s.ExpandAll(ctx, scope, visible); err != nil {
		return nil, err
	}
	out := append([]string(nil), visible...)
	sort.Strings(out)
	return out, nil
}

// Memory is an in-process Store.
type Memory struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{sets: make(map[string]map[string]struct{})}
}

func (m *Memory) Toggle(_ context.Context, scope, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.sets[scope]
	if _, ok := set[id]; ok {
		delete(set, id)
		return false, nil
	}
	if set == nil {
		set = make(map[string]struct{})
		m.sets[scope] = set
	}
	set[id] = struct{}{}
	return true, nil
}

func (m *Memory) Expanded(_ context.Context, scope string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sets[scope]))
	for id := range m.sets[scope] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Memory) ExpandAll(_ context.Context, scope string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	m.sets[scope] = set
	return nil
}

func (m *Memory) CollapseAll(_ context.Context, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, scope)
	return nil
}
