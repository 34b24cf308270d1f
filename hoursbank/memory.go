package hoursbank

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// MEMORY LEDGER - In-memory implementation (for testing/dev)
// =============================================================================

type MemoryLedger struct {
	mu          sync.RWMutex
	entries     map[timeclock.EmployeeID][]Entry
	idempotency map[string]bool
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		entries:     make(map[timeclock.EmployeeID][]Entry),
		idempotency: make(map[string]bool),
	}
}

func (m *MemoryLedger) Append(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.IdempotencyKey != "" && m.idempotency[e.IdempotencyKey] {
		return ErrDuplicateIdempotencyKey
	}

	list := m.entries[e.EmployeeID]
	// Insert keeping date order so statements read chronologically.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Date.After(e.Date)
	})
	list = append(list, Entry{})
	copy(list[i+1:], list[i:])
	list[i] = e
	m.entries[e.EmployeeID] = list

	if e.IdempotencyKey != "" {
		m.idempotency[e.IdempotencyKey] = true
	}
	return nil
}

// Entries returns entries in [from, to]; a zero bound is open-ended.
func (m *MemoryLedger) Entries(_ context.Context, employeeID timeclock.EmployeeID, from, to time.Time) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Entry
	for _, e := range m.entries[employeeID] {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *MemoryLedger) BalanceMinutes(_ context.Context, employeeID timeclock.EmployeeID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, e := range m.entries[employeeID] {
		total += e.DeltaMinutes
	}
	return total, nil
}

// =============================================================================
// MEMORY REQUEST STORE
// =============================================================================

type MemoryRequests struct {
	mu       sync.RWMutex
	requests map[string]OvertimeRequest
}

func NewMemoryRequests() *MemoryRequests {
	return &MemoryRequests{requests: make(map[string]OvertimeRequest)}
}

func (m *MemoryRequests) SaveRequest(_ context.Context, r OvertimeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.ID] = r
	return nil
}

func (m *MemoryRequests) GetRequest(_ context.Context, id string) (*OvertimeRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return &r, nil
}

func (m *MemoryRequests) ListRequests(_ context.Context, status OvertimeStatus) ([]OvertimeRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []OvertimeRequest
	for _, r := range m.requests {
		if status == "" || r.Status == status {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *MemoryRequests) UpdateRequest(_ context.Context, r OvertimeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[r.ID]; !ok {
		return ErrRequestNotFound
	}
	m.requests[r.ID] = r
	return nil
}
