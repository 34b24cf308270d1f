package leave

import (
	"context"
	"sort"
	"sync"

	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// MEMORY VACATION STORE - In-memory implementation (for testing/dev)
// =============================================================================

type MemoryVacations struct {
	mu       sync.RWMutex
	requests map[string]VacationRequest
}

func NewMemoryVacations() *MemoryVacations {
	return &MemoryVacations{requests: make(map[string]VacationRequest)}
}

func (m *MemoryVacations) SaveVacation(_ context.Context, r VacationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.ID] = r
	return nil
}

func (m *MemoryVacations) GetVacation(_ context.Context, id string) (*VacationRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return &r, nil
}

// ListVacations filters by employee and status; empty values match all.
func (m *MemoryVacations) ListVacations(_ context.Context, employeeID timeclock.EmployeeID, status Status) ([]VacationRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []VacationRequest
	for _, r := range m.requests {
		if employeeID != "" && r.EmployeeID != employeeID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *MemoryVacations) UpdateVacation(_ context.Context, r VacationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[r.ID]; !ok {
		return ErrRequestNotFound
	}
	m.requests[r.ID] = r
	return nil
}

// =============================================================================
// MEMORY DAY-OFF STORE
// =============================================================================

type MemoryDayOffs struct {
	mu       sync.RWMutex
	requests map[string]DayOffRequest
}

func NewMemoryDayOffs() *MemoryDayOffs {
	return &MemoryDayOffs{requests: make(map[string]DayOffRequest)}
}

func (m *MemoryDayOffs) SaveDayOff(_ context.Context, r DayOffRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.ID] = r
	return nil
}

func (m *MemoryDayOffs) GetDayOff(_ context.Context, id string) (*DayOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return &r, nil
}

func (m *MemoryDayOffs) ListDayOffs(_ context.Context, employeeID timeclock.EmployeeID, status Status) ([]DayOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []DayOffRequest
	for _, r := range m.requests {
		if employeeID != "" && r.EmployeeID != employeeID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *MemoryDayOffs) UpdateDayOff(_ context.Context, r DayOffRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[r.ID]; !ok {
		return ErrRequestNotFound
	}
	m.requests[r.ID] = r
	return nil
}
