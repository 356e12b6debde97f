// Package store holds the ordered in-memory collection of call records.
// Records are prepended on arrival and never reordered afterwards.
package store

import (
	"sync"

	"github.com/mglaser/bankdesk/internal/types"
)

// CallStore is the owner of the durable call record list
type CallStore struct {
	mu      sync.RWMutex
	records []types.CallRecord
	index   map[string]int // id -> position in records
}

// New creates an empty CallStore
func New() *CallStore {
	return &CallStore{
		records: make([]types.CallRecord, 0),
		index:   make(map[string]int),
	}
}

// NewSeeded creates a CallStore preloaded with the historical reference
// records, newest first.
func NewSeeded() *CallStore {
	s := New()
	seed := seedCalls()
	for i := len(seed) - 1; i >= 0; i-- {
		s.InsertFront(seed[i])
	}
	return s
}

// InsertFront prepends a record. A record whose id already exists is
// ignored; ids are unique store-wide.
func (s *CallStore) InsertFront(record types.CallRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[record.ID]; exists {
		return false
	}

	s.records = append([]types.CallRecord{record}, s.records...)
	for id, pos := range s.index {
		s.index[id] = pos + 1
	}
	s.index[record.ID] = 0
	return true
}

// UpdateByID replaces the record with the matching id. Unknown ids are a
// no-op, not an error; callers that need confirmation use FindByID.
func (s *CallStore) UpdateByID(id string, record types.CallRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return
	}
	record.ID = id
	s.records[pos] = record
}

// Upsert updates the record in place if present, otherwise prepends it
func (s *CallStore) Upsert(record types.CallRecord) {
	s.mu.Lock()
	pos, ok := s.index[record.ID]
	if ok {
		s.records[pos] = record
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.InsertFront(record)
}

// FindByID returns the record with the given id
func (s *CallStore) FindByID(id string) (types.CallRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return types.CallRecord{}, false
	}
	return s.records[pos], true
}

// Filter returns all records matching the predicate, in store order
func (s *CallStore) Filter(pred func(types.CallRecord) bool) []types.CallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.CallRecord, 0)
	for _, r := range s.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of every record in store order
func (s *CallStore) All() []types.CallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.CallRecord, len(s.records))
	copy(out, s.records)
	return out
}

// CountByStatus returns the number of records in the given status
func (s *CallStore) CountByStatus(status types.CallStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.records {
		if r.Status == status {
			count++
		}
	}
	return count
}

// Len returns the number of stored records
func (s *CallStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
