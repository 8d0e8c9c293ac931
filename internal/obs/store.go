// Package obs holds the per-request trace store, aggregate metrics, and the
// trace report generator.
package obs

import (
	"container/list"
	"sync"
	"time"

	"github.com/alexanderramin/itinera/internal/contract"
)

// Store retains traces up to a fixed cap, evicting the oldest completed
// trace first. Open traces are only evicted when no completed one remains.
type Store struct {
	mu    sync.Mutex
	cap   int
	order *list.List // front = oldest, holds request ids
	byID  map[string]*storedTrace
}

type storedTrace struct {
	trace *contract.Trace
	elem  *list.Element
}

func NewStore(cap int) *Store {
	if cap <= 0 {
		cap = 256
	}
	return &Store{
		cap:   cap,
		order: list.New(),
		byID:  make(map[string]*storedTrace),
	}
}

// Open creates and retains a new trace for the request.
func (s *Store) Open(requestID string) *contract.Trace {
	tr := &contract.Trace{
		RequestID: requestID,
		StartTime: time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.byID[requestID]; ok {
		// Reopening replaces the previous trace in place.
		st.trace = tr
		return tr
	}
	s.evictLocked()
	elem := s.order.PushBack(requestID)
	s.byID[requestID] = &storedTrace{trace: tr, elem: elem}
	return tr
}

// Close stamps the end time.
func (s *Store) Close(tr *contract.Trace) {
	now := time.Now()
	s.mu.Lock()
	tr.EndTime = &now
	s.mu.Unlock()
}

// Get returns the stored trace, or nil.
func (s *Store) Get(requestID string) *contract.Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.byID[requestID]; ok {
		return st.trace
	}
	return nil
}

// Len reports the number of retained traces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *Store) evictLocked() {
	if len(s.byID) < s.cap {
		return
	}
	// Prefer the oldest completed trace.
	for e := s.order.Front(); e != nil; e = e.Next() {
		id := e.Value.(string)
		if st := s.byID[id]; st.trace.EndTime != nil {
			s.order.Remove(e)
			delete(s.byID, id)
			return
		}
	}
	if e := s.order.Front(); e != nil {
		id := e.Value.(string)
		s.order.Remove(e)
		delete(s.byID, id)
	}
}
