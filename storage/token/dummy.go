package token

import "sync"

// DummyStore is an in-memory Store for tests.
type DummyStore struct {
	mu    sync.Mutex
	token string

	// call counters, handy in tests
	Gets, Sets, Clears int
}

var _ Store = (*DummyStore)(nil)

func NewDummyStore(token string) *DummyStore {
	return &DummyStore{token: token}
}

func (s *DummyStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets++
	return s.token, nil
}

func (s *DummyStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sets++
	s.token = token
	return nil
}

func (s *DummyStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clears++
	s.token = ""
	return nil
}
