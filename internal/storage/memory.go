package storage

import "errors"

var errWriteFailed = errors.New("storage: write failed")

// MemoryKV is a map-backed store for tests and throwaway sessions.
type MemoryKV struct {
	data map[string][]byte

	// FailWrites makes Set return an error, for exercising the store's
	// swallow-and-continue persistence path in tests.
	FailWrites bool

	// SetCalls counts writes, so tests can assert persistence happened.
	SetCalls int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (s *MemoryKV) Get(key string) ([]byte, error) {
	value, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (s *MemoryKV) Set(key string, value []byte) error {
	s.SetCalls++
	if s.FailWrites {
		return errWriteFailed
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *MemoryKV) Remove(key string) error {
	delete(s.data, key)
	return nil
}

func (s *MemoryKV) Close() error {
	return nil
}
