package velocitybloom

import "sync"

// SyncFilter guards a Filter for use from multiple goroutines.
type SyncFilter[T ByteView] struct {
	mu     sync.RWMutex // Lock to protect the filter.
	filter *Filter[T]
}

// NewSync wraps f. The caller must not use f directly afterwards.
func NewSync[T ByteView](f *Filter[T]) *SyncFilter[T] {
	return &SyncFilter[T]{filter: f}
}

// Insert adds value under the write lock.
func (s *SyncFilter[T]) Insert(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Insert(value)
}

// Contains queries value under the read lock.
func (s *SyncFilter[T]) Contains(value T) ContainsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Contains(value)
}

// Bits returns the length of the bit array.
func (s *SyncFilter[T]) Bits() uint {
	return s.filter.Bits()
}

// Words returns a copy of the packed bit array taken under the read lock.
func (s *SyncFilter[T]) Words() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Words()
}
