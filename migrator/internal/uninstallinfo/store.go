package uninstallinfo

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrValueNotFound is returned by a Store when the requested value is not set
	ErrValueNotFound = errors.New("value not found")
	// ErrKeyNotFound is returned by a Store when the requested entry does not exist
	ErrKeyNotFound = errors.New("key not found")
)

// Store is a read-only view of the per-user uninstall entries
type Store interface {
	// SubKeys lists the entry names. A missing uninstall root yields an empty list.
	SubKeys() ([]string, error)
	// StringValue reads a string value of an entry
	StringValue(key, name string) (string, error)
}

// Writer creates and removes uninstall entries
type Writer interface {
	WriteKey(key string, values Values) error
	DeleteKey(key string) error
}

// ReadWriter is a Store that can also be modified
type ReadWriter interface {
	Store
	Writer
}

// Values holds the typed values of one uninstall entry
type Values struct {
	Strings map[string]string
	DWords  map[string]uint32
}

// MemoryStore keeps uninstall entries in memory
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Values
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Values)}
}

func (s *MemoryStore) SubKeys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) StringValue(key, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	value, ok := entry.Strings[name]
	if !ok {
		return "", ErrValueNotFound
	}
	return value, nil
}

// DWordValue reads a DWORD value of an entry
func (s *MemoryStore) DWordValue(key, name string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return 0, ErrKeyNotFound
	}
	value, ok := entry.DWords[name]
	if !ok {
		return 0, ErrValueNotFound
	}
	return value, nil
}

// WriteKey creates the entry or merges values into an existing one
func (s *MemoryStore) WriteKey(key string, values Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		entry = Values{Strings: map[string]string{}, DWords: map[string]uint32{}}
	}
	for name, value := range values.Strings {
		entry.Strings[name] = value
	}
	for name, value := range values.DWords {
		entry.DWords[name] = value
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) DeleteKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return ErrKeyNotFound
	}
	delete(s.entries, key)
	return nil
}

// HasKey reports whether the entry exists
func (s *MemoryStore) HasKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	return ok
}
