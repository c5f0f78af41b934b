package template

import (
	"strings"

	"github.com/google/uuid"
)

// storeKeyPrefix keeps generated keys away from numbers, booleans and
// ordinary data paths
const storeKeyPrefix = "&"

// ResultStore parks helper results that must survive being spliced back into
// argument text. A nested call returning an array or object is replaced by a
// generated key, and the key resolves back to the original value when the
// surrounding arguments are sanitized.
//
// The engine creates one store per ApplyTemplate call, so entries live exactly
// as long as the evaluation that produced them. A ResultStore is not safe for
// concurrent use.
type ResultStore struct {
	entries map[string]interface{}
}

// NewResultStore creates an empty store
func NewResultStore() *ResultStore {
	return &ResultStore{entries: make(map[string]interface{})}
}

// Put stores v and returns its key
func (s *ResultStore) Put(v interface{}) string {
	key := storeKeyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	s.entries[key] = v
	return key
}

// Get returns the value stored under key
func (s *ResultStore) Get(key string) (interface{}, bool) {
	if !strings.HasPrefix(key, storeKeyPrefix) {
		return nil, false
	}
	v, ok := s.entries[key]
	return v, ok
}

// Len returns the number of stored values
func (s *ResultStore) Len() int {
	return len(s.entries)
}

// Clear drops every stored value
func (s *ResultStore) Clear() {
	s.entries = make(map[string]interface{})
}
