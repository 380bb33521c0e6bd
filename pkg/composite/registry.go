package composite

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/screengod/pkg/errors"
)

// Entry locates one node.
type Entry struct {
	Tree *Tree
	Node NodeID
}

// Registry maps external keys, such as labels or window handles, to nodes.
//
// A Registry is owned by the caller and scoped to whatever lifetime the
// integration needs; the engine itself keeps no global state. The zero value
// is not usable; use NewRegistry. Registry is not safe for concurrent use.
type Registry struct {
	entries map[string]Entry
	keys    map[Entry]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		keys:    make(map[Entry]string),
	}
}

// Add registers node id of t under key and returns the key.
// An empty key is replaced by a generated UUID. Registering a key twice, or
// the same node under two keys, fails with INVALID_INPUT.
func (r *Registry) Add(key string, t *Tree, id NodeID) (string, error) {
	if t == nil || !t.Valid(id) {
		return "", errors.New(errors.ErrCodeTypeMismatch, "node %d does not exist", id)
	}
	if key == "" {
		key = uuid.NewString()
	}
	if _, ok := r.entries[key]; ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "key %q is already registered", key)
	}
	e := Entry{Tree: t, Node: id}
	if existing, ok := r.keys[e]; ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "node %d is already registered as %q", id, existing)
	}
	r.entries[key] = e
	r.keys[e] = key
	return key, nil
}

// Lookup returns the entry registered under key.
func (r *Registry) Lookup(key string) (Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// KeyOf returns the key node id of t is registered under.
func (r *Registry) KeyOf(t *Tree, id NodeID) (string, bool) {
	key, ok := r.keys[Entry{Tree: t, Node: id}]
	return key, ok
}

// Delete removes key and reports whether it was present.
func (r *Registry) Delete(key string) bool {
	e, ok := r.entries[key]
	if !ok {
		return false
	}
	delete(r.entries, key)
	delete(r.keys, e)
	return true
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
