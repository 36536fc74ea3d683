package envplan

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
)

// Env is an insertion-ordered set of environment variables.
// The zero value is empty and ready to use.
type Env struct {
	keys   []string
	values map[string]string
}

// NewEnv builds an Env from alternating key/value pairs.
// It panics on an odd number of arguments.
func NewEnv(kv ...string) Env {
	if len(kv)%2 != 0 {
		panic("envplan: NewEnv needs key/value pairs")
	}
	var e Env
	for i := 0; i < len(kv); i += 2 {
		e.set(kv[i], kv[i+1])
	}
	return e
}

// set stores value under key. Re-setting a key keeps its original position.
func (e *Env) set(key, value string) {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Get returns the value of key.
func (e Env) Get(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Has reports whether key is set.
func (e Env) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (e Env) Keys() []string { return slices.Clone(e.keys) }

// Len returns the number of variables.
func (e Env) Len() int { return len(e.keys) }

// All iterates over the variables in insertion order.
func (e Env) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range e.keys {
			if !yield(k, e.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy of the variables.
func (e Env) Map() map[string]string {
	if e.values == nil {
		return map[string]string{}
	}
	return maps.Clone(e.values)
}

// MarshalJSON encodes the variables as an object.
func (e Env) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}
