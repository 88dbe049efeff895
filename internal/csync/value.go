// Package csync provides small generic concurrency-safe containers.
package csync

import (
	"fmt"
	"reflect"
	"sync"
)

// Value holds a value of type T that can be read and replaced from multiple
// goroutines. T must be a plain value type: storing pointers, slices or maps
// would leak shared mutable state past the lock, so [NewValue] panics for
// those kinds.
type Value[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewValue returns a new [Value] holding v.
func NewValue[T any](v T) *Value[T] {
	switch k := reflect.TypeOf(&v).Elem().Kind(); k {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		panic(fmt.Sprintf("csync: Value does not support %s types", k))
	}
	return &Value[T]{v: v}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Set replaces the current value.
func (v *Value[T]) Set(nv T) {
	v.mu.Lock()
	v.v = nv
	v.mu.Unlock()
}

// Update replaces the current value with fn applied to it and returns the
// result. fn runs with the lock held and must not call back into v.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.v = fn(v.v)
	return v.v
}
