// Package pool keeps values under small integer handles. The lowest free handle is reused
// first, and each value is used by one caller at a time.
package pool

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrHandleNotFound = errors.New("no value under this handle")

type entry[V any] struct {
	mu     sync.Mutex
	value  V
	closed bool
}

type Pool[V any] struct {
	mu      sync.Mutex
	entries map[int]*entry[V]
}

func New[V any]() *Pool[V] {
	return &Pool[V]{entries: make(map[int]*entry[V])}
}

// Init stores value under the lowest free handle and returns it.
func (that *Pool[V]) Init(value V) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	handle := 0
	for {
		if _, ok := that.entries[handle]; !ok {
			break
		}
		handle++
	}

	that.entries[handle] = &entry[V]{value: value}

	return handle
}

// Deinit frees a handle once its current user is done and returns the value it held.
func (that *Pool[V]) Deinit(handle int) (V, error) {
	var value V
	err := that.DeinitWith(handle, func(v V) error {
		value = v
		return nil
	})

	return value, err
}

// DeinitWith frees a handle and runs fn on its value while still holding the value's lock.
// The handle is freed even when fn fails. Callers waiting in With for the same handle get
// ErrHandleNotFound afterwards.
func (that *Pool[V]) DeinitWith(handle int, fn func(value V) error) error {
	that.mu.Lock()
	e, ok := that.entries[handle]
	if ok {
		delete(that.entries, handle)
	}
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("failed to deinit handle %d: %w", handle, ErrHandleNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true

	return fn(e.value)
}

// With runs fn on the value under handle while holding that value's lock.
func (that *Pool[V]) With(handle int, fn func(value V) error) error {
	that.mu.Lock()
	e, ok := that.entries[handle]
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("handle %d: %w", handle, ErrHandleNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("handle %d: %w", handle, ErrHandleNotFound)
	}

	return fn(e.value)
}

func (that *Pool[V]) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.entries)
}

// Handles returns the handles in use in ascending order.
func (that *Pool[V]) Handles() []int {
	that.mu.Lock()
	handles := make([]int, 0, len(that.entries))
	for handle := range that.entries {
		handles = append(handles, handle)
	}
	that.mu.Unlock()

	sort.Ints(handles)

	return handles
}
