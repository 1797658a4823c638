// Package pool provides typed object pooling for the parser's scratch slices.
package pool

import (
	"sync"
)

// Pool is a typed wrapper around sync.Pool with an optional reset hook.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// NewPool creates a pool backed by factory.
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return factory() },
		},
	}
}

// NewPoolWithReset creates a pool whose objects are passed to reset before reuse.
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get returns a pooled object or a fresh one.
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put hands obj back to the pool. Nil is ignored.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// maxPooledCap keeps oversized slices out of the pool.
const maxPooledCap = 1024

var stringSlices = NewPoolWithReset(
	func() *[]string {
		s := make([]string, 0, 16)
		return &s
	},
	func(s *[]string) {
		clear(*s)
		*s = (*s)[:0]
	},
)

// GetStringSlice returns an empty string slice from the shared pool.
func GetStringSlice() *[]string {
	return stringSlices.Get()
}

// PutStringSlice returns s to the shared pool.
func PutStringSlice(s *[]string) {
	if s == nil || cap(*s) > maxPooledCap {
		return
	}
	stringSlices.Put(s)
}
