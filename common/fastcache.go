// Copyright © 2023 OSINTAMI. This is not yours.
package common

import (
	"github.com/patrickmn/go-cache"
)

// FastCache memoizes one value per key for the length of a single run.
// Entries never expire; the cache is dropped with the run.
type FastCache[T any] struct {
	cache *cache.Cache
}

func NewFastCache[T any]() *FastCache[T] {
	return &FastCache[T]{cache: cache.New(cache.NoExpiration, 0)}
}

func (x *FastCache[T]) Get(key string) (T, bool) {
	obj, found := x.cache.Get(key)
	if !found {
		var zero T
		return zero, false
	}
	return obj.(T), true
}

func (x *FastCache[T]) Set(key string, value T) {
	x.cache.Set(key, value, cache.NoExpiration)
}

// GetOrCompute returns the cached value for key, running fn on the first
// miss only.
func (x *FastCache[T]) GetOrCompute(key string, fn func() T) T {
	if v, found := x.Get(key); found {
		return v
	}
	v := fn()
	x.Set(key, v)
	return v
}

func (x *FastCache[T]) Len() int {
	return x.cache.ItemCount()
}

func (x *FastCache[T]) Clear() {
	x.cache.Flush()
}
