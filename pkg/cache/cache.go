/*
Copyright The wolauncher Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cache provides the in-process memoization used for remote
// metadata that must be fetched at most once per run.
package cache

import "sync"

// Cache interface defines the methods for a cache
type Cache[V any] interface {
	// Set adds an item to the cache
	Set(key string, value V)

	// Get retrieves an item from the cache
	// The boolean return value indicates whether the key was found
	Get(key string) (V, bool)
}

// MapCache implements Cache with a mutex guarded map. It never expires entries.
type MapCache[V any] struct {
	items map[string]V
	mu    sync.RWMutex
}

func NewMapCache[V any]() *MapCache[V] {
	return &MapCache[V]{
		items: make(map[string]V),
	}
}

func (c *MapCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *MapCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, exists := c.items[key]
	return value, exists
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Only successful loads are stored; a failed load is retried by the next caller.
func GetOrLoad[V any](c Cache[V], key string, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}
