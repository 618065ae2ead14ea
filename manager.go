/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package recordconv

import (
	"fmt"
	"sync"
)

// Manager holds the application's store bindings under entity names
// (for example, "VersionedDocument" or "Comment"). Its methods are not
// generic; callers type-assert the returned value to the appropriate
// Store type.
type Manager interface {
	// RegisterStore registers a Store under a given entity name.
	RegisterStore(name string, store any) error
	// GetStore retrieves the registered Store for a given entity name.
	GetStore(name string) (any, error)
}

// storeManager is a thread-safe implementation of the Manager interface.
type storeManager struct {
	mu     sync.RWMutex
	stores map[string]any
}

// NewManager creates and returns a new Manager implementation.
func NewManager() Manager {
	return &storeManager{
		stores: make(map[string]any),
	}
}

// RegisterStore stores the provided Store under the given name.
func (sm *storeManager) RegisterStore(name string, store any) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.stores[name]; exists {
		return fmt.Errorf("store with name %q already registered", name)
	}
	sm.stores[name] = store
	return nil
}

// GetStore retrieves the Store associated with the given name.
func (sm *storeManager) GetStore(name string) (any, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	store, exists := sm.stores[name]
	if !exists {
		return nil, fmt.Errorf("store with name %q not found", name)
	}
	return store, nil
}

// RegisterStoreFor is a convenience function to register a typed store
// under its codec's entity name.
func RegisterStoreFor[T any](m Manager, store *Store[T]) error {
	return m.RegisterStore(store.codec.Name(), store)
}

// GetStoreFor retrieves a typed store by entity name.
func GetStoreFor[T any](m Manager, name string) (*Store[T], error) {
	v, err := m.GetStore(name)
	if err != nil {
		return nil, err
	}
	store, ok := v.(*Store[T])
	if !ok {
		return nil, fmt.Errorf("store %q has a different entity type", name)
	}
	return store, nil
}
