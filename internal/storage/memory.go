// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package storage

import (
	"context"
	"crypto/md5"
	"fmt"
	"sync"
	"time"

	"github.com/ardakose/boyama/internal/platform/apperr"
)

// MemoryStore is an in-memory [ObjectStore] for tests.
//
// It records every Put and Delete so ingestion tests can assert rollback
// completeness after a mid-pipeline failure.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject

	// FailPutKeys makes Put fail for specific keys, simulating a
	// mid-pipeline upload failure.
	FailPutKeys map[string]bool

	// Deleted records every key passed to Delete, in order.
	Deleted []string
}

type memoryObject struct {
	body        []byte
	contentType string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects:     make(map[string]memoryObject),
		FailPutKeys: make(map[string]bool),
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, body []byte, contentType, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPutKeys[key] {
		return fmt.Errorf("storage: put %q: simulated failure", key)
	}

	m.objects[key] = memoryObject{body: body, contentType: contentType}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

func (m *MemoryStore) Head(_ context.Context, key string) (*ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, apperr.NotFound("Object")
	}

	return &ObjectInfo{
		Key:         key,
		Size:        int64(len(obj.body)),
		ContentType: obj.contentType,
		ETag:        fmt.Sprintf("%x", md5.Sum(obj.body)),
	}, nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return "https://assets.test/" + key
}

func (m *MemoryStore) SignedGetURL(_ context.Context, key string, ttl time.Duration, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return "", apperr.NotFound("Object")
	}
	return fmt.Sprintf("https://assets.test/%s?expires=%d", key, int64(ttl.Seconds())), nil
}

// Exists reports whether a key currently holds an object.
func (m *MemoryStore) Exists(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.objects[key]
	return ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.objects)
}
