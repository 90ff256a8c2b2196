package repository

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"vr-therapy-platform/internal/infrastructure/seed"

	"github.com/sirupsen/logrus"
)

type memoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	sets   []string
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	s.sets = append(s.sets, key)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *memoryStore) writesTo(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, k := range s.sets {
		if k == key {
			n++
		}
	}
	return n
}

// countingSource wraps the bundled seed and counts fetches per resource
type countingSource struct {
	inner   seed.Source
	fetches atomic.Int32
	fail    seed.Resource
}

func (s *countingSource) Fetch(ctx context.Context, resource seed.Resource) ([]byte, error) {
	s.fetches.Add(1)
	if resource == s.fail {
		return nil, errors.New("connection refused")
	}
	return s.inner.Fetch(ctx, resource)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAdapter(t *testing.T) (*StoreAdapter, *memoryStore, *countingSource) {
	t.Helper()
	store := newMemoryStore()
	source := &countingSource{inner: seed.NewBundledSource()}
	return NewStoreAdapter(store, source, testLogger()), store, source
}
