package storage

import (
	"context"
	"errors"
)

var errClosed = errors.New("store is closed")

// Memory is a map-backed Store for tests and throwaway sessions.
type Memory struct {
	data   map[string][]byte
	closed bool
}

func NewMemory() *Memory { return &Memory{data: make(map[string][]byte)} }

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := m.check(ctx); err != nil {
		return nil, false, wrap("get", key, err)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	if err := m.check(ctx); err != nil {
		return wrap("put", key, err)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := m.check(ctx); err != nil {
		return wrap("delete", key, err)
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}

func (m *Memory) check(ctx context.Context) error {
	if m.closed {
		return errClosed
	}
	return ctx.Err()
}
