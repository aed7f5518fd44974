package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sync"
	"time"
)

// MemoryStore is an in-process ObjectStore for tests and offline use.
// Presigned URLs point at BaseURL and are not actually served.
type MemoryStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		BaseURL: "http://localhost:9000/quizwise",
		objects: make(map[string]memObject),
	}
}

// Put stores an object, standing in for the client's presigned PUT.
func (m *MemoryStore) Put(key string, data []byte, contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{
		data:        bytes.Clone(data),
		contentType: contentType,
		modified:    time.Now(),
	}
}

func (m *MemoryStore) PresignUpload(_ context.Context, key string) (*url.URL, time.Time, error) {
	u, err := url.Parse(m.BaseURL + "/" + key)
	if err != nil {
		return nil, time.Time{}, err
	}
	return u, time.Now().Add(defaultURLExpiry), nil
}

func (m *MemoryStore) Stat(_ context.Context, key string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.modified,
	}, nil
}

func (m *MemoryStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}
