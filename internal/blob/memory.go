package blob

import (
	"bytes"
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is a map-backed Store used in tests and redis-less development.
type Memory struct {
	mu            sync.RWMutex
	objects       map[string]memoryObject
	publicBaseURL string
}

type memoryObject struct {
	data       []byte
	uploadedAt time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory(publicBaseURL string) *Memory {
	return &Memory{
		objects:       make(map[string]memoryObject),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (m *Memory) url(path string) string {
	if m.publicBaseURL == "" {
		return "/" + path
	}
	return m.publicBaseURL + "/" + path
}

func (m *Memory) Put(ctx context.Context, path string, data []byte, contentType string) (*ObjectRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = memoryObject{data: bytes.Clone(data), uploadedAt: time.Now()}
	return &ObjectRef{Path: path, URL: m.url(path)}, nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	objects := []ObjectInfo{}
	for path, obj := range m.objects {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		objects = append(objects, ObjectInfo{
			Path:       path,
			Filename:   FilenameOf(path),
			URL:        m.url(path),
			Size:       int64(len(obj.data)),
			UploadedAt: obj.uploadedAt,
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })
	return objects, nil
}

func (m *Memory) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return bytes.Clone(obj.data), nil
}

func (m *Memory) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}

func (m *Memory) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[path]
	return ok, nil
}

func (m *Memory) Usage(ctx context.Context) (*UsageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	usage := &UsageInfo{FileCount: len(m.objects)}
	for _, obj := range m.objects {
		usage.TotalSize += int64(len(obj.data))
	}
	return usage, nil
}
