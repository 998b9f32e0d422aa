package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"smart_home_face/internal/models"
)

var (
	_ KeyValue     = (*MemoryKV)(nil)
	_ ActivityRepo = (*MemoryActivity)(nil)
)

// MemoryKV is a KeyValue that lives only as long as the process.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, ErrEmptyKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// MemoryActivity is an in-process activity log.
type MemoryActivity struct {
	mu     sync.RWMutex
	events []models.ActivityEvent
}

func NewMemoryActivity() *MemoryActivity {
	return &MemoryActivity{}
}

func (m *MemoryActivity) Append(_ context.Context, e models.ActivityEvent) error {
	e = normalizeEvent(e)
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
	return nil
}

func (m *MemoryActivity) List(_ context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	typ = normalizeType(typ)

	m.mu.RLock()
	out := make([]models.ActivityEvent, 0, len(m.events))
	for _, e := range m.events {
		if !from.IsZero() && e.OccurredAt.Before(from.UTC()) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to.UTC()) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}
