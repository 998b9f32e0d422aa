package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smart_home_face/internal/models"
)

// Durable keys.
const (
	KeyAuthToken = "auth_token"
	KeyTheme     = "theme"
)

// ErrEmptyKey is returned for operations on a blank key.
var ErrEmptyKey = errors.New("empty key")

// KeyValue is durable client state: plain string entries, no schema versioning.
type KeyValue interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}

type ActivityRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	KV       KeyValue
	Activity ActivityRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		KV:       NewKVSQLite(db),
		Activity: NewActivitySQLite(db),
	}
}

// NewMemoryRepository keeps everything in process memory.
func NewMemoryRepository() *Repository {
	return &Repository{
		KV:       NewMemoryKV(),
		Activity: NewMemoryActivity(),
	}
}
