// Package store persists the planner state as JSON documents in a namespaced
// key-value table.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stadslab/models"
)

// Keys of the documents kept by the planner.
const (
	KeyConcepts       = "concepts"
	KeyEventName      = "event_name"
	KeyEventInstances = "event_instances"
	KeyEventOrder     = "event_order"
	KeySeeded         = "seeded"
	KeyManuals        = "manuals"
)

// Store reads and writes JSON documents by key.
type Store interface {
	// Get decodes the document stored under key into dest. It reports false
	// when nothing is stored under key. Decode failures wrap ErrCorrupt.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

var (
	// ErrNilDatabase is returned when a GormStore is built without a handle.
	ErrNilDatabase = errors.New("store: database handle is nil")
	// ErrCorrupt marks a stored document that no longer decodes into the
	// requested type. Any other Get error means the store could not be read.
	ErrCorrupt = errors.New("store: corrupt document")
)

// GormStore keeps documents in the store_entries table.
type GormStore struct {
	db        *gorm.DB
	namespace string
}

// NewGormStore returns a Store backed by db, scoped to namespace.
func NewGormStore(db *gorm.DB, namespace string) (*GormStore, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return nil, fmt.Errorf("store: namespace must not be empty")
	}
	return &GormStore{db: db, namespace: namespace}, nil
}

// Namespace returns the namespace the store writes to.
func (s *GormStore) Namespace() string {
	return s.namespace
}

func (s *GormStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var entry models.StoreEntry
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return decode(key, []byte(entry.Value), dest)
	return true, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	entry := models.StoreEntry{Namespace: s.namespace, Key: key, Value: string(payload)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		Delete(&models.StoreEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// MemoryStore keeps documents in process memory. Values are stored encoded so
// callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	payload, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return decode(key, payload, dest)
}

func (s *MemoryStore) Put(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.entries[key] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func decode(key string, payload []byte, dest any) (bool, error) {
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w: %w", key, ErrCorrupt, err)
	}
	return true, nil
}
