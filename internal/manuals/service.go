package manuals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	applog "stadslab/internal/log"
	"stadslab/internal/store"
)

// Service loads, mutates and saves manuals and their daily progress.
type Service struct {
	store store.Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewService returns a Service persisting into s.
func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// WithClock replaces the clock used to pick the progress day.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Library returns all manuals.
func (s *Service) Library(ctx context.Context) (*Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get returns one manual.
func (s *Service) Get(ctx context.Context, id string) (Manual, error) {
	lib, err := s.Library(ctx)
	if err != nil {
		return Manual{}, err
	}
	m := lib.Find(id)
	if m == nil {
		return Manual{}, ErrManualNotFound
	}
	return *m, nil
}

// Create adds an empty manual.
func (s *Service) Create(ctx context.Context) (Manual, error) {
	var created Manual
	err := s.update(ctx, func(lib *Library) error {
		created = lib.Add()
		return nil
	})
	return created, err
}

// Replace overwrites a manual.
func (s *Service) Replace(ctx context.Context, m Manual) (Manual, error) {
	var saved Manual
	err := s.update(ctx, func(lib *Library) error {
		var err error
		saved, err = lib.Replace(m)
		return err
	})
	return saved, err
}

// Delete removes a manual.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.update(ctx, func(lib *Library) error {
		return lib.Remove(id)
	})
}

// AddItem appends a default record to a collection.
func (s *Service) AddItem(ctx context.Context, manualID string, c Collection) (string, error) {
	var id string
	err := s.update(ctx, func(lib *Library) error {
		var err error
		id, err = lib.AddItem(manualID, c)
		return err
	})
	return id, err
}

// RemoveItem deletes a record from a collection.
func (s *Service) RemoveItem(ctx context.Context, manualID string, c Collection, itemID string) error {
	return s.update(ctx, func(lib *Library) error {
		return lib.RemoveItem(manualID, c, itemID)
	})
}

// Progress reports today's progress of every section of a manual.
func (s *Service) Progress(ctx context.Context, manualID string) ([]SectionProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.manual(ctx, manualID)
	if err != nil {
		return nil, err
	}
	day := s.now()
	out := make([]SectionProgress, 0, len(Sections))
	for _, section := range Sections {
		done, err := s.loadDone(ctx, m.ID, section, day)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(section, m.Checklist(section), done))
	}
	return out, nil
}

// Toggle flips the checked state of an item for today.
func (s *Service) Toggle(ctx context.Context, manualID string, section Section, itemID string) (SectionProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.manual(ctx, manualID)
	if err != nil {
		return SectionProgress{}, err
	}
	ids := m.Checklist(section)
	if !contains(ids, itemID) {
		return SectionProgress{}, ErrChecklistItemNotFound
	}

	day := s.now()
	done, err := s.loadDone(ctx, m.ID, section, day)
	if err != nil {
		return SectionProgress{}, err
	}
	done[itemID] = !done[itemID]
	if err := s.store.Put(ctx, ProgressKey(m.ID, section, day), done); err != nil {
		return SectionProgress{}, err
	}
	return Summarize(section, ids, done), nil
}

// ResetToday clears today's progress of every section of a manual.
func (s *Service) ResetToday(ctx context.Context, manualID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.manual(ctx, manualID)
	if err != nil {
		return err
	}
	day := s.now()
	for _, section := range Sections {
		if err := s.store.Delete(ctx, ProgressKey(m.ID, section, day)); err != nil {
			return err
		}
	}
	applog.Debug(ctx, "manual progress reset", "manual", m.ID, "day", day.Format("2006-01-02"))
	return nil
}

// Seed stores lib when no manuals are stored yet.
func (s *Service) Seed(ctx context.Context, lib Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []Manual
	found, err := s.read(ctx, store.KeyManuals, &existing)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.store.Put(ctx, store.KeyManuals, lib.Manuals)
}

func (s *Service) update(ctx context.Context, fn func(*Library) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(lib); err != nil {
		return err
	}
	if err := s.store.Put(ctx, store.KeyManuals, lib.Manuals); err != nil {
		return fmt.Errorf("save manuals: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context) (*Library, error) {
	var list []Manual
	found, err := s.read(ctx, store.KeyManuals, &list)
	if err != nil {
		return nil, err
	}
	if !found || list == nil {
		list = []Manual{}
	}
	return &Library{Manuals: list}, nil
}

func (s *Service) manual(ctx context.Context, id string) (Manual, error) {
	lib, err := s.load(ctx)
	if err != nil {
		return Manual{}, err
	}
	m := lib.Find(id)
	if m == nil {
		return Manual{}, ErrManualNotFound
	}
	return *m, nil
}

func (s *Service) loadDone(ctx context.Context, manualID string, section Section, day time.Time) (map[string]bool, error) {
	done := map[string]bool{}
	found, err := s.read(ctx, ProgressKey(manualID, section, day), &done)
	if err != nil {
		return nil, err
	}
	if !found || done == nil {
		done = map[string]bool{}
	}
	return done, nil
}

// read loads one document. Corrupt documents are discarded and reported as
// missing; read failures are returned.
func (s *Service) read(ctx context.Context, key string, dest any) (bool, error) {
	found, err := s.store.Get(ctx, key, dest)
	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, store.ErrCorrupt):
		applog.Warn(ctx, "discarding unreadable manuals state", "key", key, "error", err)
		return false, nil
	default:
		applog.Error(ctx, "failed to load manuals state", "key", key, "error", err)
		return false, fmt.Errorf("load %s: %w", key, err)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means a manual or item does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrManualNotFound) || errors.Is(err, ErrChecklistItemNotFound)
}
