// Package seed fills an empty store with the demo catalog, event and manuals.
package seed

import (
	"context"
	"errors"
	"fmt"

	applog "stadslab/internal/log"
	"stadslab/internal/manuals"
	"stadslab/internal/planner"
	"stadslab/internal/store"
)

// DemoEventName names the event of a fresh installation.
const DemoEventName = "Demo Event – Vrijdag"

// Planner is the part of the backoffice service that seeding needs.
type Planner interface {
	Seed(ctx context.Context, catalog *planner.Catalog, name string) error
}

// Manuals is the part of the manuals service that seeding needs.
type Manuals interface {
	Seed(ctx context.Context, lib manuals.Library) error
}

// Ensure seeds the store once. Later runs find the seeded flag and leave
// everything alone, including data the planners deleted on purpose.
func Ensure(ctx context.Context, s store.Store, p Planner, m Manuals) (bool, error) {
	var seeded bool
	found, err := s.Get(ctx, store.KeySeeded, &seeded)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		applog.Warn(ctx, "unreadable seed flag, seeding again", "error", err)
	case err != nil:
		return false, fmt.Errorf("read seed flag: %w", err)
	}
	if found && seeded {
		return false, nil
	}

	if err := p.Seed(ctx, planner.DefaultCatalog(), DemoEventName); err != nil {
		return false, fmt.Errorf("seed planner: %w", err)
	}
	if err := m.Seed(ctx, manuals.DemoLibrary()); err != nil {
		return false, fmt.Errorf("seed manuals: %w", err)
	}
	if err := s.Put(ctx, store.KeySeeded, true); err != nil {
		return false, fmt.Errorf("mark seeded: %w", err)
	}
	applog.Info(ctx, "demo data seeded")
	return true, nil
}
