// Package backoffice keeps the shared planning state: the concept catalog and
// the event being planned. Every change is a load, apply, save cycle under a
// single lock.
package backoffice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	applog "stadslab/internal/log"
	"stadslab/internal/planner"
	"stadslab/internal/store"
)

// ErrInactiveConcept is returned for event changes on a concept without an
// instance.
var ErrInactiveConcept = errors.New("concept is not active")

// Planner event names, used for metrics and logs.
const (
	EventSetName          = "set_event_name"
	EventToggleConcept    = "toggle_concept"
	EventSetPeople        = "set_people"
	EventSetOptionEnabled = "set_option_enabled"
	EventSetOptionWeight  = "set_option_weight"
	EventEqualizeWeights  = "equalize_weights"
	EventSetSplitPercent  = "set_split_percent"
	EventEqualizeSplit    = "equalize_split"
	EventCatalogChange    = "catalog_change"
)

// Recorder observes applied planner events.
type Recorder interface {
	PlannerEvent(event string)
}

type nopRecorder struct{}

func (nopRecorder) PlannerEvent(string) {}

// State is everything the planner views render.
type State struct {
	EventName   string                       `json:"eventName"`
	TotalPeople int                          `json:"totalPeople"`
	Order       []string                     `json:"order"`
	Instances   map[string]*planner.Instance `json:"instances"`
	Shares      []planner.SplitShare         `json:"shares"`
	Results     []planner.ConceptResult      `json:"results"`
	Aggregate   []planner.AggregateRow       `json:"aggregate"`
	Concepts    []planner.Concept            `json:"concepts"`
}

// Service serialises access to the planner state in a store.
type Service struct {
	store    store.Store
	recorder Recorder
	mu       sync.Mutex
}

// NewService returns a Service persisting into s. A nil recorder is allowed.
func NewService(s store.Store, recorder Recorder) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{store: s, recorder: recorder}
}

// State loads the current state and derives the results.
func (s *Service) State(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, event, err := s.load(ctx)
	if err != nil {
		return State{}, err
	}
	return snapshot(catalog, event), nil
}

// SetEventName renames the event.
func (s *Service) SetEventName(ctx context.Context, name string) (State, error) {
	return s.apply(ctx, EventSetName, func(_ *planner.Catalog, e *planner.Event) error {
		e.SetName(name)
		return nil
	})
}

// ToggleConcept activates or deactivates a concept for the event.
func (s *Service) ToggleConcept(ctx context.Context, conceptID string) (State, error) {
	return s.apply(ctx, EventToggleConcept, func(c *planner.Catalog, e *planner.Event) error {
		if !e.ToggleConcept(c, conceptID) {
			return planner.ErrConceptNotFound
		}
		return nil
	})
}

// SetPeople sets the people count of an active concept; nil unsets it.
func (s *Service) SetPeople(ctx context.Context, conceptID string, people *int) (State, error) {
	return s.apply(ctx, EventSetPeople, func(_ *planner.Catalog, e *planner.Event) error {
		return applied(e.SetPeople(conceptID, people))
	})
}

// SetOptionEnabled toggles an option category of an active concept.
func (s *Service) SetOptionEnabled(ctx context.Context, conceptID, key string, on bool) (State, error) {
	return s.apply(ctx, EventSetOptionEnabled, func(c *planner.Catalog, e *planner.Event) error {
		if err := optionExists(c, e, conceptID, key); err != nil {
			return err
		}
		return applied(e.SetOptionEnabled(c, conceptID, key, on))
	})
}

// SetOptionWeight pins an option weight and redistributes the others.
func (s *Service) SetOptionWeight(ctx context.Context, conceptID, key string, value float64) (State, error) {
	return s.apply(ctx, EventSetOptionWeight, func(c *planner.Catalog, e *planner.Event) error {
		if err := optionExists(c, e, conceptID, key); err != nil {
			return err
		}
		return applied(e.SetOptionWeight(c, conceptID, key, value))
	})
}

// EqualizeWeights splits the option weights of a concept evenly.
func (s *Service) EqualizeWeights(ctx context.Context, conceptID string) (State, error) {
	return s.apply(ctx, EventEqualizeWeights, func(c *planner.Catalog, e *planner.Event) error {
		return applied(e.EqualizeWeights(c, conceptID))
	})
}

// SetSplitPercent gives a concept a percentage of the event's people.
func (s *Service) SetSplitPercent(ctx context.Context, conceptID string, pct float64) (State, error) {
	return s.apply(ctx, EventSetSplitPercent, func(_ *planner.Catalog, e *planner.Event) error {
		return applied(e.SetSplitPercent(conceptID, pct))
	})
}

// EqualizeSplit spreads the event's people evenly over the active concepts.
func (s *Service) EqualizeSplit(ctx context.Context) (State, error) {
	return s.apply(ctx, EventEqualizeSplit, func(_ *planner.Catalog, e *planner.Event) error {
		e.EqualizeSplit()
		return nil
	})
}

// Catalog returns a copy of the concept catalog.
func (s *Service) Catalog(ctx context.Context) (*planner.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Clone(), nil
}

// AddConcept adds a concept to the catalog.
func (s *Service) AddConcept(ctx context.Context, name, color string) (planner.Concept, error) {
	var created planner.Concept
	_, err := s.apply(ctx, EventCatalogChange, func(c *planner.Catalog, _ *planner.Event) error {
		created = c.AddConcept(name, color)
		return nil
	})
	return created, err
}

// RemoveConcept deletes a concept and its instance.
func (s *Service) RemoveConcept(ctx context.Context, conceptID string) error {
	_, err := s.apply(ctx, EventCatalogChange, func(c *planner.Catalog, e *planner.Event) error {
		if err := c.RemoveConcept(conceptID); err != nil {
			return err
		}
		e.Forget(conceptID)
		return nil
	})
	return err
}

// AddProduct adds a product to a category of a concept.
func (s *Service) AddProduct(ctx context.Context, conceptID, categoryKey string, in planner.NewProduct) (planner.Product, error) {
	var created planner.Product
	_, err := s.apply(ctx, EventCatalogChange, func(c *planner.Catalog, _ *planner.Event) error {
		var err error
		created, err = c.AddProduct(conceptID, categoryKey, in)
		return err
	})
	return created, err
}

// RemoveProduct deletes a product.
func (s *Service) RemoveProduct(ctx context.Context, conceptID, categoryKey, productID string) error {
	_, err := s.apply(ctx, EventCatalogChange, func(c *planner.Catalog, _ *planner.Event) error {
		return c.RemoveProduct(conceptID, categoryKey, productID)
	})
	return err
}

// UpdateProductBase sets a product's rate per 100 people.
func (s *Service) UpdateProductBase(ctx context.Context, conceptID, categoryKey, productID string, value float64) (planner.Product, error) {
	var updated planner.Product
	_, err := s.apply(ctx, EventCatalogChange, func(c *planner.Catalog, _ *planner.Event) error {
		var err error
		updated, err = c.UpdateProductBase(conceptID, categoryKey, productID, value)
		return err
	})
	return updated, err
}

// RemoveCategory deletes an option category and its instance state.
func (s *Service) RemoveCategory(ctx context.Context, conceptID, key string) error {
	_, err := s.apply(ctx, EventCatalogChange, func(c *planner.Catalog, e *planner.Event) error {
		if err := c.RemoveCategory(conceptID, key); err != nil {
			return err
		}
		e.DropOption(conceptID, key)
		return nil
	})
	return err
}

// Seed stores catalog and an event named name when no catalog is stored yet.
func (s *Service) Seed(ctx context.Context, catalog *planner.Catalog, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []planner.Concept
	found, err := s.read(ctx, store.KeyConcepts, &existing)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.save(ctx, catalog, planner.NewEvent(name))
}

func (s *Service) apply(ctx context.Context, event string, fn func(*planner.Catalog, *planner.Event) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, ev, err := s.load(ctx)
	if err != nil {
		return State{}, err
	}
	if err := fn(catalog, ev); err != nil {
		return State{}, err
	}
	ev.Reconcile(catalog)
	if err := s.save(ctx, catalog, ev); err != nil {
		return State{}, err
	}
	s.recorder.PlannerEvent(event)
	applog.Debug(ctx, "planner event applied", "event", event, "active", len(ev.Order))
	return snapshot(catalog, ev), nil
}

func (s *Service) load(ctx context.Context) (*planner.Catalog, *planner.Event, error) {
	catalog := &planner.Catalog{}
	found, err := s.read(ctx, store.KeyConcepts, &catalog.Concepts)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		catalog = planner.DefaultCatalog()
	}

	var name string
	if _, err := s.read(ctx, store.KeyEventName, &name); err != nil {
		return nil, nil, err
	}
	event := planner.NewEvent(name)

	instances := map[string]*planner.Instance{}
	if found, err := s.read(ctx, store.KeyEventInstances, &instances); err != nil {
		return nil, nil, err
	} else if !found {
		instances = map[string]*planner.Instance{}
	}
	var order []string
	if found, err := s.read(ctx, store.KeyEventOrder, &order); err != nil {
		return nil, nil, err
	} else if !found {
		order = nil
	}
	for id, inst := range instances {
		if inst == nil {
			delete(instances, id)
		}
	}
	event.Instances = instances
	event.Order = order
	event.Reconcile(catalog)
	return catalog, event, nil
}

// read loads one document. A corrupt document is discarded and reported as
// missing; any other failure is returned so nothing is saved over the state.
func (s *Service) read(ctx context.Context, key string, dest any) (bool, error) {
	found, err := s.store.Get(ctx, key, dest)
	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, store.ErrCorrupt):
		applog.Warn(ctx, "discarding unreadable planner state", "key", key, "error", err)
		return false, nil
	default:
		applog.Error(ctx, "failed to load planner state", "key", key, "error", err)
		return false, fmt.Errorf("load planner state: %w", err)
	}
}

func (s *Service) save(ctx context.Context, catalog *planner.Catalog, event *planner.Event) error {
	writes := []struct {
		key   string
		value any
	}{
		{store.KeyConcepts, catalog.Concepts},
		{store.KeyEventName, event.Name},
		{store.KeyEventInstances, event.Instances},
		{store.KeyEventOrder, event.Order},
	}
	for _, w := range writes {
		if err := s.store.Put(ctx, w.key, w.value); err != nil {
			applog.Error(ctx, "failed to persist planner state", "key", w.key, "error", err)
			return err
		}
	}
	return nil
}

func snapshot(catalog *planner.Catalog, event *planner.Event) State {
	results := event.Results(catalog)
	return State{
		EventName:   event.Name,
		TotalPeople: event.TotalPeople(),
		Order:       append([]string(nil), event.Order...),
		Instances:   event.Instances,
		Shares:      event.SplitShares(catalog),
		Results:     results,
		Aggregate:   planner.Aggregate(results),
		Concepts:    catalog.Clone().Concepts,
	}
}

func applied(ok bool) error {
	if !ok {
		return ErrInactiveConcept
	}
	return nil
}

func optionExists(c *planner.Catalog, e *planner.Event, conceptID, key string) error {
	concept := c.Find(conceptID)
	if concept == nil {
		return planner.ErrConceptNotFound
	}
	if !e.IsActive(conceptID) {
		return ErrInactiveConcept
	}
	if !concept.HasOption(key) {
		return planner.ErrCategoryNotFound
	}
	return nil
}
