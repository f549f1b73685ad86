package alarm

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	domain "github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// Registry defines the operations the engine needs on the alarm set.
type Registry interface {
	Add(draft *domain.Draft) (*domain.Alarm, error)
	Remove(id string) bool
	MarkTriggered(id string) bool
	Get(id string) (*domain.Alarm, error)
	List() []*domain.Alarm
	Pending() []*domain.Alarm
	Len() int
}

// ErrNotFound is returned when no alarm has the requested id.
var ErrNotFound = errors.New("alarm not found")

// errDraftRequired is returned when Add receives a nil draft.
var errDraftRequired = errors.New("draft is required")

// MemoryRegistry keeps alarms in memory in insertion order.
type MemoryRegistry struct {
	// resolver validates alarm zones on add.
	resolver timezone.Resolver
	// newID generates alarm identifiers.
	newID func() string
	// alarms holds the registered alarms in insertion order.
	alarms []*domain.Alarm
	// mu protects alarms.
	mu sync.RWMutex
}

// Option configures the registry.
type Option func(*MemoryRegistry)

// WithIDGenerator replaces the UUID generator, mainly for tests.
func WithIDGenerator(newID func() string) Option {
	return func(r *MemoryRegistry) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewMemoryRegistry creates an empty registry validating zones with resolver.
func NewMemoryRegistry(resolver timezone.Resolver, opts ...Option) *MemoryRegistry {
	r := &MemoryRegistry{
		resolver: resolver,
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Add validates draft, stores a new untriggered alarm and returns a copy.
func (r *MemoryRegistry) Add(draft *domain.Draft) (*domain.Alarm, error) {
	if draft == nil {
		return nil, &domain.ValidationError{Field: domain.FieldZone, Reason: "draft is missing", Err: errDraftRequired}
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	zone := strings.TrimSpace(draft.Zone)

	if _, err := r.resolver.Location(zone); err != nil {
		return nil, &domain.ValidationError{
			Field:  domain.FieldZone,
			Reason: "zone does not resolve",
			Err:    err,
		}
	}

	a := &domain.Alarm{
		ID:         r.newID(),
		Label:      draft.Label,
		Hour:       draft.Hour,
		Minute:     draft.Minute,
		Zone:       zone,
		IsReminder: draft.IsReminder,
		Triggered:  false,
	}

	r.mu.Lock()
	r.alarms = append(r.alarms, a)
	r.mu.Unlock()

	return a.Clone(), nil
}

// Remove deletes the alarm with id. Unknown ids are ignored.
// It reports whether an alarm was removed.
func (r *MemoryRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}

	r.alarms = slices.Delete(r.alarms, idx, idx+1)

	return true
}

// MarkTriggered sets the triggered flag of the alarm with id.
// It reports true only when the flag actually flipped.
func (r *MemoryRegistry) MarkTriggered(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 || r.alarms[idx].Triggered {
		return false
	}

	r.alarms[idx].Triggered = true

	return true
}

// Get returns a copy of the alarm with id.
func (r *MemoryRegistry) Get(id string) (*domain.Alarm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	return r.alarms[idx].Clone(), nil
}

// List returns copies of all alarms in insertion order.
func (r *MemoryRegistry) List() []*domain.Alarm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.CloneAll(r.alarms)
}

// Pending returns copies of the untriggered alarms in insertion order.
func (r *MemoryRegistry) Pending() []*domain.Alarm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pending := make([]*domain.Alarm, 0, len(r.alarms))

	for _, a := range r.alarms {
		if !a.Triggered {
			pending = append(pending, a.Clone())
		}
	}

	return pending
}

// Len returns the number of registered alarms.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.alarms)
}

// indexOf returns the position of id or -1. Callers hold mu.
func (r *MemoryRegistry) indexOf(id string) int {
	return slices.IndexFunc(r.alarms, func(a *domain.Alarm) bool {
		return a.ID == id
	})
}
