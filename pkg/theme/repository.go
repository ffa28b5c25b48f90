package theme

import (
	"context"
	"errors"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/state"
)

// Namespace prefixes every preference key in the store.
const Namespace = "theme"

// Record is the persisted form of a preference.
type Record struct {
	Value     string    `msgpack:"value"`
	UpdatedAt time.Time `msgpack:"updated_at"`
}

// Repository persists preferences per visitor.
type Repository struct {
	store *state.TypedStore[Record]
	now   func() time.Time
}

// NewRepository wraps store.
func NewRepository(store state.Store) *Repository {
	return &Repository{
		store: state.NewTypedStore[Record](store, state.NewMsgPack[Record]()),
		now:   time.Now,
	}
}

// Load returns the visitor's preference. found is false when nothing valid
// is stored.
func (r *Repository) Load(ctx context.Context, visitor string) (p Preference, found bool, err error) {
	rec, err := r.store.Get(ctx, state.Key(Namespace, visitor))
	if errors.Is(err, state.ErrKeyNotFound) {
		return Light, false, nil
	}
	if err != nil {
		return Light, false, err
	}

	p, ok := Parse(rec.Value)
	if !ok {
		return Light, false, nil
	}
	return p, true, nil
}

// Save overwrites the visitor's preference. Preferences never expire.
func (r *Repository) Save(ctx context.Context, visitor string, p Preference) error {
	return r.store.Set(ctx, state.Key(Namespace, visitor), Record{
		Value:     string(p),
		UpdatedAt: r.now().UTC(),
	}, 0)
}

// Toggle flips and saves the visitor's preference, returning the new value.
func (r *Repository) Toggle(ctx context.Context, visitor string) (Preference, error) {
	p, _, err := r.Load(ctx, visitor)
	if err != nil {
		return p, err
	}
	p = p.Toggled()
	return p, r.Save(ctx, visitor, p)
}

// Forget drops the visitor's stored preference. Forgetting a visitor with no
// preference is not an error.
func (r *Repository) Forget(ctx context.Context, visitor string) error {
	return r.store.Delete(ctx, state.Key(Namespace, visitor))
}
