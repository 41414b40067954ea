package checkout

import "context"

// UpdateFunc computes the next state. Stores may call it more than once when
// an optimistic write loses a race, so it must not have side effects.
type UpdateFunc func(Session) (Session, error)

// Store keeps live checkout sessions until they expire or are discarded.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (Session, error)
	Delete(ctx context.Context, id string) error
}
