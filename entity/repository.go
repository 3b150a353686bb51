package entity

import "context"

// Repository is the generic data-access contract over one entity type.
//
// GetByID returns nil without error when no record has the id. Update returns
// ErrNotFound when no record has the entity's id. Remove of a missing id is a
// no-op. Close releases the store session the repository is bound to.
type Repository[T Entity] interface {
	Add(ctx context.Context, e T) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	Update(ctx context.Context, e T) error
	Remove(ctx context.Context, e T) error
	Search(ctx context.Context, p Predicate) ([]T, error)
	SaveChanges(ctx context.Context) (int64, error)
	Close() error
}
