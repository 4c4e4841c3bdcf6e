package repositories

import (
	"context"
	"fmt"
)

// EntityWithVersion is a row guarded by an optimistic-lock counter.
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

type GetByIDFunc[T EntityWithVersion] func(ctx context.Context, id string) (T, error)

// UpdateIfVersionFunc writes entity only when the stored version still equals
// expectedVersion and returns the number of rows it changed.
type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (int64, error)

// WithRetry runs a read-mutate-write loop under optimistic locking. A mutate error
// aborts the loop without writing.
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxRetries int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	if maxRetries <= 0 {
		maxRetries = 1
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		current, err := getByID(ctx, id)
		if err != nil {
			return err
		}

		var zero T
		if current == zero {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return err
		}

		rows, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if rows == 1 {
			current.SetRowVersion(oldVersion + 1)
			return nil
		}
	}

	return fmt.Errorf("%w: %d attempts updating %q", ErrVersionConflict, maxRetries, id)
}
