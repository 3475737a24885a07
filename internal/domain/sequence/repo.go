package sequence

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// NextValue issues the next counter value for the (year, location)
	// scope. The read-increment-write runs under an exclusive row lock in
	// a dedicated transaction, so concurrent callers for the same scope
	// serialize and never observe the same value. A failed allocation
	// rolls back and the skipped value is simply never issued.
	NextValue(ctx context.Context, year int, locationID uuid.UUID) (int64, error)

	// Current returns the last issued value for a scope, zero if the
	// scope has no row yet.
	Current(ctx context.Context, year int, locationID uuid.UUID) (int64, error)
}
