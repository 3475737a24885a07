package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAllocationFailed signals that the counter could not be advanced. No
// number was issued; the caller may retry the whole operation.
var ErrAllocationFailed = errors.New("document number allocation failed")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Allocate issues the next document number for the (year, location) scope
// and returns it zero-padded to seven digits.
func (s *Service) Allocate(ctx context.Context, year int, locationID uuid.UUID) (string, error) {
	if year <= 0 {
		return "", fmt.Errorf("%w: invalid year %d", ErrAllocationFailed, year)
	}
	if locationID == uuid.Nil {
		return "", fmt.Errorf("%w: location_id is required", ErrAllocationFailed)
	}

	next, err := s.repo.NextValue(ctx, year, locationID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}
	return FormatNumber(next), nil
}

// Current reports the last issued number for a scope without advancing it.
func (s *Service) Current(ctx context.Context, year int, locationID uuid.UUID) (int64, error) {
	return s.repo.Current(ctx, year, locationID)
}
