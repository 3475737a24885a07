package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrInvalidTransition = errors.New("invalid appointment status transition")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.PractitionerID == uuid.Nil {
		return fmt.Errorf("practitioner_id is required")
	}
	if a.LocationID == uuid.Nil {
		return fmt.Errorf("location_id is required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.Status != StatusScheduled {
		return fmt.Errorf("new appointments must start as %s", StatusScheduled)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return a, nil
}

// UpdateStatus transitions an appointment. Only scheduled appointments
// may move; attended, cancelled and no-show are terminal.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == status {
		return nil
	}
	if current.Status != StatusScheduled {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, current.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// MarkAttended flips a scheduled appointment to attended. Callers that
// carry a transaction in ctx make the flip part of that transaction.
func (s *Service) MarkAttended(ctx context.Context, id uuid.UUID) error {
	return s.UpdateStatus(ctx, id, StatusAttended)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByPractitionerAndDay(ctx context.Context, practitionerID uuid.UUID, day time.Time, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPractitionerAndDay(ctx, practitionerID, day, limit, offset)
}
