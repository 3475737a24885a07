package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists appointments. UpdateStatus honors a transaction
// carried in ctx so a visit recording can flip the status inside its own
// atomic unit.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByPractitionerAndDay(ctx context.Context, practitionerID uuid.UUID, day time.Time, limit, offset int) ([]*Appointment, int, error)
}
