package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. An appointment starts scheduled; recording the
// visit flips it to attended, the front desk may cancel it, and the
// end-of-day sweep marks the rest no-show.
const (
	StatusScheduled = "scheduled"
	StatusAttended  = "attended"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusAttended, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	PractitionerID uuid.UUID  `db:"practitioner_id" json:"practitioner_id"`
	LocationID     uuid.UUID  `db:"location_id" json:"location_id"`
	SpecialtyID    *uuid.UUID `db:"specialty_id" json:"specialty_id,omitempty"`
	ScheduledAt    time.Time  `db:"scheduled_at" json:"scheduled_at"`
	Status         string     `db:"status" json:"status"`
	Reason         *string    `db:"reason" json:"reason,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
