package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Employer fields carry the
// occupational-health context every visit reports against.
type Patient struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Active         bool       `db:"active" json:"active"`
	RecordNumber   string     `db:"record_number" json:"record_number"`
	NationalID     *string    `db:"national_id" json:"national_id,omitempty"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	BirthDate      *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender         *string    `db:"gender" json:"gender,omitempty"`
	PhoneMobile    *string    `db:"phone_mobile" json:"phone_mobile,omitempty"`
	Email          *string    `db:"email" json:"email,omitempty"`
	AddressLine    *string    `db:"address_line" json:"address_line,omitempty"`
	City           *string    `db:"city" json:"city,omitempty"`
	EmployerName   *string    `db:"employer_name" json:"employer_name,omitempty"`
	JobTitle       *string    `db:"job_title" json:"job_title,omitempty"`
	WorkDepartment *string    `db:"work_department" json:"work_department,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
