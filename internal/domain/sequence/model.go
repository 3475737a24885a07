package sequence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentSequence maps to the document_sequence table. One row exists per
// (year, location) scope; last_value is the last issued number. Rows are
// created on first use and never deleted.
type DocumentSequence struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Year       int       `db:"year" json:"year"`
	LocationID uuid.UUID `db:"location_id" json:"location_id"`
	LastValue  int64     `db:"last_value" json:"last_value"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// documentNumberWidth is the fixed width of the external representation.
const documentNumberWidth = 7

// FormatNumber renders a counter value in its zero-padded external form.
func FormatNumber(v int64) string {
	return fmt.Sprintf("%0*d", documentNumberWidth, v)
}
