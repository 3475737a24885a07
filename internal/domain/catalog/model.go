package catalog

import (
	"github.com/google/uuid"
)

// DiagnosisCode is one entry of the diagnosis code reference table
// (CIE-10 derived). Visits reference these by id.
type DiagnosisCode struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	Active      bool      `db:"active" json:"active"`
}

// ProcedureCode is one entry of the procedure code reference table.
type ProcedureCode struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	Active      bool      `db:"active" json:"active"`
}

// Specialty is a clinical specialty offered by the dispensary.
type Specialty struct {
	ID     uuid.UUID `db:"id" json:"id"`
	Name   string    `db:"name" json:"name"`
	Active bool      `db:"active" json:"active"`
}

// Location is one dispensary site. Document number sequences are scoped
// per location and year.
type Location struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Name    string    `db:"name" json:"name"`
	Address *string   `db:"address" json:"address,omitempty"`
	Active  bool      `db:"active" json:"active"`
}

// Product is an inventory-backed prescribable item. External free-text
// products are recorded on the prescription itself and never appear here.
type Product struct {
	ID     uuid.UUID `db:"id" json:"id"`
	Name   string    `db:"name" json:"name"`
	Unit   string    `db:"unit" json:"unit"`
	Active bool      `db:"active" json:"active"`
}
