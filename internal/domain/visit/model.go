package visit

import (
	"time"

	"github.com/google/uuid"
)

// Visit kinds.
const (
	KindFirst      = "first"
	KindSubsequent = "subsequent"
)

// Diagnosis statuses.
const (
	StatusPresumptive = "presumptive"
	StatusDefinitive  = "definitive"
)

// Referral/indication parenting modes. The general entry point parents
// them to the visit; the physiotherapy entry point parents them to the
// prescription. Both are externally visible and must stay distinct.
const (
	ParentingEncounter    = "encounter"
	ParentingPrescription = "prescription"
)

// Morbidity classifications that carry affected-system detail rows.
const (
	MorbidityGeneralIllness = "general-illness"
	MorbidityWorkAccident   = "work-accident"
)

// Visit maps to the visit table: one clinical encounter. Identity is
// immutable after creation; only the document number may be attached
// later.
type Visit struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID  *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	PractitionerID uuid.UUID  `db:"practitioner_id" json:"practitioner_id"`
	LocationID     uuid.UUID  `db:"location_id" json:"location_id"`
	SpecialtyID    *uuid.UUID `db:"specialty_id" json:"specialty_id,omitempty"`
	VisitDate      time.Time  `db:"visit_date" json:"visit_date"`
	Kind           string     `db:"kind" json:"kind"`
	Session        *string    `db:"session" json:"session,omitempty"`
	Reason         *string    `db:"reason" json:"reason,omitempty"`
	Complaint      *string    `db:"complaint" json:"complaint,omitempty"`
	Observations   *string    `db:"observations" json:"observations,omitempty"`
	DocumentNumber *string    `db:"document_number" json:"document_number,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Diagnosis maps to the visit_diagnosis table.
type Diagnosis struct {
	ID      uuid.UUID `db:"id" json:"id"`
	VisitID uuid.UUID `db:"visit_id" json:"visit_id"`
	CodeID  uuid.UUID `db:"code_id" json:"code_id"`
	Note    *string   `db:"note" json:"note,omitempty"`
	Status  string    `db:"status" json:"status"`
}

// Procedure maps to the visit_procedure table; belongs to one diagnosis.
type Procedure struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DiagnosisID uuid.UUID `db:"diagnosis_id" json:"diagnosis_id"`
	CodeID      uuid.UUID `db:"code_id" json:"code_id"`
	Note        *string   `db:"note" json:"note,omitempty"`
}

// Therapy maps to the visit_therapy table; belongs to one diagnosis.
type Therapy struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DiagnosisID uuid.UUID `db:"diagnosis_id" json:"diagnosis_id"`
	Modality    string    `db:"modality" json:"modality"`
}

// TherapyTechnique maps to the visit_therapy_technique table.
type TherapyTechnique struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TherapyID uuid.UUID `db:"therapy_id" json:"therapy_id"`
	Technique string    `db:"technique" json:"technique"`
}

// Prescription maps to the visit_prescription table. Either an internal
// (inventory-backed) product id or an external free-text product name is
// set, never both.
type Prescription struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	VisitID      uuid.UUID  `db:"visit_id" json:"visit_id"`
	ProductID    *uuid.UUID `db:"product_id" json:"product_id,omitempty"`
	ProductName  *string    `db:"product_name" json:"product_name,omitempty"`
	Quantity     float64    `db:"quantity" json:"quantity"`
	Unit         string     `db:"unit" json:"unit"`
	Dose         *string    `db:"dose" json:"dose,omitempty"`
	Route        *string    `db:"route" json:"route,omitempty"`
	Frequency    *string    `db:"frequency" json:"frequency,omitempty"`
	Duration     *string    `db:"duration" json:"duration,omitempty"`
	Instructions *string    `db:"instructions" json:"instructions,omitempty"`
}

// Referral maps to the visit_referral table. Exactly one of VisitID or
// PrescriptionID is set, depending on the parenting mode of the call that
// produced it.
type Referral struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	VisitID        *uuid.UUID `db:"visit_id" json:"visit_id,omitempty"`
	PrescriptionID *uuid.UUID `db:"prescription_id" json:"prescription_id,omitempty"`
	Description    string     `db:"description" json:"description"`
}

// Indication maps to the visit_indication table; same parenting rules as
// Referral.
type Indication struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	VisitID        *uuid.UUID `db:"visit_id" json:"visit_id,omitempty"`
	PrescriptionID *uuid.UUID `db:"prescription_id" json:"prescription_id,omitempty"`
	Description    string     `db:"description" json:"description"`
}

// PreventiveCareEntry maps to the visit_preventive_care table; at most one
// per visit.
type PreventiveCareEntry struct {
	ID       uuid.UUID `db:"id" json:"id"`
	VisitID  uuid.UUID `db:"visit_id" json:"visit_id"`
	CareType string    `db:"care_type" json:"care_type"`
}

// SurveillanceEntry maps to the visit_surveillance table.
type SurveillanceEntry struct {
	ID       uuid.UUID `db:"id" json:"id"`
	VisitID  uuid.UUID `db:"visit_id" json:"visit_id"`
	Category string    `db:"category" json:"category"`
}

// MorbidityEntry maps to the visit_morbidity table.
type MorbidityEntry struct {
	ID             uuid.UUID `db:"id" json:"id"`
	VisitID        uuid.UUID `db:"visit_id" json:"visit_id"`
	Classification string    `db:"classification" json:"classification"`
}

// AffectedSystemEntry maps to the visit_affected_system table; only
// populated for the general-illness and work-accident classifications.
type AffectedSystemEntry struct {
	ID               uuid.UUID `db:"id" json:"id"`
	MorbidityEntryID uuid.UUID `db:"morbidity_entry_id" json:"morbidity_entry_id"`
	System           string    `db:"system" json:"system"`
}
