package visit

import (
	"time"

	"github.com/google/uuid"
)

// RecordVisitRequest is the composite payload submitted when a clinician
// finishes a visit. Optional sections drive which sub-records are written.
type RecordVisitRequest struct {
	PatientID      uuid.UUID  `json:"patient_id"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	PractitionerID uuid.UUID  `json:"practitioner_id"`
	LocationID     uuid.UUID  `json:"location_id"`
	SpecialtyID    *uuid.UUID `json:"specialty_id,omitempty"`
	VisitDate      time.Time  `json:"visit_date"`
	Kind           string     `json:"kind"`
	Session        *string    `json:"session,omitempty"`
	Reason         *string    `json:"reason,omitempty"`
	Complaint      *string    `json:"complaint,omitempty"`
	Observations   *string    `json:"observations,omitempty"`

	// NeedsDocumentNumber requests a prescription document number from
	// the per-(year, location) counter before recording.
	NeedsDocumentNumber bool `json:"needs_document_number"`

	// Diagnoses is required and must be non-empty.
	Diagnoses []DiagnosisInput `json:"diagnoses"`

	// Prescriptions must be present, possibly as an empty list.
	Prescriptions []PrescriptionInput `json:"prescriptions"`

	Referrals   []string `json:"referrals,omitempty"`
	Indications []string `json:"indications,omitempty"`

	// Parenting selects where referrals and indications attach:
	// ParentingEncounter (default) or ParentingPrescription (the
	// physiotherapy entry point, attaching to the first prescription).
	Parenting string `json:"parenting,omitempty"`

	PreventiveCareType      *string  `json:"preventive_care_type,omitempty"`
	SurveillanceTypes       []string `json:"surveillance_types,omitempty"`
	MorbidityClassification *string  `json:"morbidity_classification,omitempty"`
	AffectedSystems         []string `json:"affected_systems,omitempty"`
}

// DiagnosisInput carries one diagnosis plus exactly one of its two
// dependent branches: a procedure list (general/dental visits) or a
// therapy selection (physiotherapy visits). Payloads carrying both are
// rejected at validation time.
type DiagnosisInput struct {
	CodeID     uuid.UUID                   `json:"code_id"`
	Note       *string                     `json:"note,omitempty"`
	Status     string                      `json:"status"`
	Procedures []ProcedureInput            `json:"procedures,omitempty"`
	Therapies  map[string]TherapySelection `json:"therapies,omitempty"`
}

// ProcedureInput is one procedure under a diagnosis.
type ProcedureInput struct {
	CodeID uuid.UUID `json:"code_id"`
	Note   *string   `json:"note,omitempty"`
}

// TherapySelection flags a therapy modality and the techniques chosen
// under it. Only entries with Selected true produce rows, and only
// techniques flagged true produce technique associations.
type TherapySelection struct {
	Selected   bool            `json:"selected"`
	Techniques map[string]bool `json:"techniques,omitempty"`
}

// PrescriptionInput is one prescribed product: internal when ProductID is
// set, external free-text otherwise.
type PrescriptionInput struct {
	ProductID    *uuid.UUID `json:"product_id,omitempty"`
	ProductName  *string    `json:"product_name,omitempty"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	Dose         *string    `json:"dose,omitempty"`
	Route        *string    `json:"route,omitempty"`
	Frequency    *string    `json:"frequency,omitempty"`
	Duration     *string    `json:"duration,omitempty"`
	Instructions *string    `json:"instructions,omitempty"`
}
