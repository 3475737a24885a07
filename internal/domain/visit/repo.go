package visit

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the set of narrow sub-record writers driven by the
// recorder, plus the reads the HTTP surface needs. Writers insert rows and
// assign generated ids; they validate nothing beyond foreign-key presence.
// All writers honor a transaction carried in ctx so that one recording
// call is a single atomic unit.
type Repository interface {
	CreateVisit(ctx context.Context, v *Visit) error
	GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error)
	ListVisitsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error)

	AddDiagnosis(ctx context.Context, d *Diagnosis) error
	AddProcedure(ctx context.Context, p *Procedure) error
	AddTherapy(ctx context.Context, t *Therapy) error
	AddTherapyTechnique(ctx context.Context, tt *TherapyTechnique) error
	AddPrescription(ctx context.Context, p *Prescription) error
	AddReferral(ctx context.Context, r *Referral) error
	AddIndication(ctx context.Context, i *Indication) error
	AddPreventiveCare(ctx context.Context, p *PreventiveCareEntry) error
	AddSurveillance(ctx context.Context, s *SurveillanceEntry) error
	AddMorbidity(ctx context.Context, m *MorbidityEntry) error
	AddAffectedSystem(ctx context.Context, a *AffectedSystemEntry) error

	GetDiagnoses(ctx context.Context, visitID uuid.UUID) ([]*Diagnosis, error)
	GetPrescriptions(ctx context.Context, visitID uuid.UUID) ([]*Prescription, error)
}
