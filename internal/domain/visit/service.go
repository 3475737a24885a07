package visit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidRequest rejects a malformed recording payload before any
	// write happens.
	ErrInvalidRequest = errors.New("invalid visit request")

	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

// NumberAllocator issues prescription document numbers. The allocation
// runs in its own transaction; a later rollback of the recording wastes
// the number rather than returning it.
type NumberAllocator interface {
	Allocate(ctx context.Context, year int, locationID uuid.UUID) (string, error)
}

// AppointmentGateway transitions the originating appointment once the
// visit is recorded. Implementations must honor a transaction carried in
// ctx and return an error satisfying errors.Is(err, ErrNotFound) when the
// appointment does not exist.
type AppointmentGateway interface {
	MarkAttended(ctx context.Context, appointmentID uuid.UUID) error
}

// TxRunner wraps a function in one database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo         Repository
	tx           TxRunner
	sequences    NumberAllocator
	appointments AppointmentGateway
}

func NewService(repo Repository, tx TxRunner, sequences NumberAllocator, appointments AppointmentGateway) *Service {
	return &Service{repo: repo, tx: tx, sequences: sequences, appointments: appointments}
}

var validKinds = map[string]bool{
	KindFirst:      true,
	KindSubsequent: true,
}

var validDiagnosisStatuses = map[string]bool{
	StatusPresumptive: true,
	StatusDefinitive:  true,
}

// RecordVisit persists one visit together with its dependent sub-records
// and flips the originating appointment to attended. The document number,
// when requested, is allocated first in its own transaction; everything
// else happens inside a single transaction so a failure at any point
// leaves no partial visit behind.
func (s *Service) RecordVisit(ctx context.Context, req *RecordVisitRequest) (*Visit, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	v := &Visit{
		PatientID:      req.PatientID,
		AppointmentID:  req.AppointmentID,
		PractitionerID: req.PractitionerID,
		LocationID:     req.LocationID,
		SpecialtyID:    req.SpecialtyID,
		VisitDate:      req.VisitDate,
		Kind:           req.Kind,
		Session:        req.Session,
		Reason:         req.Reason,
		Complaint:      req.Complaint,
		Observations:   req.Observations,
	}
	if v.VisitDate.IsZero() {
		v.VisitDate = time.Now().UTC()
	}

	if req.NeedsDocumentNumber {
		number, err := s.sequences.Allocate(ctx, time.Now().UTC().Year(), req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("allocate document number: %w", err)
		}
		v.DocumentNumber = &number
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.recordCascade(txCtx, v, req)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// recordCascade writes the visit and all dependent rows. It runs inside
// the transaction opened by RecordVisit; returning an error rolls back
// every write of this call.
func (s *Service) recordCascade(ctx context.Context, v *Visit, req *RecordVisitRequest) error {
	if err := s.repo.CreateVisit(ctx, v); err != nil {
		return fmt.Errorf("create visit: %w", err)
	}

	if req.PreventiveCareType != nil {
		entry := &PreventiveCareEntry{VisitID: v.ID, CareType: *req.PreventiveCareType}
		if err := s.repo.AddPreventiveCare(ctx, entry); err != nil {
			return fmt.Errorf("add preventive care: %w", err)
		}
	}

	for _, category := range req.SurveillanceTypes {
		entry := &SurveillanceEntry{VisitID: v.ID, Category: category}
		if err := s.repo.AddSurveillance(ctx, entry); err != nil {
			return fmt.Errorf("add surveillance entry: %w", err)
		}
	}

	if req.MorbidityClassification != nil {
		morb := &MorbidityEntry{VisitID: v.ID, Classification: *req.MorbidityClassification}
		if err := s.repo.AddMorbidity(ctx, morb); err != nil {
			return fmt.Errorf("add morbidity entry: %w", err)
		}
		if morb.Classification == MorbidityGeneralIllness || morb.Classification == MorbidityWorkAccident {
			for _, system := range req.AffectedSystems {
				entry := &AffectedSystemEntry{MorbidityEntryID: morb.ID, System: system}
				if err := s.repo.AddAffectedSystem(ctx, entry); err != nil {
					return fmt.Errorf("add affected system: %w", err)
				}
			}
		}
	}

	for i := range req.Diagnoses {
		if err := s.recordDiagnosis(ctx, v.ID, &req.Diagnoses[i]); err != nil {
			return err
		}
	}

	var firstPrescriptionID *uuid.UUID
	for _, in := range req.Prescriptions {
		p := &Prescription{
			VisitID:      v.ID,
			ProductID:    in.ProductID,
			ProductName:  in.ProductName,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Dose:         in.Dose,
			Route:        in.Route,
			Frequency:    in.Frequency,
			Duration:     in.Duration,
			Instructions: in.Instructions,
		}
		if err := s.repo.AddPrescription(ctx, p); err != nil {
			return fmt.Errorf("add prescription: %w", err)
		}
		if firstPrescriptionID == nil {
			id := p.ID
			firstPrescriptionID = &id
		}
	}

	visitParent, prescriptionParent := s.parents(v.ID, req.Parenting, firstPrescriptionID)
	for _, desc := range req.Referrals {
		ref := &Referral{VisitID: visitParent, PrescriptionID: prescriptionParent, Description: desc}
		if err := s.repo.AddReferral(ctx, ref); err != nil {
			return fmt.Errorf("add referral: %w", err)
		}
	}
	for _, desc := range req.Indications {
		ind := &Indication{VisitID: visitParent, PrescriptionID: prescriptionParent, Description: desc}
		if err := s.repo.AddIndication(ctx, ind); err != nil {
			return fmt.Errorf("add indication: %w", err)
		}
	}

	if req.AppointmentID != nil {
		if err := s.appointments.MarkAttended(ctx, *req.AppointmentID); err != nil {
			return fmt.Errorf("mark appointment attended: %w", err)
		}
	}

	return nil
}

func (s *Service) recordDiagnosis(ctx context.Context, visitID uuid.UUID, in *DiagnosisInput) error {
	d := &Diagnosis{VisitID: visitID, CodeID: in.CodeID, Note: in.Note, Status: in.Status}
	if err := s.repo.AddDiagnosis(ctx, d); err != nil {
		return fmt.Errorf("add diagnosis: %w", err)
	}

	if len(in.Therapies) > 0 {
		// Deterministic write order across map iteration.
		modalities := make([]string, 0, len(in.Therapies))
		for modality := range in.Therapies {
			modalities = append(modalities, modality)
		}
		sort.Strings(modalities)

		for _, modality := range modalities {
			sel := in.Therapies[modality]
			if !sel.Selected {
				continue
			}
			th := &Therapy{DiagnosisID: d.ID, Modality: modality}
			if err := s.repo.AddTherapy(ctx, th); err != nil {
				return fmt.Errorf("add therapy: %w", err)
			}

			techniques := make([]string, 0, len(sel.Techniques))
			for technique, flagged := range sel.Techniques {
				if flagged {
					techniques = append(techniques, technique)
				}
			}
			sort.Strings(techniques)
			for _, technique := range techniques {
				tt := &TherapyTechnique{TherapyID: th.ID, Technique: technique}
				if err := s.repo.AddTherapyTechnique(ctx, tt); err != nil {
					return fmt.Errorf("add therapy technique: %w", err)
				}
			}
		}
		return nil
	}

	for _, proc := range in.Procedures {
		p := &Procedure{DiagnosisID: d.ID, CodeID: proc.CodeID, Note: proc.Note}
		if err := s.repo.AddProcedure(ctx, p); err != nil {
			return fmt.Errorf("add procedure: %w", err)
		}
	}
	return nil
}

// parents resolves the referral/indication parent per the requested mode.
func (s *Service) parents(visitID uuid.UUID, mode string, firstPrescriptionID *uuid.UUID) (*uuid.UUID, *uuid.UUID) {
	if mode == ParentingPrescription {
		return nil, firstPrescriptionID
	}
	id := visitID
	return &id, nil
}

func (s *Service) validate(req *RecordVisitRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty payload", ErrInvalidRequest)
	}
	if req.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrInvalidRequest)
	}
	if req.PractitionerID == uuid.Nil {
		return fmt.Errorf("%w: practitioner_id is required", ErrInvalidRequest)
	}
	if req.LocationID == uuid.Nil {
		return fmt.Errorf("%w: location_id is required", ErrInvalidRequest)
	}
	if req.Kind == "" {
		req.Kind = KindFirst
	}
	if !validKinds[req.Kind] {
		return fmt.Errorf("%w: invalid visit kind %q", ErrInvalidRequest, req.Kind)
	}

	if len(req.Diagnoses) == 0 {
		return fmt.Errorf("%w: at least one diagnosis is required", ErrInvalidRequest)
	}
	if req.Prescriptions == nil {
		return fmt.Errorf("%w: prescriptions must be present (may be empty)", ErrInvalidRequest)
	}

	for i := range req.Diagnoses {
		d := &req.Diagnoses[i]
		if d.CodeID == uuid.Nil {
			return fmt.Errorf("%w: diagnosis %d: code_id is required", ErrInvalidRequest, i)
		}
		if d.Status == "" {
			d.Status = StatusPresumptive
		}
		if !validDiagnosisStatuses[d.Status] {
			return fmt.Errorf("%w: diagnosis %d: invalid status %q", ErrInvalidRequest, i, d.Status)
		}
		if len(d.Procedures) > 0 && len(d.Therapies) > 0 {
			return fmt.Errorf("%w: diagnosis %d: carries both procedures and therapies", ErrInvalidRequest, i)
		}
	}

	for i, p := range req.Prescriptions {
		internal := p.ProductID != nil
		external := p.ProductName != nil && *p.ProductName != ""
		if internal == external {
			return fmt.Errorf("%w: prescription %d: exactly one of product_id or product_name is required", ErrInvalidRequest, i)
		}
		if p.Quantity <= 0 {
			return fmt.Errorf("%w: prescription %d: quantity must be positive", ErrInvalidRequest, i)
		}
	}

	switch req.Parenting {
	case "":
		req.Parenting = ParentingEncounter
	case ParentingEncounter:
	case ParentingPrescription:
		if len(req.Prescriptions) == 0 && (len(req.Referrals) > 0 || len(req.Indications) > 0) {
			return fmt.Errorf("%w: prescription parenting requires at least one prescription", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: invalid parenting mode %q", ErrInvalidRequest, req.Parenting)
	}

	return nil
}

// GetVisit returns one recorded visit.
func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error) {
	v, err := s.repo.GetVisit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: visit %s", ErrNotFound, id)
	}
	return v, nil
}

// ListVisitsByPatient returns a patient's recorded visits.
func (s *Service) ListVisitsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	return s.repo.ListVisitsByPatient(ctx, patientID, limit, offset)
}

// GetDiagnoses returns the diagnoses recorded under a visit.
func (s *Service) GetDiagnoses(ctx context.Context, visitID uuid.UUID) ([]*Diagnosis, error) {
	return s.repo.GetDiagnoses(ctx, visitID)
}

// GetPrescriptions returns the prescriptions recorded under a visit.
func (s *Service) GetPrescriptions(ctx context.Context, visitID uuid.UUID) ([]*Prescription, error) {
	return s.repo.GetPrescriptions(ctx, visitID)
}
