package visit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/occuhealth/clinic/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const visitCols = `id, patient_id, appointment_id, practitioner_id, location_id, specialty_id,
	visit_date, kind, session, reason, complaint, observations, document_number,
	created_at, updated_at`

func (r *repoPG) CreateVisit(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit (
			id, patient_id, appointment_id, practitioner_id, location_id, specialty_id,
			visit_date, kind, session, reason, complaint, observations, document_number
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		v.ID, v.PatientID, v.AppointmentID, v.PractitionerID, v.LocationID, v.SpecialtyID,
		v.VisitDate, v.Kind, v.Session, v.Reason, v.Complaint, v.Observations, v.DocumentNumber,
	)
	return err
}

func (r *repoPG) GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return scanVisit(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM visit WHERE id = $1`, id))
}

func (r *repoPG) ListVisitsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM visit WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+` FROM visit WHERE patient_id = $1 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var visits []*Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(
			&v.ID, &v.PatientID, &v.AppointmentID, &v.PractitionerID, &v.LocationID, &v.SpecialtyID,
			&v.VisitDate, &v.Kind, &v.Session, &v.Reason, &v.Complaint, &v.Observations, &v.DocumentNumber,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		visits = append(visits, &v)
	}
	return visits, total, nil
}

func (r *repoPG) AddDiagnosis(ctx context.Context, d *Diagnosis) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_diagnosis (id, visit_id, code_id, note, status)
		VALUES ($1,$2,$3,$4,$5)`,
		d.ID, d.VisitID, d.CodeID, d.Note, d.Status,
	)
	return err
}

func (r *repoPG) AddProcedure(ctx context.Context, p *Procedure) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_procedure (id, diagnosis_id, code_id, note)
		VALUES ($1,$2,$3,$4)`,
		p.ID, p.DiagnosisID, p.CodeID, p.Note,
	)
	return err
}

func (r *repoPG) AddTherapy(ctx context.Context, t *Therapy) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_therapy (id, diagnosis_id, modality)
		VALUES ($1,$2,$3)`,
		t.ID, t.DiagnosisID, t.Modality,
	)
	return err
}

func (r *repoPG) AddTherapyTechnique(ctx context.Context, tt *TherapyTechnique) error {
	tt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_therapy_technique (id, therapy_id, technique)
		VALUES ($1,$2,$3)`,
		tt.ID, tt.TherapyID, tt.Technique,
	)
	return err
}

func (r *repoPG) AddPrescription(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_prescription (
			id, visit_id, product_id, product_name, quantity, unit,
			dose, route, frequency, duration, instructions
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.VisitID, p.ProductID, p.ProductName, p.Quantity, p.Unit,
		p.Dose, p.Route, p.Frequency, p.Duration, p.Instructions,
	)
	return err
}

func (r *repoPG) AddReferral(ctx context.Context, ref *Referral) error {
	ref.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_referral (id, visit_id, prescription_id, description)
		VALUES ($1,$2,$3,$4)`,
		ref.ID, ref.VisitID, ref.PrescriptionID, ref.Description,
	)
	return err
}

func (r *repoPG) AddIndication(ctx context.Context, ind *Indication) error {
	ind.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_indication (id, visit_id, prescription_id, description)
		VALUES ($1,$2,$3,$4)`,
		ind.ID, ind.VisitID, ind.PrescriptionID, ind.Description,
	)
	return err
}

func (r *repoPG) AddPreventiveCare(ctx context.Context, p *PreventiveCareEntry) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_preventive_care (id, visit_id, care_type)
		VALUES ($1,$2,$3)`,
		p.ID, p.VisitID, p.CareType,
	)
	return err
}

func (r *repoPG) AddSurveillance(ctx context.Context, s *SurveillanceEntry) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_surveillance (id, visit_id, category)
		VALUES ($1,$2,$3)`,
		s.ID, s.VisitID, s.Category,
	)
	return err
}

func (r *repoPG) AddMorbidity(ctx context.Context, m *MorbidityEntry) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_morbidity (id, visit_id, classification)
		VALUES ($1,$2,$3)`,
		m.ID, m.VisitID, m.Classification,
	)
	return err
}

func (r *repoPG) AddAffectedSystem(ctx context.Context, a *AffectedSystemEntry) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_affected_system (id, morbidity_entry_id, system)
		VALUES ($1,$2,$3)`,
		a.ID, a.MorbidityEntryID, a.System,
	)
	return err
}

func (r *repoPG) GetDiagnoses(ctx context.Context, visitID uuid.UUID) ([]*Diagnosis, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, visit_id, code_id, note, status
		FROM visit_diagnosis WHERE visit_id = $1`, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diags []*Diagnosis
	for rows.Next() {
		var d Diagnosis
		if err := rows.Scan(&d.ID, &d.VisitID, &d.CodeID, &d.Note, &d.Status); err != nil {
			return nil, err
		}
		diags = append(diags, &d)
	}
	return diags, nil
}

func (r *repoPG) GetPrescriptions(ctx context.Context, visitID uuid.UUID) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, visit_id, product_id, product_name, quantity, unit,
			dose, route, frequency, duration, instructions
		FROM visit_prescription WHERE visit_id = $1`, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scripts []*Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.VisitID, &p.ProductID, &p.ProductName, &p.Quantity, &p.Unit,
			&p.Dose, &p.Route, &p.Frequency, &p.Duration, &p.Instructions); err != nil {
			return nil, err
		}
		scripts = append(scripts, &p)
	}
	return scripts, nil
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(
		&v.ID, &v.PatientID, &v.AppointmentID, &v.PractitionerID, &v.LocationID, &v.SpecialtyID,
		&v.VisitDate, &v.Kind, &v.Session, &v.Reason, &v.Complaint, &v.Observations, &v.DocumentNumber,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
