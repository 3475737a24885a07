package patient

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

const patientCols = `id, active, record_number, national_id, first_name, last_name,
	birth_date, gender, phone_mobile, email, address_line, city,
	employer_name, job_title, work_department, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (
			id, active, record_number, national_id, first_name, last_name,
			birth_date, gender, phone_mobile, email, address_line, city,
			employer_name, job_title, work_department
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.Active, p.RecordNumber, p.NationalID, p.FirstName, p.LastName,
		p.BirthDate, p.Gender, p.PhoneMobile, p.Email, p.AddressLine, p.City,
		p.EmployerName, p.JobTitle, p.WorkDepartment,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByRecordNumber(ctx context.Context, recordNumber string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE record_number = $1`, recordNumber))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			active = $2, national_id = $3, first_name = $4, last_name = $5,
			birth_date = $6, gender = $7, phone_mobile = $8, email = $9,
			address_line = $10, city = $11, employer_name = $12, job_title = $13,
			work_department = $14, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Active, p.NationalID, p.FirstName, p.LastName,
		p.BirthDate, p.Gender, p.PhoneMobile, p.Email,
		p.AddressLine, p.City, p.EmployerName, p.JobTitle, p.WorkDepartment,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + query + "%"
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patient
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR record_number ILIKE $1`,
		pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR record_number ILIKE $1
		ORDER BY last_name, first_name LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(
			&p.ID, &p.Active, &p.RecordNumber, &p.NationalID, &p.FirstName, &p.LastName,
			&p.BirthDate, &p.Gender, &p.PhoneMobile, &p.Email, &p.AddressLine, &p.City,
			&p.EmployerName, &p.JobTitle, &p.WorkDepartment, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		patients = append(patients, &p)
	}
	return patients, total, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.Active, &p.RecordNumber, &p.NationalID, &p.FirstName, &p.LastName,
		&p.BirthDate, &p.Gender, &p.PhoneMobile, &p.Email, &p.AddressLine, &p.City,
		&p.EmployerName, &p.JobTitle, &p.WorkDepartment, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
