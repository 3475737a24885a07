package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// -- Diagnosis codes --

type diagnosisCodeRepoPG struct {
	pool *pgxpool.Pool
}

func NewDiagnosisCodeRepo(pool *pgxpool.Pool) DiagnosisCodeRepository {
	return &diagnosisCodeRepoPG{pool: pool}
}

func (r *diagnosisCodeRepoPG) Search(ctx context.Context, query string, limit int) ([]*DiagnosisCode, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, description, active FROM diagnosis_code
		WHERE active AND (code ILIKE $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY code LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []*DiagnosisCode
	for rows.Next() {
		var c DiagnosisCode
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.Active); err != nil {
			return nil, err
		}
		codes = append(codes, &c)
	}
	return codes, nil
}

func (r *diagnosisCodeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisCode, error) {
	var c DiagnosisCode
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, description, active FROM diagnosis_code WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Description, &c.Active)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// -- Procedure codes --

type procedureCodeRepoPG struct {
	pool *pgxpool.Pool
}

func NewProcedureCodeRepo(pool *pgxpool.Pool) ProcedureCodeRepository {
	return &procedureCodeRepoPG{pool: pool}
}

func (r *procedureCodeRepoPG) Search(ctx context.Context, query string, limit int) ([]*ProcedureCode, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, description, active FROM procedure_code
		WHERE active AND (code ILIKE $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY code LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []*ProcedureCode
	for rows.Next() {
		var c ProcedureCode
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.Active); err != nil {
			return nil, err
		}
		codes = append(codes, &c)
	}
	return codes, nil
}

func (r *procedureCodeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ProcedureCode, error) {
	var c ProcedureCode
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, description, active FROM procedure_code WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Description, &c.Active)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// -- Specialties --

type specialtyRepoPG struct {
	pool *pgxpool.Pool
}

func NewSpecialtyRepo(pool *pgxpool.Pool) SpecialtyRepository {
	return &specialtyRepoPG{pool: pool}
}

func (r *specialtyRepoPG) ListActive(ctx context.Context) ([]*Specialty, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, active FROM specialty WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []*Specialty
	for rows.Next() {
		var s Specialty
		if err := rows.Scan(&s.ID, &s.Name, &s.Active); err != nil {
			return nil, err
		}
		specs = append(specs, &s)
	}
	return specs, nil
}

func (r *specialtyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error) {
	var s Specialty
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, active FROM specialty WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Active)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// -- Locations --

type locationRepoPG struct {
	pool *pgxpool.Pool
}

func NewLocationRepo(pool *pgxpool.Pool) LocationRepository {
	return &locationRepoPG{pool: pool}
}

func (r *locationRepoPG) ListActive(ctx context.Context) ([]*Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, address, active FROM location WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []*Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Active); err != nil {
			return nil, err
		}
		locs = append(locs, &l)
	}
	return locs, nil
}

func (r *locationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	var l Location
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, address, active FROM location WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Address, &l.Active)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// -- Products --

type productRepoPG struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) ProductRepository {
	return &productRepoPG{pool: pool}
}

func (r *productRepoPG) Search(ctx context.Context, query string, limit int) ([]*Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, unit, active FROM product
		WHERE active AND name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Active); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, nil
}

func (r *productRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, unit, active FROM product WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Unit, &p.Active)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
