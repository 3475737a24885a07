package catalog

import (
	"context"

	"github.com/google/uuid"
)

// DiagnosisCodeRepository looks up diagnosis reference codes.
type DiagnosisCodeRepository interface {
	Search(ctx context.Context, query string, limit int) ([]*DiagnosisCode, error)
	GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisCode, error)
}

// ProcedureCodeRepository looks up procedure reference codes.
type ProcedureCodeRepository interface {
	Search(ctx context.Context, query string, limit int) ([]*ProcedureCode, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProcedureCode, error)
}

// SpecialtyRepository lists clinical specialties.
type SpecialtyRepository interface {
	ListActive(ctx context.Context) ([]*Specialty, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error)
}

// LocationRepository lists dispensary sites.
type LocationRepository interface {
	ListActive(ctx context.Context) ([]*Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
}

// ProductRepository looks up prescribable inventory products.
type ProductRepository interface {
	Search(ctx context.Context, query string, limit int) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
}
