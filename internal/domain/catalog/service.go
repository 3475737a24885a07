package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides reference-data lookups for the clinical surfaces:
// diagnosis and procedure codes, specialties, locations and prescribable
// products.
type Service struct {
	diagnosisCodes DiagnosisCodeRepository
	procedureCodes ProcedureCodeRepository
	specialties    SpecialtyRepository
	locations      LocationRepository
	products       ProductRepository
}

func NewService(
	diagnosisCodes DiagnosisCodeRepository,
	procedureCodes ProcedureCodeRepository,
	specialties SpecialtyRepository,
	locations LocationRepository,
	products ProductRepository,
) *Service {
	return &Service{
		diagnosisCodes: diagnosisCodes,
		procedureCodes: procedureCodes,
		specialties:    specialties,
		locations:      locations,
		products:       products,
	}
}

const defaultSearchLimit = 20

func (s *Service) SearchDiagnosisCodes(ctx context.Context, query string, limit int) ([]*DiagnosisCode, error) {
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.diagnosisCodes.Search(ctx, query, limit)
}

func (s *Service) GetDiagnosisCode(ctx context.Context, id uuid.UUID) (*DiagnosisCode, error) {
	return s.diagnosisCodes.GetByID(ctx, id)
}

func (s *Service) SearchProcedureCodes(ctx context.Context, query string, limit int) ([]*ProcedureCode, error) {
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.procedureCodes.Search(ctx, query, limit)
}

func (s *Service) GetProcedureCode(ctx context.Context, id uuid.UUID) (*ProcedureCode, error) {
	return s.procedureCodes.GetByID(ctx, id)
}

func (s *Service) ListSpecialties(ctx context.Context) ([]*Specialty, error) {
	return s.specialties.ListActive(ctx)
}

func (s *Service) ListLocations(ctx context.Context) ([]*Location, error) {
	return s.locations.ListActive(ctx)
}

func (s *Service) SearchProducts(ctx context.Context, query string, limit int) ([]*Product, error) {
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.products.Search(ctx, query, limit)
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.products.GetByID(ctx, id)
}
