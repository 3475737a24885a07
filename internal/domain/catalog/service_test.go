package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type mockDiagnosisCodes struct {
	codes []*DiagnosisCode
}

func (m *mockDiagnosisCodes) Search(_ context.Context, query string, limit int) ([]*DiagnosisCode, error) {
	var out []*DiagnosisCode
	for _, c := range m.codes {
		if len(out) >= limit {
			break
		}
		if strings.HasPrefix(c.Code, query) || strings.Contains(c.Description, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockDiagnosisCodes) GetByID(_ context.Context, id uuid.UUID) (*DiagnosisCode, error) {
	for _, c := range m.codes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("no rows")
}

func newServiceWithDiagnoses(codes ...*DiagnosisCode) *Service {
	return NewService(&mockDiagnosisCodes{codes: codes}, nil, nil, nil, nil)
}

func TestSearchDiagnosisCodes(t *testing.T) {
	svc := newServiceWithDiagnoses(
		&DiagnosisCode{ID: uuid.New(), Code: "J06.9", Description: "Acute upper respiratory infection", Active: true},
		&DiagnosisCode{ID: uuid.New(), Code: "M54.5", Description: "Low back pain", Active: true},
	)

	got, err := svc.SearchDiagnosisCodes(context.Background(), "J06", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Code != "J06.9" {
		t.Errorf("expected J06.9, got %v", got)
	}
}

func TestSearchDiagnosisCodes_RequiresQuery(t *testing.T) {
	svc := newServiceWithDiagnoses()
	if _, err := svc.SearchDiagnosisCodes(context.Background(), "", 10); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestSearchDiagnosisCodes_DefaultLimit(t *testing.T) {
	codes := make([]*DiagnosisCode, 0, 30)
	for i := 0; i < 30; i++ {
		codes = append(codes, &DiagnosisCode{ID: uuid.New(), Code: "Z00", Description: "General exam", Active: true})
	}
	svc := newServiceWithDiagnoses(codes...)

	got, err := svc.SearchDiagnosisCodes(context.Background(), "Z00", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != defaultSearchLimit {
		t.Errorf("expected %d results with default limit, got %d", defaultSearchLimit, len(got))
	}
}
