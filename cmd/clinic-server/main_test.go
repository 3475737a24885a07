package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/occuhealth/clinic/internal/domain/scheduling"
	"github.com/occuhealth/clinic/internal/domain/visit"
)

// ---------------------------------------------------------------------------
// AppointmentGatewayAdapter tests (error translation between domains)
// ---------------------------------------------------------------------------

type stubAppointmentRepo struct {
	appointments map[uuid.UUID]*scheduling.Appointment
}

func (s *stubAppointmentRepo) Create(_ context.Context, a *scheduling.Appointment) error {
	a.ID = uuid.New()
	s.appointments[a.ID] = a
	return nil
}

func (s *stubAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (s *stubAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := s.appointments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	return nil
}

func (s *stubAppointmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*scheduling.Appointment, int, error) {
	return nil, 0, nil
}

func (s *stubAppointmentRepo) ListByPractitionerAndDay(_ context.Context, practitionerID uuid.UUID, day time.Time, limit, offset int) ([]*scheduling.Appointment, int, error) {
	return nil, 0, nil
}

func TestAppointmentGatewayAdapter_TranslatesNotFound(t *testing.T) {
	repo := &stubAppointmentRepo{appointments: make(map[uuid.UUID]*scheduling.Appointment)}
	adapter := NewAppointmentGatewayAdapter(scheduling.NewService(repo))

	err := adapter.MarkAttended(context.Background(), uuid.New())
	if !errors.Is(err, visit.ErrNotFound) {
		t.Errorf("expected visit.ErrNotFound, got %v", err)
	}
}

func TestAppointmentGatewayAdapter_MarksAttended(t *testing.T) {
	repo := &stubAppointmentRepo{appointments: make(map[uuid.UUID]*scheduling.Appointment)}
	svc := scheduling.NewService(repo)
	adapter := NewAppointmentGatewayAdapter(svc)

	a := &scheduling.Appointment{
		PatientID:      uuid.New(),
		PractitionerID: uuid.New(),
		LocationID:     uuid.New(),
		ScheduledAt:    time.Now(),
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	if err := adapter.MarkAttended(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(context.Background(), a.ID)
	if got.Status != scheduling.StatusAttended {
		t.Errorf("expected status %s, got %s", scheduling.StatusAttended, got.Status)
	}
}
