package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -- Mock Repository --

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.appointments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByPractitionerAndDay(_ context.Context, practitionerID uuid.UUID, day time.Time, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.PractitionerID == practitionerID && a.ScheduledAt.Truncate(24*time.Hour).Equal(day.Truncate(24*time.Hour)) {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

// -- Helpers --

func seedAppointment(t *testing.T, svc *Service) *Appointment {
	t.Helper()
	a := &Appointment{
		PatientID:      uuid.New(),
		PractitionerID: uuid.New(),
		LocationID:     uuid.New(),
		ScheduledAt:    time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return a
}

// -- Tests --

func TestCreate_DefaultsToScheduled(t *testing.T) {
	svc := NewService(newMockRepo())
	a := seedAppointment(t, svc)
	if a.Status != StatusScheduled {
		t.Errorf("expected status %s, got %s", StatusScheduled, a.Status)
	}
	if a.ID == uuid.Nil {
		t.Error("id not assigned")
	}
}

func TestCreate_RejectsMissingFields(t *testing.T) {
	svc := NewService(newMockRepo())
	cases := []Appointment{
		{PractitionerID: uuid.New(), LocationID: uuid.New(), ScheduledAt: time.Now()},
		{PatientID: uuid.New(), LocationID: uuid.New(), ScheduledAt: time.Now()},
		{PatientID: uuid.New(), PractitionerID: uuid.New(), ScheduledAt: time.Now()},
		{PatientID: uuid.New(), PractitionerID: uuid.New(), LocationID: uuid.New()},
	}
	for i := range cases {
		if err := svc.Create(context.Background(), &cases[i]); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestCreate_RejectsNonScheduledStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	a := &Appointment{
		PatientID:      uuid.New(),
		PractitionerID: uuid.New(),
		LocationID:     uuid.New(),
		ScheduledAt:    time.Now(),
		Status:         StatusAttended,
	}
	if err := svc.Create(context.Background(), a); err == nil {
		t.Error("expected error creating an already-attended appointment")
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	svc := NewService(newMockRepo())

	for _, target := range []string{StatusAttended, StatusCancelled, StatusNoShow} {
		a := seedAppointment(t, svc)
		if err := svc.UpdateStatus(context.Background(), a.ID, target); err != nil {
			t.Errorf("scheduled -> %s: unexpected error %v", target, err)
		}
		got, _ := svc.Get(context.Background(), a.ID)
		if got.Status != target {
			t.Errorf("expected status %s, got %s", target, got.Status)
		}
	}
}

func TestUpdateStatus_TerminalStatesAreFinal(t *testing.T) {
	svc := NewService(newMockRepo())

	a := seedAppointment(t, svc)
	if err := svc.UpdateStatus(context.Background(), a.ID, StatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := svc.UpdateStatus(context.Background(), a.ID, StatusAttended)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_Idempotent(t *testing.T) {
	svc := NewService(newMockRepo())

	a := seedAppointment(t, svc)
	if err := svc.MarkAttended(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same-status update on a terminal appointment is a no-op.
	if err := svc.MarkAttended(context.Background(), a.ID); err != nil {
		t.Errorf("repeated MarkAttended should be a no-op, got %v", err)
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	a := seedAppointment(t, svc)
	if err := svc.UpdateStatus(context.Background(), a.ID, "rescheduled"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.MarkAttended(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
