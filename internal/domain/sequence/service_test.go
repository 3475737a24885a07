package sequence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
)

// -- Mock Repository --

type scope struct {
	year       int
	locationID uuid.UUID
}

type mockRepo struct {
	mu       sync.Mutex
	counters map[scope]int64
	failNext bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{counters: make(map[scope]int64)}
}

func (m *mockRepo) NextValue(_ context.Context, year int, locationID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return 0, fmt.Errorf("deadlock detected")
	}
	k := scope{year, locationID}
	m.counters[k]++
	return m.counters[k], nil
}

func (m *mockRepo) Current(_ context.Context, year int, locationID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[scope{year, locationID}], nil
}

// -- Tests --

func TestAllocate_FreshScope(t *testing.T) {
	svc := NewService(newMockRepo())
	loc := uuid.New()

	got, err := svc.Allocate(context.Background(), 2025, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0000001" {
		t.Errorf("expected 0000001, got %s", got)
	}

	got, err = svc.Allocate(context.Background(), 2025, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0000002" {
		t.Errorf("expected 0000002, got %s", got)
	}
}

func TestAllocate_ScopesAreIndependent(t *testing.T) {
	svc := NewService(newMockRepo())
	locA := uuid.New()
	locB := uuid.New()

	a1, _ := svc.Allocate(context.Background(), 2025, locA)
	b1, _ := svc.Allocate(context.Background(), 2025, locB)
	a2, _ := svc.Allocate(context.Background(), 2026, locA)

	if a1 != "0000001" || b1 != "0000001" || a2 != "0000001" {
		t.Errorf("expected each scope to start at 0000001, got %s %s %s", a1, b1, a2)
	}
}

func TestAllocate_ConcurrentCallersGetDistinctNumbers(t *testing.T) {
	svc := NewService(newMockRepo())
	loc := uuid.New()

	const n = 64
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.Allocate(context.Background(), 2025, loc)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for num := range results {
		if seen[num] {
			t.Errorf("duplicate number issued: %s", num)
		}
		seen[num] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct numbers, got %d", n, len(seen))
	}
}

func TestAllocate_FailureDoesNotReuseNumbers(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	loc := uuid.New()

	first, err := svc.Allocate(context.Background(), 2025, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "0000001" {
		t.Fatalf("expected 0000001, got %s", first)
	}

	repo.failNext = true
	if _, err := svc.Allocate(context.Background(), 2025, loc); !errors.Is(err, ErrAllocationFailed) {
		t.Fatalf("expected ErrAllocationFailed, got %v", err)
	}

	// The failed call must not make the next success repeat a number.
	next, err := svc.Allocate(context.Background(), 2025, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next == first {
		t.Errorf("number %s reused after failed allocation", next)
	}
}

func TestAllocate_InvalidScope(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Allocate(context.Background(), 0, uuid.New()); !errors.Is(err, ErrAllocationFailed) {
		t.Error("expected ErrAllocationFailed for zero year")
	}
	if _, err := svc.Allocate(context.Background(), 2025, uuid.Nil); !errors.Is(err, ErrAllocationFailed) {
		t.Error("expected ErrAllocationFailed for nil location")
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		1:        "0000001",
		7:        "0000007",
		123:      "0000123",
		9999999:  "9999999",
		10000000: "10000000",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %s, want %s", in, got, want)
		}
	}
}
