package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

func newTestDeadlineService() (*DeadlineServiceImpl, *mockIntakeRepo, *mockServiceLogRepo) {
	intakeRepo := newMockIntakeRepo()
	logRepo := newMockServiceLogRepo()

	intakeRepo.intakes = append(intakeRepo.intakes, &secondary.IntakeRecord{
		ID: "ING-001", CustomerID: "CUST-001", VehicleID: "VEH-001",
		Status: "Diagnóstico", Reason: "Golpe en defensa",
	})

	service := NewDeadlineService(intakeRepo, logRepo)
	return service, intakeRepo, logRepo
}

// ============================================================================
// SetDeadline Tests
// ============================================================================

func TestSetDeadline_Success(t *testing.T) {
	service, intakeRepo, logRepo := newTestDeadlineService()

	err := service.SetDeadline(context.Background(), primary.SetDeadlineRequest{
		IntakeID: "ING-001", Days: 1, Hours: 4, Minutes: 30,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	record := intakeRepo.intakes[0]
	if !record.DeadlineActive {
		t.Error("expected deadline to be active")
	}
	if record.DeadlineDays != 1 || record.DeadlineHours != 4 || record.DeadlineMinutes != 30 {
		t.Errorf("unexpected budget: %dd %dh %dm",
			record.DeadlineDays, record.DeadlineHours, record.DeadlineMinutes)
	}
	if record.DeadlineStart == "" {
		t.Error("expected deadline start to be stamped")
	}

	entry := logRepo.lastEntry()
	if entry == nil || entry.Category != "Plazo asignado" {
		t.Errorf("expected a Plazo asignado log entry, got %+v", entry)
	}
	if entry.Description != "Plazo asignado: 1d 4h 30m 0s" {
		t.Errorf("unexpected description %q", entry.Description)
	}
}

func TestSetDeadline_ZeroBudget(t *testing.T) {
	service, _, logRepo := newTestDeadlineService()

	err := service.SetDeadline(context.Background(), primary.SetDeadlineRequest{
		IntakeID: "ING-001",
	})

	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if logRepo.lastEntry() != nil {
		t.Error("expected no log entry after a rejected budget")
	}
}

func TestSetDeadline_NegativeComponent(t *testing.T) {
	service, _, _ := newTestDeadlineService()

	err := service.SetDeadline(context.Background(), primary.SetDeadlineRequest{
		IntakeID: "ING-001", Days: 1, Hours: -2,
	})

	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSetDeadline_UnknownIntake(t *testing.T) {
	service, _, _ := newTestDeadlineService()

	err := service.SetDeadline(context.Background(), primary.SetDeadlineRequest{
		IntakeID: "ING-999", Days: 1,
	})

	if !errors.Is(err, primary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================================
// FinishDeadline Tests
// ============================================================================

func TestFinishDeadline_Success(t *testing.T) {
	service, intakeRepo, logRepo := newTestDeadlineService()
	ctx := context.Background()

	if err := service.SetDeadline(ctx, primary.SetDeadlineRequest{
		IntakeID: "ING-001", Days: 2,
	}); err != nil {
		t.Fatalf("failed to set deadline: %v", err)
	}

	outcome, err := service.FinishDeadline(ctx, "ING-001")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outcome.Category != "TEMPRANO" {
		t.Errorf("expected category TEMPRANO, got %s", outcome.Category)
	}
	if intakeRepo.intakes[0].DeadlineActive {
		t.Error("expected deadline to be cleared")
	}
	if len(service.Readings(time.Now())) != 0 {
		t.Error("expected the tracker to drop the finished intake")
	}

	entry := logRepo.lastEntry()
	if entry == nil || entry.Category != "Plazo Finalizado - TEMPRANO" {
		t.Errorf("expected a Plazo Finalizado - TEMPRANO log entry, got %+v", entry)
	}
	if entry.Description != "El trabajo se completó con tiempo de sobra" {
		t.Errorf("unexpected description %q", entry.Description)
	}
}

func TestFinishDeadline_Overdue(t *testing.T) {
	service, intakeRepo, logRepo := newTestDeadlineService()
	ctx := context.Background()

	// A deadline that started well past its one-minute budget.
	intakeRepo.intakes[0].DeadlineDays = 0
	intakeRepo.intakes[0].DeadlineHours = 0
	intakeRepo.intakes[0].DeadlineMinutes = 1
	intakeRepo.intakes[0].DeadlineStart = time.Now().UTC().Add(-3 * time.Minute).Format(time.RFC3339)
	intakeRepo.intakes[0].DeadlineActive = true

	outcome, err := service.FinishDeadline(ctx, "ING-001")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outcome.Category != "ATRASADO" {
		t.Errorf("expected category ATRASADO, got %s", outcome.Category)
	}
	if outcome.Overrun <= 0 {
		t.Errorf("expected a positive overrun, got %v", outcome.Overrun)
	}
	if outcome.Percent < 100 {
		t.Errorf("expected percent >= 100, got %.2f", outcome.Percent)
	}

	entry := logRepo.lastEntry()
	if entry == nil || entry.Category != "Plazo Finalizado - ATRASADO" {
		t.Errorf("expected a Plazo Finalizado - ATRASADO log entry, got %+v", entry)
	}
}

func TestFinishDeadline_NotActive(t *testing.T) {
	service, _, logRepo := newTestDeadlineService()

	_, err := service.FinishDeadline(context.Background(), "ING-001")

	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if logRepo.lastEntry() != nil {
		t.Error("expected no log entry when finishing a non-active deadline")
	}
}

func TestFinishDeadline_UnknownIntake(t *testing.T) {
	service, _, _ := newTestDeadlineService()

	_, err := service.FinishDeadline(context.Background(), "ING-999")

	if !errors.Is(err, primary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================================
// Readings / Reload Tests
// ============================================================================

func TestReadings_BandProgression(t *testing.T) {
	service, _, _ := newTestDeadlineService()
	ctx := context.Background()

	if err := service.SetDeadline(ctx, primary.SetDeadlineRequest{
		IntakeID: "ING-001", Hours: 1,
	}); err != nil {
		t.Fatalf("failed to set deadline: %v", err)
	}

	cases := []struct {
		elapsed time.Duration
		band    string
	}{
		{10 * time.Minute, "on-time"},  // ~17%
		{30 * time.Minute, "caution"},  // 50%
		{50 * time.Minute, "urgent"},   // ~83%
		{90 * time.Minute, "overdue"},  // 150%
	}
	for _, tc := range cases {
		readings := service.Readings(time.Now().Add(tc.elapsed))
		if len(readings) != 1 {
			t.Fatalf("expected 1 reading, got %d", len(readings))
		}
		if readings[0].Band != tc.band {
			t.Errorf("after %v: expected band %s, got %s", tc.elapsed, tc.band, readings[0].Band)
		}
	}
}

func TestReadings_RemainingGoesNegative(t *testing.T) {
	service, _, _ := newTestDeadlineService()
	ctx := context.Background()

	if err := service.SetDeadline(ctx, primary.SetDeadlineRequest{
		IntakeID: "ING-001", Minutes: 30,
	}); err != nil {
		t.Fatalf("failed to set deadline: %v", err)
	}

	readings := service.Readings(time.Now().Add(45 * time.Minute))
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(readings))
	}
	if readings[0].Remaining >= 0 {
		t.Errorf("expected negative remaining, got %v", readings[0].Remaining)
	}
}

func TestReload_RebuildsTracker(t *testing.T) {
	service, intakeRepo, _ := newTestDeadlineService()
	ctx := context.Background()

	start := time.Now().UTC().Add(-40 * time.Minute).Format(time.RFC3339)
	intakeRepo.intakes[0].DeadlineDays = 0
	intakeRepo.intakes[0].DeadlineHours = 1
	intakeRepo.intakes[0].DeadlineMinutes = 0
	intakeRepo.intakes[0].DeadlineStart = start
	intakeRepo.intakes[0].DeadlineActive = true

	intakeRepo.intakes = append(intakeRepo.intakes, &secondary.IntakeRecord{
		ID: "ING-002", CustomerID: "CUST-001", VehicleID: "VEH-001",
		Status: "Pintura", Reason: "Rayón en cofre",
	})

	if err := service.Reload(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	readings := service.Readings(time.Now())
	if len(readings) != 1 {
		t.Fatalf("expected 1 tracked intake after reload, got %d", len(readings))
	}
	if readings[0].IntakeID != "ING-001" {
		t.Errorf("expected ING-001, got %s", readings[0].IntakeID)
	}
	// 40 of 60 minutes consumed survives the rebuild: 66.7% sits in the
	// urgent band.
	if readings[0].Band != "urgent" {
		t.Errorf("expected band urgent, got %s", readings[0].Band)
	}
}
