package intake

import (
	"testing"
	"time"
)

func TestApplyStatusTransition(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name            string
		newStatus       Status
		wantCompletedAt bool
	}{
		{name: "transition to diagnosis", newStatus: StatusDiagnosis, wantCompletedAt: false},
		{name: "transition to ready", newStatus: StatusReady, wantCompletedAt: false},
		{name: "transition to delivered sets CompletedAt", newStatus: StatusDelivered, wantCompletedAt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyStatusTransition(tt.newStatus, fixedTime)

			if result.NewStatus != tt.newStatus {
				t.Errorf("NewStatus = %q, want %q", result.NewStatus, tt.newStatus)
			}
			if tt.wantCompletedAt {
				if result.CompletedAt == nil {
					t.Fatal("CompletedAt = nil, want set")
				}
				if !result.CompletedAt.Equal(fixedTime) {
					t.Errorf("CompletedAt = %v, want %v", result.CompletedAt, fixedTime)
				}
			} else if result.CompletedAt != nil {
				t.Errorf("CompletedAt = %v, want nil", result.CompletedAt)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		got, ok := ParseStatus(string(s))
		if !ok || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, ok)
		}
	}

	if _, ok := ParseStatus("Lavado"); ok {
		t.Error("ParseStatus accepted a status outside the enumeration")
	}
	if _, ok := ParseStatus(""); ok {
		t.Error("ParseStatus accepted the empty string")
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(); got != StatusReceived {
		t.Errorf("InitialStatus() = %q, want %q", got, StatusReceived)
	}
}
