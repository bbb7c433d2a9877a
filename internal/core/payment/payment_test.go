package payment

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		paid  float64
		want  Status
	}{
		{name: "nothing paid is pending", total: 1000, paid: 0, want: StatusPending},
		{name: "fresh zero ledger is pending", total: 0, paid: 0, want: StatusPending},
		{name: "partial payment", total: 1000, paid: 400, want: StatusPartial},
		{name: "exact payment is paid", total: 1000, paid: 1000, want: StatusPaid},
		{name: "over-payment is paid", total: 1000, paid: 1200, want: StatusPaid},
		{name: "almost complete is still partial", total: 1000, paid: 999.99, want: StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.total, tt.paid); got != tt.want {
				t.Errorf("DeriveStatus(%v, %v) = %q, want %q", tt.total, tt.paid, got, tt.want)
			}
		})
	}
}

func TestApplyPaymentSequence(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	// set_price(total=1000) then record_payment(400, Efectivo)
	first := ApplyPayment(1000, 0, nil, 400, "Efectivo", "USR-001", "", now)
	if first.NewPaid != 400 {
		t.Errorf("NewPaid = %v, want 400", first.NewPaid)
	}
	if first.NewStatus != StatusPartial {
		t.Errorf("NewStatus = %q, want %q", first.NewStatus, StatusPartial)
	}
	if pending := 1000 - first.NewPaid; pending != 600 {
		t.Errorf("pending = %v, want 600", pending)
	}
	if len(first.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(first.History))
	}

	// record_payment(600, Tarjeta) settles the ledger
	second := ApplyPayment(1000, first.NewPaid, first.History, 600, "Tarjeta", "USR-001", "", now.Add(time.Hour))
	if second.NewPaid != 1000 {
		t.Errorf("NewPaid = %v, want 1000", second.NewPaid)
	}
	if second.NewStatus != StatusPaid {
		t.Errorf("NewStatus = %q, want %q", second.NewStatus, StatusPaid)
	}
	if len(second.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(second.History))
	}
	if second.History[0].Method != "Efectivo" || second.History[1].Method != "Tarjeta" {
		t.Errorf("history order broken: %+v", second.History)
	}
}

func TestApplyPaymentNeverLosesPayments(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	amounts := []float64{250, 100.50, 700, 19.99, 2000} // the last two overshoot the total

	var (
		paid    float64
		history []Event
	)
	for i, amount := range amounts {
		result := ApplyPayment(1000, paid, history, amount, "Efectivo", "USR-001", "", now.Add(time.Duration(i)*time.Minute))
		paid = result.NewPaid
		history = result.History
	}

	var wantPaid float64
	for _, a := range amounts {
		wantPaid += a
	}
	if paid != wantPaid {
		t.Errorf("paid = %v, want %v", paid, wantPaid)
	}
	if len(history) != len(amounts) {
		t.Errorf("history length = %d, want %d", len(history), len(amounts))
	}
	if got := SumEvents(history); got != paid {
		t.Errorf("SumEvents(history) = %v, want paid %v", got, paid)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	events := []Event{
		{Timestamp: "2026-03-14T10:00:00Z", Amount: 400, Method: "Efectivo", ActorID: "USR-001"},
		{Timestamp: "2026-03-14T11:00:00Z", Amount: 600, Method: "Tarjeta", ActorID: "USR-001", Note: "liquidación"},
	}

	raw, err := MarshalHistory(events)
	if err != nil {
		t.Fatalf("MarshalHistory: %v", err)
	}

	got, err := UnmarshalHistory(raw)
	if err != nil {
		t.Fatalf("UnmarshalHistory: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("length = %d, want 2", len(got))
	}
	if got[1].Note != "liquidación" || got[0].Amount != 400 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestUnmarshalHistoryEmpty(t *testing.T) {
	events, err := UnmarshalHistory("")
	if err != nil {
		t.Fatalf("UnmarshalHistory(\"\"): %v", err)
	}
	if len(events) != 0 {
		t.Errorf("length = %d, want 0", len(events))
	}
}

func TestCanSetPrice(t *testing.T) {
	if result := CanSetPrice(0); !result.Allowed {
		t.Errorf("zero total should be allowed: %s", result.Reason)
	}
	if result := CanSetPrice(4500); !result.Allowed {
		t.Errorf("positive total should be allowed: %s", result.Reason)
	}
	if result := CanSetPrice(-1); result.Allowed {
		t.Error("negative total should be rejected")
	}
}

func TestCanRecordPayment(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RecordPaymentContext
		wantAllowed bool
	}{
		{
			name:        "normal payment within pending",
			ctx:         RecordPaymentContext{IntakeID: "ING-001", LedgerExists: true, Amount: 400, Pending: 1000},
			wantAllowed: true,
		},
		{
			name:        "no ledger rejected",
			ctx:         RecordPaymentContext{IntakeID: "ING-001", LedgerExists: false, Amount: 400, Pending: 0},
			wantAllowed: false,
		},
		{
			name:        "zero amount rejected",
			ctx:         RecordPaymentContext{IntakeID: "ING-001", LedgerExists: true, Amount: 0, Pending: 1000},
			wantAllowed: false,
		},
		{
			name:        "negative amount rejected",
			ctx:         RecordPaymentContext{IntakeID: "ING-001", LedgerExists: true, Amount: -5, Pending: 1000},
			wantAllowed: false,
		},
		{
			name:        "over-payment without confirmation rejected",
			ctx:         RecordPaymentContext{IntakeID: "ING-001", LedgerExists: true, Amount: 1500, Pending: 1000},
			wantAllowed: false,
		},
		{
			name:        "over-payment with confirmation allowed",
			ctx:         RecordPaymentContext{IntakeID: "ING-001", LedgerExists: true, Amount: 1500, Pending: 1000, ConfirmOverpayment: true},
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRecordPayment(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}
