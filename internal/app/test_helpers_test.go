package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// Ensure the mocks implement the interfaces
var (
	_ secondary.UserRepository       = (*mockUserRepo)(nil)
	_ secondary.CustomerRepository   = (*mockCustomerRepo)(nil)
	_ secondary.VehicleRepository    = (*mockVehicleRepo)(nil)
	_ secondary.IntakeRepository     = (*mockIntakeRepo)(nil)
	_ secondary.ServiceLogRepository = (*mockServiceLogRepo)(nil)
	_ secondary.LedgerRepository     = (*mockLedgerRepo)(nil)
	_ secondary.MessageRepository    = (*mockMessageRepo)(nil)
)

// mockUserRepo implements secondary.UserRepository in memory.
type mockUserRepo struct {
	users []*secondary.UserRecord
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{}
}

func (m *mockUserRepo) Create(ctx context.Context, user *secondary.UserRecord) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %s already exists", user.Username)
		}
	}
	clone := *user
	clone.Active = true
	m.users = append(m.users, &clone)
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*secondary.UserRecord, error) {
	for _, u := range m.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	var out []*secondary.UserRecord
	for _, u := range m.users {
		if filters.Role != "" && u.Role != filters.Role {
			continue
		}
		if filters.ActiveOnly && !u.Active {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.Active = false
			return nil
		}
	}
	return fmt.Errorf("user %s not found", id)
}

func (m *mockUserRepo) FirstActiveByRole(ctx context.Context, role string) (*secondary.UserRecord, error) {
	for _, u := range m.users {
		if u.Role == role && u.Active {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("USR-%03d", len(m.users)+1), nil
}

// mockCustomerRepo implements secondary.CustomerRepository in memory.
type mockCustomerRepo struct {
	customers []*secondary.CustomerRecord
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{}
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *secondary.CustomerRecord) error {
	clone := *customer
	clone.Active = true
	m.customers = append(m.customers, &clone)
	return nil
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id string) (*secondary.CustomerRecord, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *secondary.CustomerRecord) error {
	for i, c := range m.customers {
		if c.ID == customer.ID {
			clone := *customer
			m.customers[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("customer %s not found", customer.ID)
}

func (m *mockCustomerRepo) List(ctx context.Context, includeInactive bool) ([]*secondary.CustomerRecord, error) {
	var out []*secondary.CustomerRecord
	for _, c := range m.customers {
		if !includeInactive && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCustomerRepo) Search(ctx context.Context, query string) ([]*secondary.CustomerRecord, error) {
	needle := strings.ToLower(query)
	var out []*secondary.CustomerRecord
	for _, c := range m.customers {
		if !c.Active {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), needle) || strings.Contains(c.Phone, needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCustomerRepo) Deactivate(ctx context.Context, id string) error {
	for _, c := range m.customers {
		if c.ID == id {
			c.Active = false
			return nil
		}
	}
	return fmt.Errorf("customer %s not found", id)
}

func (m *mockCustomerRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("CUST-%03d", len(m.customers)+1), nil
}

// mockVehicleRepo implements secondary.VehicleRepository in memory.
type mockVehicleRepo struct {
	vehicles []*secondary.VehicleRecord
}

func newMockVehicleRepo() *mockVehicleRepo {
	return &mockVehicleRepo{}
}

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle *secondary.VehicleRecord) error {
	clone := *vehicle
	clone.Active = true
	m.vehicles = append(m.vehicles, &clone)
	return nil
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, id string) (*secondary.VehicleRecord, error) {
	for _, v := range m.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (m *mockVehicleRepo) Update(ctx context.Context, vehicle *secondary.VehicleRecord) error {
	for i, v := range m.vehicles {
		if v.ID == vehicle.ID {
			clone := *vehicle
			m.vehicles[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("vehicle %s not found", vehicle.ID)
}

func (m *mockVehicleRepo) List(ctx context.Context, includeInactive bool) ([]*secondary.VehicleRecord, error) {
	var out []*secondary.VehicleRecord
	for _, v := range m.vehicles {
		if !includeInactive && !v.Active {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockVehicleRepo) Search(ctx context.Context, query string) ([]*secondary.VehicleRecord, error) {
	needle := strings.ToLower(query)
	var out []*secondary.VehicleRecord
	for _, v := range m.vehicles {
		if !v.Active {
			continue
		}
		haystack := strings.ToLower(v.Make + " " + v.Model + " " + v.Plate)
		if strings.Contains(haystack, needle) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVehicleRepo) Deactivate(ctx context.Context, id string) error {
	for _, v := range m.vehicles {
		if v.ID == id {
			v.Active = false
			return nil
		}
	}
	return fmt.Errorf("vehicle %s not found", id)
}

func (m *mockVehicleRepo) ActivePlateExists(ctx context.Context, plate, excludeID string) (bool, error) {
	for _, v := range m.vehicles {
		if v.Active && v.Plate == plate && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockVehicleRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("VEH-%03d", len(m.vehicles)+1), nil
}

// mockIntakeRepo implements secondary.IntakeRepository in memory.
type mockIntakeRepo struct {
	intakes []*secondary.IntakeRecord
}

func newMockIntakeRepo() *mockIntakeRepo {
	return &mockIntakeRepo{}
}

func (m *mockIntakeRepo) Create(ctx context.Context, intake *secondary.IntakeRecord) error {
	clone := *intake
	if clone.CreatedAt == "" {
		clone.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.intakes = append(m.intakes, &clone)
	return nil
}

func (m *mockIntakeRepo) GetByID(ctx context.Context, id string) (*secondary.IntakeRecord, error) {
	for _, r := range m.intakes {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockIntakeRepo) List(ctx context.Context, filters secondary.IntakeFilters) ([]*secondary.IntakeRecord, error) {
	var out []*secondary.IntakeRecord
	for _, r := range m.intakes {
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if filters.AssignedTo != "" && r.AssignedTo != filters.AssignedTo {
			continue
		}
		if filters.UnassignedOnly && r.AssignedTo != "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockIntakeRepo) AssignTechnician(ctx context.Context, intakeID, technicianID string) error {
	for _, r := range m.intakes {
		if r.ID == intakeID {
			r.AssignedTo = technicianID
			return nil
		}
	}
	return fmt.Errorf("intake %s not found", intakeID)
}

func (m *mockIntakeRepo) UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error {
	for _, r := range m.intakes {
		if r.ID == id {
			r.Status = status
			if setCompleted {
				r.CompletedAt = time.Now().UTC().Format(time.RFC3339)
			}
			return nil
		}
	}
	return fmt.Errorf("intake %s not found", id)
}

func (m *mockIntakeRepo) SetDeadline(ctx context.Context, id string, days, hours, minutes int, start string) error {
	for _, r := range m.intakes {
		if r.ID == id {
			r.DeadlineDays = days
			r.DeadlineHours = hours
			r.DeadlineMinutes = minutes
			r.DeadlineStart = start
			r.DeadlineActive = true
			return nil
		}
	}
	return fmt.Errorf("intake %s not found", id)
}

func (m *mockIntakeRepo) ClearDeadlineActive(ctx context.Context, id string) error {
	for _, r := range m.intakes {
		if r.ID == id {
			r.DeadlineActive = false
			return nil
		}
	}
	return fmt.Errorf("intake %s not found", id)
}

func (m *mockIntakeRepo) ListActiveDeadlines(ctx context.Context) ([]*secondary.IntakeRecord, error) {
	var out []*secondary.IntakeRecord
	for _, r := range m.intakes {
		if r.DeadlineActive && r.DeadlineStart != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockIntakeRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ING-%03d", len(m.intakes)+1), nil
}

// mockServiceLogRepo implements secondary.ServiceLogRepository in memory.
type mockServiceLogRepo struct {
	entries []*secondary.ServiceLogRecord
}

func newMockServiceLogRepo() *mockServiceLogRepo {
	return &mockServiceLogRepo{}
}

func (m *mockServiceLogRepo) Append(ctx context.Context, entry *secondary.ServiceLogRecord) error {
	clone := *entry
	if clone.Timestamp == "" {
		clone.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	m.entries = append(m.entries, &clone)
	return nil
}

func (m *mockServiceLogRepo) ListByIntake(ctx context.Context, intakeID string) ([]*secondary.ServiceLogRecord, error) {
	var out []*secondary.ServiceLogRecord
	for _, e := range m.entries {
		if e.IntakeID == intakeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockServiceLogRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("LOG-%03d", len(m.entries)+1), nil
}

// lastEntry returns the most recent log entry, or nil when empty.
func (m *mockServiceLogRepo) lastEntry() *secondary.ServiceLogRecord {
	if len(m.entries) == 0 {
		return nil
	}
	return m.entries[len(m.entries)-1]
}

// mockLedgerRepo implements secondary.LedgerRepository in memory.
type mockLedgerRepo struct {
	ledgers []*secondary.LedgerRecord
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{}
}

func (m *mockLedgerRepo) Create(ctx context.Context, ledger *secondary.LedgerRecord) error {
	for _, l := range m.ledgers {
		if l.IntakeID == ledger.IntakeID {
			return fmt.Errorf("ledger for intake %s already exists", ledger.IntakeID)
		}
	}
	clone := *ledger
	if clone.CreatedAt == "" {
		clone.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.ledgers = append(m.ledgers, &clone)
	return nil
}

func (m *mockLedgerRepo) GetByIntake(ctx context.Context, intakeID string) (*secondary.LedgerRecord, error) {
	for _, l := range m.ledgers {
		if l.IntakeID == intakeID {
			return l, nil
		}
	}
	return nil, nil
}

func (m *mockLedgerRepo) UpdatePrice(ctx context.Context, id string, total float64, status string) error {
	for _, l := range m.ledgers {
		if l.ID == id {
			l.Total = total
			l.Status = status
			return nil
		}
	}
	return fmt.Errorf("ledger %s not found", id)
}

func (m *mockLedgerRepo) ApplyPayment(ctx context.Context, update *secondary.PaymentUpdate) error {
	for _, l := range m.ledgers {
		if l.ID == update.LedgerID {
			l.Paid = update.Paid
			l.Status = update.Status
			l.LastAmount = update.LastAmount
			l.LastMethod = update.LastMethod
			l.LastPaidAt = update.LastPaidAt
			l.LastActor = update.LastActor
			l.History = update.History
			return nil
		}
	}
	return fmt.Errorf("ledger %s not found", update.LedgerID)
}

func (m *mockLedgerRepo) List(ctx context.Context) ([]*secondary.LedgerRecord, error) {
	out := make([]*secondary.LedgerRecord, len(m.ledgers))
	copy(out, m.ledgers)
	return out, nil
}

func (m *mockLedgerRepo) SummarizeSince(ctx context.Context, since string) (float64, float64, error) {
	var billed, paid float64
	for _, l := range m.ledgers {
		if strings.Compare(l.CreatedAt, since) >= 0 {
			billed += l.Total
			paid += l.Paid
		}
	}
	return billed, paid, nil
}

func (m *mockLedgerRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, l := range m.ledgers {
		counts[l.Status]++
	}
	return counts, nil
}

func (m *mockLedgerRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("PAY-%03d", len(m.ledgers)+1), nil
}

// mockMessageRepo implements secondary.MessageRepository in memory.
type mockMessageRepo struct {
	messages []*secondary.MessageRecord
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{}
}

func (m *mockMessageRepo) Create(ctx context.Context, message *secondary.MessageRecord) error {
	clone := *message
	if clone.Timestamp == "" {
		clone.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	m.messages = append(m.messages, &clone)
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, nil
}

func (m *mockMessageRepo) List(ctx context.Context, filters secondary.MessageFilters) ([]*secondary.MessageRecord, error) {
	var out []*secondary.MessageRecord
	for _, msg := range m.messages {
		if msg.Recipient != filters.Recipient {
			continue
		}
		if filters.Category != "" && msg.Category != filters.Category {
			continue
		}
		if filters.UnreadOnly && msg.Read {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id string) error {
	for _, msg := range m.messages {
		if msg.ID == id {
			msg.Read = true
			return nil
		}
	}
	return fmt.Errorf("message %s not found", id)
}

func (m *mockMessageRepo) MarkAllRead(ctx context.Context, recipientID, category string) error {
	for _, msg := range m.messages {
		if msg.Recipient != recipientID {
			continue
		}
		if category != "" && msg.Category != category {
			continue
		}
		msg.Read = true
	}
	return nil
}

func (m *mockMessageRepo) GetUnreadCount(ctx context.Context, recipientID, category string) (int, error) {
	count := 0
	for _, msg := range m.messages {
		if msg.Recipient != recipientID || msg.Read {
			continue
		}
		if category != "" && msg.Category != category {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockMessageRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("MSG-%03d", len(m.messages)+1), nil
}
