// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// UserRepository defines the secondary port for staff account persistence.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by its ID. Returns nil without error
	// when no user matches; the service layer classifies the miss.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// GetByUsername retrieves an active user by username. Returns nil
	// without error when no active user matches.
	GetByUsername(ctx context.Context, username string) (*UserRecord, error)

	// List retrieves users matching the given filters.
	List(ctx context.Context, filters UserFilters) ([]*UserRecord, error)

	// Deactivate soft-deletes a user.
	Deactivate(ctx context.Context, id string) error

	// FirstActiveByRole returns the first active user holding a role.
	// Returns nil without error when none exists.
	FirstActiveByRole(ctx context.Context, role string) (*UserRecord, error)

	// GetNextID returns the next available user ID.
	GetNextID(ctx context.Context) (string, error)
}

// UserRecord represents a staff account as stored in persistence.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	DisplayName  string
	Active       bool
	CreatedAt    string
}

// UserFilters contains filter options for querying users.
type UserFilters struct {
	Role       string
	ActiveOnly bool
}

// CustomerRepository defines the secondary port for customer persistence.
type CustomerRepository interface {
	// Create persists a new customer.
	Create(ctx context.Context, customer *CustomerRecord) error

	// GetByID retrieves a customer by its ID, nil without error on a miss.
	GetByID(ctx context.Context, id string) (*CustomerRecord, error)

	// Update updates a customer's contact details.
	Update(ctx context.Context, customer *CustomerRecord) error

	// List retrieves customers, optionally including inactive ones.
	List(ctx context.Context, includeInactive bool) ([]*CustomerRecord, error)

	// Search matches active customers by name or phone fragment.
	Search(ctx context.Context, query string) ([]*CustomerRecord, error)

	// Deactivate soft-deletes a customer.
	Deactivate(ctx context.Context, id string) error

	// GetNextID returns the next available customer ID.
	GetNextID(ctx context.Context) (string, error)
}

// CustomerRecord represents a customer as stored in persistence.
type CustomerRecord struct {
	ID        string
	Name      string
	Phone     string
	Email     string // empty string means null
	Address   string // empty string means null
	Active    bool
	CreatedAt string
}

// VehicleRepository defines the secondary port for vehicle persistence.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *VehicleRecord) error

	// GetByID retrieves a vehicle by its ID, nil without error on a miss.
	GetByID(ctx context.Context, id string) (*VehicleRecord, error)

	// Update updates a vehicle's details.
	Update(ctx context.Context, vehicle *VehicleRecord) error

	// List retrieves vehicles, optionally including inactive ones.
	List(ctx context.Context, includeInactive bool) ([]*VehicleRecord, error)

	// Search matches active vehicles by make, model or plate fragment.
	Search(ctx context.Context, query string) ([]*VehicleRecord, error)

	// Deactivate soft-deletes a vehicle, releasing its plate.
	Deactivate(ctx context.Context, id string) error

	// ActivePlateExists checks whether an active vehicle other than
	// excludeID already holds the plate.
	ActivePlateExists(ctx context.Context, plate, excludeID string) (bool, error)

	// GetNextID returns the next available vehicle ID.
	GetNextID(ctx context.Context) (string, error)
}

// VehicleRecord represents a vehicle as stored in persistence.
type VehicleRecord struct {
	ID        string
	Make      string
	Model     string
	Plate     string
	Year      string // empty string means null
	Color     string // empty string means null
	Active    bool
	CreatedAt string
}

// IntakeRepository defines the secondary port for intake persistence.
type IntakeRepository interface {
	// Create persists a new intake.
	Create(ctx context.Context, intake *IntakeRecord) error

	// GetByID retrieves an intake by its ID, nil without error on a miss.
	GetByID(ctx context.Context, id string) (*IntakeRecord, error)

	// List retrieves intakes matching the given filters.
	List(ctx context.Context, filters IntakeFilters) ([]*IntakeRecord, error)

	// AssignTechnician sets the intake's technician reference.
	AssignTechnician(ctx context.Context, intakeID, technicianID string) error

	// UpdateStatus updates the status and optionally stamps completed_at.
	UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error

	// SetDeadline persists the deadline budget, start timestamp and
	// active flag.
	SetDeadline(ctx context.Context, id string, days, hours, minutes int, start string) error

	// ClearDeadlineActive clears the active flag, keeping the budget
	// fields for the record.
	ClearDeadlineActive(ctx context.Context, id string) error

	// ListActiveDeadlines retrieves every intake with an active
	// persisted deadline, for tracker reconciliation on load.
	ListActiveDeadlines(ctx context.Context) ([]*IntakeRecord, error)

	// GetNextID returns the next available intake ID.
	GetNextID(ctx context.Context) (string, error)
}

// IntakeRecord represents an intake as stored in persistence, joined with
// the display names the role views need.
type IntakeRecord struct {
	ID              string
	CustomerID      string
	CustomerName    string
	VehicleID       string
	VehicleMake     string
	VehicleModel    string
	VehiclePlate    string
	Status          string
	CreatedAt       string
	CompletedAt     string // empty string means null
	AssignedTo      string // empty string means null
	AssignedToName  string
	Reason          string
	DeadlineDays    int
	DeadlineHours   int
	DeadlineMinutes int
	DeadlineStart   string // empty string means null
	DeadlineActive  bool
}

// IntakeFilters contains filter options for querying intakes.
type IntakeFilters struct {
	Status         string
	AssignedTo     string
	UnassignedOnly bool
}

// ServiceLogRepository defines the secondary port for the append-only
// audit trail. Entries are never updated or deleted.
type ServiceLogRepository interface {
	// Append persists a new log entry.
	Append(ctx context.Context, entry *ServiceLogRecord) error

	// ListByIntake retrieves an intake's entries ordered by time.
	ListByIntake(ctx context.Context, intakeID string) ([]*ServiceLogRecord, error)

	// GetNextID returns the next available log entry ID.
	GetNextID(ctx context.Context) (string, error)
}

// ServiceLogRecord represents one audit entry as stored in persistence.
type ServiceLogRecord struct {
	ID          string
	IntakeID    string
	Category    string
	Description string
	Timestamp   string
	Actor       string
	ActorName   string
}

// LedgerRepository defines the secondary port for payment ledger persistence.
type LedgerRepository interface {
	// Create persists a fresh ledger (paid=0, Pendiente).
	Create(ctx context.Context, ledger *LedgerRecord) error

	// GetByIntake retrieves the ledger for an intake. Returns nil
	// without error when no price was ever set.
	GetByIntake(ctx context.Context, intakeID string) (*LedgerRecord, error)

	// UpdatePrice updates the total and the recomputed status.
	UpdatePrice(ctx context.Context, id string, total float64, status string) error

	// ApplyPayment persists paid, status, last-payment metadata and the
	// re-marshaled history in a single statement so the ledger is never
	// half-updated.
	ApplyPayment(ctx context.Context, update *PaymentUpdate) error

	// List retrieves all ledgers, most recently created first.
	List(ctx context.Context) ([]*LedgerRecord, error)

	// SummarizeSince aggregates billed and paid totals for ledgers
	// created at or after the given timestamp.
	SummarizeSince(ctx context.Context, since string) (billed, paid float64, err error)

	// CountByStatus returns the number of ledgers per status.
	CountByStatus(ctx context.Context) (map[string]int, error)

	// GetNextID returns the next available ledger ID.
	GetNextID(ctx context.Context) (string, error)
}

// LedgerRecord represents a payment ledger as stored in persistence.
type LedgerRecord struct {
	ID         string
	IntakeID   string
	Total      float64
	Paid       float64
	Status     string
	CreatedAt  string
	LastAmount float64
	LastMethod string // empty string means null
	LastPaidAt string // empty string means null
	LastActor  string // empty string means null
	History    string // JSON-encoded ordered event list
	Notes      string // empty string means null
}

// PaymentUpdate carries every field ApplyPayment writes atomically.
type PaymentUpdate struct {
	LedgerID   string
	Paid       float64
	Status     string
	LastAmount float64
	LastMethod string
	LastPaidAt string
	LastActor  string
	History    string
}

// MessageRepository defines the secondary port for message persistence.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *MessageRecord) error

	// GetByID retrieves a message by its ID, nil without error on a miss.
	GetByID(ctx context.Context, id string) (*MessageRecord, error)

	// List retrieves messages for a recipient, optionally filtered by
	// category and unread state.
	List(ctx context.Context, filters MessageFilters) ([]*MessageRecord, error)

	// MarkRead marks a message as read.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks all unread messages of a category as read for a
	// recipient. An empty category covers both.
	MarkAllRead(ctx context.Context, recipientID, category string) error

	// GetUnreadCount returns the count of unread messages for a
	// recipient, optionally scoped to one category.
	GetUnreadCount(ctx context.Context, recipientID, category string) (int, error)

	// GetNextID returns the next available message ID.
	GetNextID(ctx context.Context) (string, error)
}

// MessageRecord represents a message as stored in persistence.
type MessageRecord struct {
	ID        string
	IntakeID  string
	Sender    string
	Recipient string
	Body      string
	Category  string
	Read      bool
	Timestamp string
}

// MessageFilters contains filter options for querying messages.
type MessageFilters struct {
	Recipient  string
	Category   string
	UnreadOnly bool
}
