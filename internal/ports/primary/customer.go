package primary

import "context"

// CustomerService defines the primary port for customer registry operations.
type CustomerService interface {
	// CreateCustomer registers a new customer.
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)

	// GetCustomer retrieves a customer by ID.
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)

	// UpdateCustomer updates a customer's contact details.
	UpdateCustomer(ctx context.Context, req UpdateCustomerRequest) error

	// ListCustomers lists customers, active ones only unless includeInactive.
	ListCustomers(ctx context.Context, includeInactive bool) ([]*Customer, error)

	// SearchCustomers matches customers by name or phone fragment.
	SearchCustomers(ctx context.Context, query string) ([]*Customer, error)

	// DeleteCustomer soft-deletes a customer, preserving intake history.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// Customer is a shop customer as seen by the role views.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Active    bool
	CreatedAt string
}

// CreateCustomerRequest contains parameters for registering a customer.
type CreateCustomerRequest struct {
	Name    string
	Phone   string
	Email   string // optional
	Address string // optional
}

// UpdateCustomerRequest contains parameters for updating a customer.
// Empty fields keep their current value.
type UpdateCustomerRequest struct {
	CustomerID string
	Name       string
	Phone      string
	Email      string
	Address    string
}
