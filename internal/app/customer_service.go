// Package app contains the application services implementing the primary
// ports over the secondary persistence ports. Business rules live in the
// pure internal/core packages; services orchestrate repositories around
// them and classify failures into the primary error kinds.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// CustomerServiceImpl implements the CustomerService interface.
type CustomerServiceImpl struct {
	customerRepo secondary.CustomerRepository
}

// NewCustomerService creates a new CustomerService with injected dependencies.
func NewCustomerService(customerRepo secondary.CustomerRepository) *CustomerServiceImpl {
	return &CustomerServiceImpl{
		customerRepo: customerRepo,
	}
}

// CreateCustomer registers a new customer.
func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, req primary.CreateCustomerRequest) (*primary.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: customer name must not be empty", primary.ErrValidation)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: customer phone must not be empty", primary.ErrValidation)
	}

	nextID, err := s.customerRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate customer ID: %w", err)
	}

	record := &secondary.CustomerRecord{
		ID:      nextID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.customerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	created, err := s.customerRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created customer: %w", err)
	}
	return recordToCustomer(created), nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerServiceImpl) GetCustomer(ctx context.Context, customerID string) (*primary.Customer, error) {
	record, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: customer %s", primary.ErrNotFound, customerID)
	}
	return recordToCustomer(record), nil
}

// UpdateCustomer updates a customer's contact details. Empty request
// fields keep their current value.
func (s *CustomerServiceImpl) UpdateCustomer(ctx context.Context, req primary.UpdateCustomerRequest) error {
	record, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: customer %s", primary.ErrNotFound, req.CustomerID)
	}

	if req.Name != "" {
		record.Name = req.Name
	}
	if req.Phone != "" {
		record.Phone = req.Phone
	}
	if req.Email != "" {
		record.Email = req.Email
	}
	if req.Address != "" {
		record.Address = req.Address
	}

	if err := s.customerRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// ListCustomers lists customers, active ones only unless includeInactive.
func (s *CustomerServiceImpl) ListCustomers(ctx context.Context, includeInactive bool) ([]*primary.Customer, error) {
	records, err := s.customerRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*primary.Customer, len(records))
	for i, r := range records {
		customers[i] = recordToCustomer(r)
	}
	return customers, nil
}

// SearchCustomers matches active customers by name or phone fragment.
func (s *CustomerServiceImpl) SearchCustomers(ctx context.Context, query string) ([]*primary.Customer, error) {
	records, err := s.customerRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	matches := make([]*primary.Customer, len(records))
	for i, r := range records {
		matches[i] = recordToCustomer(r)
	}
	return matches, nil
}

// DeleteCustomer soft-deletes a customer, preserving intake history.
func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, customerID string) error {
	record, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: customer %s", primary.ErrNotFound, customerID)
	}

	if err := s.customerRepo.Deactivate(ctx, customerID); err != nil {
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}
	return nil
}

func recordToCustomer(record *secondary.CustomerRecord) *primary.Customer {
	return &primary.Customer{
		ID:        record.ID,
		Name:      record.Name,
		Phone:     record.Phone,
		Email:     record.Email,
		Address:   record.Address,
		Active:    record.Active,
		CreatedAt: record.CreatedAt,
	}
}

// Ensure CustomerServiceImpl implements the interface.
var _ primary.CustomerService = (*CustomerServiceImpl)(nil)
