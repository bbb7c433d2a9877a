// Package wire provides dependency injection for the taller application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log"
	"sync"

	"github.com/example/taller/internal/adapters/sqlite"
	"github.com/example/taller/internal/app"
	"github.com/example/taller/internal/db"
	"github.com/example/taller/internal/ports/primary"
)

var (
	authService     primary.AuthService
	customerService primary.CustomerService
	vehicleService  primary.VehicleService
	intakeService   primary.IntakeService
	deadlineService *app.DeadlineServiceImpl
	paymentService  primary.PaymentService
	messageService  primary.MessageService
	historyService  primary.HistoryService
	once            sync.Once
)

// AuthService returns the singleton AuthService instance.
func AuthService() primary.AuthService {
	once.Do(initServices)
	return authService
}

// CustomerService returns the singleton CustomerService instance.
func CustomerService() primary.CustomerService {
	once.Do(initServices)
	return customerService
}

// VehicleService returns the singleton VehicleService instance.
func VehicleService() primary.VehicleService {
	once.Do(initServices)
	return vehicleService
}

// IntakeService returns the singleton IntakeService instance.
func IntakeService() primary.IntakeService {
	once.Do(initServices)
	return intakeService
}

// DeadlineService returns the singleton DeadlineService instance. The
// in-memory tracker is reloaded from the persisted deadline fields on
// first use. The concrete type is returned so the watch command can start
// the per-second ticker.
func DeadlineService() *app.DeadlineServiceImpl {
	once.Do(initServices)
	return deadlineService
}

// PaymentService returns the singleton PaymentService instance.
func PaymentService() primary.PaymentService {
	once.Do(initServices)
	return paymentService
}

// MessageService returns the singleton MessageService instance.
func MessageService() primary.MessageService {
	once.Do(initServices)
	return messageService
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("%v: %v", primary.ErrStoreUnavailable, err)
	}

	// Repository adapters (secondary ports) over the shared connection
	userRepo := sqlite.NewUserRepository(database)
	customerRepo := sqlite.NewCustomerRepository(database)
	vehicleRepo := sqlite.NewVehicleRepository(database)
	intakeRepo := sqlite.NewIntakeRepository(database)
	logRepo := sqlite.NewServiceLogRepository(database)
	ledgerRepo := sqlite.NewLedgerRepository(database)
	messageRepo := sqlite.NewMessageRepository(database)

	// Services (primary ports implementation)
	authService = app.NewAuthService(userRepo)
	customerService = app.NewCustomerService(customerRepo)
	vehicleService = app.NewVehicleService(vehicleRepo)
	intakeService = app.NewIntakeService(intakeRepo, customerRepo, vehicleRepo, userRepo, logRepo)
	paymentService = app.NewPaymentService(ledgerRepo, intakeRepo)
	messageService = app.NewMessageService(messageRepo, intakeRepo, userRepo)
	historyService = app.NewHistoryService(intakeRepo, logRepo, ledgerRepo)

	deadlineService = app.NewDeadlineService(intakeRepo, logRepo)
	if err := deadlineService.Reload(context.Background()); err != nil {
		log.Fatalf("failed to reload deadlines: %v", err)
	}
}
