package service

import (
	"context"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error) // access token, user
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int32) error
	ListCustomers(ctx context.Context, query string, page domain.Page) ([]domain.Customer, int32, error)
}

type EquipmentService interface {
	CreateCategory(ctx context.Context, category *domain.EquipmentCategory) error
	GetCategory(ctx context.Context, id int32) (*domain.EquipmentCategory, error)
	UpdateCategory(ctx context.Context, category *domain.EquipmentCategory) error
	DeleteCategory(ctx context.Context, id int32) error
	ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error)

	CreateEquipment(ctx context.Context, equipment *domain.Equipment) error
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id int32) error
	ListEquipment(ctx context.Context, filter domain.EquipmentFilter, page domain.Page) ([]domain.Equipment, int32, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, rental *domain.RentalTransaction) error
	GetRental(ctx context.Context, id int32) (*domain.RentalTransaction, error)
	UpdateRental(ctx context.Context, rental *domain.RentalTransaction) error
	DeleteRental(ctx context.Context, id int32) error
	ListRentals(ctx context.Context, filter domain.RentalFilter, page domain.Page) ([]domain.RentalTransaction, int32, error)
	ChangeStatus(ctx context.Context, id int32, status domain.RentalStatus) (*domain.RentalTransaction, error)
	MarkReturned(ctx context.Context, id int32, returnDate string) (*domain.RentalTransaction, error)
	Quote(rentalDate, expectedReturnDate string, items []domain.RentalItem) utils.RentalQuote
}

type PaymentService interface {
	CreatePayment(ctx context.Context, payment *domain.Payment) error
	GetPayment(ctx context.Context, id int32) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, payment *domain.Payment) error
	DeletePayment(ctx context.Context, id int32) error
	ListPayments(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]domain.Payment, int32, error)
}

// Reconciler keeps a rental's deposit, total receipt and balance in step with
// its payments. Calls are best effort: failures are logged, never returned.
type Reconciler interface {
	PaymentCreated(ctx context.Context, payment *domain.Payment)
	PaymentUpdated(ctx context.Context, prior, updated *domain.Payment)
	PaymentDeleted(ctx context.Context, prior *domain.Payment)
}

type MaintenanceService interface {
	CreateRecord(ctx context.Context, record *domain.MaintenanceRecord) error
	GetRecord(ctx context.Context, id int32) (*domain.MaintenanceRecord, error)
	UpdateRecord(ctx context.Context, record *domain.MaintenanceRecord) error
	DeleteRecord(ctx context.Context, id int32) error
	ListRecords(ctx context.Context, equipmentID int32, page domain.Page) ([]domain.MaintenanceRecord, int32, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, name string, rentalID int32, dueDate, balance string) error
}
