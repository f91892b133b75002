package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"rentdesk-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query string, page domain.Page) ([]domain.Customer, int32, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.EquipmentCategory) error
	GetByID(ctx context.Context, id int32) (*domain.EquipmentCategory, error)
	Update(ctx context.Context, category *domain.EquipmentCategory) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.EquipmentCategory, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, equipment *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.EquipmentFilter, page domain.Page) ([]domain.Equipment, int32, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.RentalTransaction) error
	GetByID(ctx context.Context, id int32) (*domain.RentalTransaction, error)
	Update(ctx context.Context, rental *domain.RentalTransaction) error
	// UpdateFinancials writes only deposit, total_receipt and balance.
	UpdateFinancials(ctx context.Context, id int32, deposit, totalReceipt decimal.Decimal, balance decimal.NullDecimal) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.RentalFilter, page domain.Page) ([]domain.RentalTransaction, int32, error)
}

type RentalItemRepository interface {
	ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalItem, error)
	// ReplaceForRental deletes the rental's items and inserts the given ones.
	ReplaceForRental(ctx context.Context, rentalID int32, items []domain.RentalItem) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]domain.Payment, int32, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, record *domain.MaintenanceRecord) error
	GetByID(ctx context.Context, id int32) (*domain.MaintenanceRecord, error)
	Update(ctx context.Context, record *domain.MaintenanceRecord) error
	Delete(ctx context.Context, id int32) error
	ListByEquipment(ctx context.Context, equipmentID int32, page domain.Page) ([]domain.MaintenanceRecord, int32, error)
}
