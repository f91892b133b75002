package service_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentdesk-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, query string, page domain.Page) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *domain.EquipmentCategory) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, id int32) (*domain.EquipmentCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentCategory), args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, c *domain.EquipmentCategory) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCategoryRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.EquipmentCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EquipmentCategory), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context, filter domain.EquipmentFilter, page domain.Page) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.RentalTransaction) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rt *domain.RentalTransaction) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) UpdateFinancials(ctx context.Context, id int32, deposit, totalReceipt decimal.Decimal, balance decimal.NullDecimal) error {
	args := m.Called(ctx, id, deposit, totalReceipt, balance)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context, filter domain.RentalFilter, page domain.Page) ([]domain.RentalTransaction, int32, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.RentalTransaction), args.Get(1).(int32), args.Error(2)
}

// MockRentalItemRepo
type MockRentalItemRepo struct {
	mock.Mock
}

func (m *MockRentalItemRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalItem, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalItem), args.Error(1)
}
func (m *MockRentalItemRepo) ReplaceForRental(ctx context.Context, rentalID int32, items []domain.RentalItem) error {
	args := m.Called(ctx, rentalID, items)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) List(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, r *domain.MaintenanceRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int32) (*domain.MaintenanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceRecord), args.Error(1)
}
func (m *MockMaintenanceRepo) Update(ctx context.Context, r *domain.MaintenanceRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) ListByEquipment(ctx context.Context, equipmentID int32, page domain.Page) ([]domain.MaintenanceRecord, int32, error) {
	args := m.Called(ctx, equipmentID, page)
	return args.Get(0).([]domain.MaintenanceRecord), args.Get(1).(int32), args.Error(2)
}

// MockReconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) PaymentCreated(ctx context.Context, p *domain.Payment) {
	m.Called(ctx, p)
}
func (m *MockReconciler) PaymentUpdated(ctx context.Context, prior, updated *domain.Payment) {
	m.Called(ctx, prior, updated)
}
func (m *MockReconciler) PaymentDeleted(ctx context.Context, prior *domain.Payment) {
	m.Called(ctx, prior)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decEq matches a decimal argument by value rather than representation.
func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

// nullDecEq matches a set NullDecimal by value.
func nullDecEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.NullDecimal) bool { return d.Valid && d.Decimal.Equal(want) })
}

var nullDecUnset = mock.MatchedBy(func(d decimal.NullDecimal) bool { return !d.Valid })
