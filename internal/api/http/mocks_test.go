package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/utils"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

type MockCustomerService struct{ mock.Mock }

func (m *MockCustomerService) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, query string, page domain.Page) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}

type MockRentalService struct{ mock.Mock }

func (m *MockRentalService) CreateRental(ctx context.Context, rt *domain.RentalTransaction) error {
	return m.Called(ctx, rt).Error(0)
}
func (m *MockRentalService) GetRental(ctx context.Context, id int32) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *MockRentalService) UpdateRental(ctx context.Context, rt *domain.RentalTransaction) error {
	return m.Called(ctx, rt).Error(0)
}
func (m *MockRentalService) DeleteRental(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockRentalService) ListRentals(ctx context.Context, filter domain.RentalFilter, page domain.Page) ([]domain.RentalTransaction, int32, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.RentalTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalService) ChangeStatus(ctx context.Context, id int32, status domain.RentalStatus) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *MockRentalService) MarkReturned(ctx context.Context, id int32, returnDate string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id, returnDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *MockRentalService) Quote(rentalDate, expectedReturnDate string, items []domain.RentalItem) utils.RentalQuote {
	return m.Called(rentalDate, expectedReturnDate, items).Get(0).(utils.RentalQuote)
}

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) CreatePayment(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentService) GetPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) UpdatePayment(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentService) DeletePayment(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }
