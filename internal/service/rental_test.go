package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

func newRentalServiceMocks() (*MockRentalRepo, *MockRentalItemRepo, *MockEquipmentRepo, service.RentalService) {
	rentalRepo := new(MockRentalRepo)
	itemRepo := new(MockRentalItemRepo)
	equipmentRepo := new(MockEquipmentRepo)
	return rentalRepo, itemRepo, equipmentRepo, service.NewRentalService(rentalRepo, itemRepo, equipmentRepo, service.NewRentalLocks())
}

func sampleItems() []domain.RentalItem {
	return []domain.RentalItem{
		{EquipmentID: 10, Quantity: 2, UnitRentalRate: dec("100")},
		{EquipmentID: 11, Quantity: 1, UnitRentalRate: dec("50")},
	}
}

func TestRentalService_CreateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Computes total amount and balance", func(t *testing.T) {
		rentalRepo, itemRepo, _, svc := newRentalServiceMocks()

		rt := &domain.RentalTransaction{
			CustomerID:         3,
			RentalDate:         "2024-01-01",
			ExpectedReturnDate: "2024-01-03",
			Items:              sampleItems(),
		}
		rentalRepo.On("Create", ctx, rt).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.RentalTransaction).ID = 42
		})
		itemRepo.On("ReplaceForRental", ctx, int32(42), rt.Items).Return(nil)

		require.NoError(t, svc.CreateRental(ctx, rt))
		assert.Equal(t, domain.RentalStatusDraft, rt.Status)
		require.True(t, rt.TotalAmount.Valid)
		assert.True(t, rt.TotalAmount.Decimal.Equal(dec("750")))
		require.True(t, rt.Balance.Valid)
		assert.True(t, rt.Balance.Decimal.Equal(dec("750")))
		itemRepo.AssertExpectations(t)
	})

	t.Run("Client supplied financials are ignored", func(t *testing.T) {
		rentalRepo, _, _, svc := newRentalServiceMocks()

		rt := &domain.RentalTransaction{
			CustomerID:   3,
			RentalDate:   "2024-01-01",
			Deposit:      dec("999"),
			TotalReceipt: dec("999"),
		}
		rentalRepo.On("Create", ctx, rt).Return(nil)

		require.NoError(t, svc.CreateRental(ctx, rt))
		assert.True(t, rt.Deposit.IsZero())
		assert.True(t, rt.TotalReceipt.IsZero())
	})

	t.Run("Validation", func(t *testing.T) {
		rentalRepo, _, _, svc := newRentalServiceMocks()

		cases := []*domain.RentalTransaction{
			{RentalDate: "2024-01-01"},
			{CustomerID: 1, RentalDate: "bad"},
			{CustomerID: 1, RentalDate: "2024-01-05", ExpectedReturnDate: "2024-01-01"},
			{CustomerID: 1, RentalDate: "2024-01-01", Status: "LOST"},
			{CustomerID: 1, RentalDate: "2024-01-01", Items: []domain.RentalItem{{EquipmentID: 1, Quantity: 0}}},
		}
		for _, rt := range cases {
			assert.ErrorIs(t, svc.CreateRental(ctx, rt), domain.ErrValidation)
		}
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRentalService_UpdateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps reconciled amounts and recomputes balance", func(t *testing.T) {
		rentalRepo, itemRepo, _, svc := newRentalServiceMocks()

		existing := rentalWith(7, "500", "100", "200")
		existing.Status = domain.RentalStatusActive
		rentalRepo.On("GetByID", ctx, int32(7)).Return(existing, nil)

		rt := &domain.RentalTransaction{
			ID:                 7,
			CustomerID:         3,
			RentalDate:         "2024-01-01",
			ExpectedReturnDate: "2024-01-03",
			Items:              sampleItems(),
		}
		rentalRepo.On("Update", ctx, rt).Return(nil)
		itemRepo.On("ReplaceForRental", ctx, int32(7), rt.Items).Return(nil)

		require.NoError(t, svc.UpdateRental(ctx, rt))
		assert.Equal(t, domain.RentalStatusActive, rt.Status)
		assert.True(t, rt.Deposit.Equal(dec("100")))
		assert.True(t, rt.TotalReceipt.Equal(dec("200")))
		assert.True(t, rt.TotalAmount.Decimal.Equal(dec("750")))
		assert.True(t, rt.Balance.Decimal.Equal(dec("550")))
	})

	t.Run("Nil items keep stored items", func(t *testing.T) {
		rentalRepo, itemRepo, _, svc := newRentalServiceMocks()

		rentalRepo.On("GetByID", ctx, int32(7)).Return(rentalWith(7, "0", "0", "0"), nil)
		itemRepo.On("ListByRental", ctx, int32(7)).Return(sampleItems(), nil)

		rt := &domain.RentalTransaction{ID: 7, CustomerID: 3, Status: domain.RentalStatusConfirmed, RentalDate: "2024-01-01", ExpectedReturnDate: "2024-01-01"}
		rentalRepo.On("Update", ctx, rt).Return(nil)

		require.NoError(t, svc.UpdateRental(ctx, rt))
		assert.True(t, rt.TotalAmount.Decimal.Equal(dec("250")))
		assert.Len(t, rt.Items, 2)
		itemRepo.AssertNotCalled(t, "ReplaceForRental", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown rental", func(t *testing.T) {
		rentalRepo, _, _, svc := newRentalServiceMocks()
		rentalRepo.On("GetByID", ctx, int32(8)).Return(nil, domain.ErrNotFound)

		err := svc.UpdateRental(ctx, &domain.RentalTransaction{ID: 8, CustomerID: 1, RentalDate: "2024-01-01"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRentalService_GetRental(t *testing.T) {
	ctx := context.Background()
	rentalRepo, itemRepo, _, svc := newRentalServiceMocks()

	rentalRepo.On("GetByID", ctx, int32(7)).Return(rentalWith(7, "750", "0", "0"), nil)
	itemRepo.On("ListByRental", ctx, int32(7)).Return(sampleItems(), nil)

	rt, err := svc.GetRental(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, rt.Items, 2)
}

func TestRentalService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Activating marks equipment rented", func(t *testing.T) {
		rentalRepo, itemRepo, equipmentRepo, svc := newRentalServiceMocks()

		rt := rentalWith(7, "750", "0", "0")
		rt.Status = domain.RentalStatusConfirmed
		rentalRepo.On("GetByID", ctx, int32(7)).Return(rt, nil)
		rentalRepo.On("Update", ctx, rt).Return(nil)
		itemRepo.On("ListByRental", ctx, int32(7)).Return(sampleItems(), nil)
		equipmentRepo.On("GetByID", ctx, int32(10)).Return(&domain.Equipment{ID: 10, Status: domain.EquipmentStatusAvailable}, nil)
		equipmentRepo.On("GetByID", ctx, int32(11)).Return(&domain.Equipment{ID: 11, Status: domain.EquipmentStatusUnderMaintenance}, nil)
		equipmentRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.Equipment) bool {
			return e.ID == 10 && e.Status == domain.EquipmentStatusRented
		})).Return(nil)

		res, err := svc.ChangeStatus(ctx, 7, domain.RentalStatusActive)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, res.Status)
		equipmentRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("Equipment failure does not fail the status change", func(t *testing.T) {
		rentalRepo, itemRepo, _, svc := newRentalServiceMocks()

		rt := rentalWith(7, "750", "0", "0")
		rt.Status = domain.RentalStatusActive
		rentalRepo.On("GetByID", ctx, int32(7)).Return(rt, nil)
		rentalRepo.On("Update", ctx, rt).Return(nil)
		itemRepo.On("ListByRental", ctx, int32(7)).Return([]domain.RentalItem(nil), errors.New("timeout"))

		_, err := svc.ChangeStatus(ctx, 7, domain.RentalStatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("Unknown status", func(t *testing.T) {
		_, _, _, svc := newRentalServiceMocks()
		_, err := svc.ChangeStatus(ctx, 7, "LOST")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_MarkReturned(t *testing.T) {
	ctx := context.Background()

	t.Run("Sets return date and releases equipment", func(t *testing.T) {
		rentalRepo, itemRepo, equipmentRepo, svc := newRentalServiceMocks()

		rt := rentalWith(7, "750", "0", "0")
		rt.Status = domain.RentalStatusOverdue
		rentalRepo.On("GetByID", ctx, int32(7)).Return(rt, nil)
		rentalRepo.On("Update", ctx, rt).Return(nil)
		itemRepo.On("ListByRental", ctx, int32(7)).Return(sampleItems()[:1], nil)
		equipmentRepo.On("GetByID", ctx, int32(10)).Return(&domain.Equipment{ID: 10, Status: domain.EquipmentStatusRented}, nil)
		equipmentRepo.On("Update", ctx, mock.MatchedBy(func(e *domain.Equipment) bool {
			return e.Status == domain.EquipmentStatusAvailable
		})).Return(nil)

		res, err := svc.MarkReturned(ctx, 7, "2024-01-06")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, res.Status)
		require.NotNil(t, res.ActualReturnDate)
		assert.Equal(t, "2024-01-06", *res.ActualReturnDate)
		equipmentRepo.AssertExpectations(t)
	})

	t.Run("Cancelled rental", func(t *testing.T) {
		rentalRepo, _, _, svc := newRentalServiceMocks()

		rt := rentalWith(7, "750", "0", "0")
		rt.Status = domain.RentalStatusCancelled
		rentalRepo.On("GetByID", ctx, int32(7)).Return(rt, nil)

		_, err := svc.MarkReturned(ctx, 7, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_Quote(t *testing.T) {
	_, _, _, svc := newRentalServiceMocks()

	q := svc.Quote("2024-01-01", "2024-01-03", sampleItems())
	assert.Equal(t, int32(3), q.DayCount)
	assert.True(t, q.Subtotal.Equal(dec("250")))
	assert.True(t, q.TotalAmount.Equal(dec("750")))

	q = svc.Quote("2024-01-05", "2024-01-01", sampleItems())
	assert.Equal(t, int32(0), q.DayCount)
	assert.True(t, q.TotalAmount.IsZero())
}
