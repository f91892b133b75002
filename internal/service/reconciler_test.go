package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

func rentalWith(id int32, total string, deposit, receipt string) *domain.RentalTransaction {
	rt := &domain.RentalTransaction{
		ID:           id,
		Deposit:      dec(deposit),
		TotalReceipt: dec(receipt),
	}
	if total != "" {
		rt.TotalAmount = decimal.NewNullDecimal(dec(total))
		rt.RecomputeBalance()
	}
	return rt
}

func TestReconciler_PaymentCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("Receipt adds to total receipt and recomputes balance", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "0"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("0"), decEq("300"), nullDecEq("700")).Return(nil)

		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentCreated(ctx, &domain.Payment{RentalID: 1, Nature: "rental", Amount: dec("300")})

		rentalRepo.AssertExpectations(t)
	})

	for _, nature := range []string{"Deposit", "Security Deposit", "DEPOSIT", "refundable deposit"} {
		t.Run("Deposit nature "+nature, func(t *testing.T) {
			rentalRepo := new(MockRentalRepo)
			rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "0"), nil)
			rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("250"), decEq("0"), nullDecEq("1000")).Return(nil)

			service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentCreated(ctx, &domain.Payment{RentalID: 1, Nature: nature, Amount: dec("250")})

			rentalRepo.AssertExpectations(t)
		})
	}

	t.Run("Empty nature is a receipt", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "0"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("0"), decEq("100"), nullDecEq("900")).Return(nil)

		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentCreated(ctx, &domain.Payment{RentalID: 1, Amount: dec("100")})

		rentalRepo.AssertExpectations(t)
	})

	t.Run("Balance untouched without total amount", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "", "0", "0"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("0"), decEq("300"), nullDecUnset).Return(nil)

		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentCreated(ctx, &domain.Payment{RentalID: 1, Nature: "rental", Amount: dec("300")})

		rentalRepo.AssertExpectations(t)
	})

	t.Run("Missing rental is skipped", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(9)).Return(nil, domain.ErrNotFound)

		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentCreated(ctx, &domain.Payment{RentalID: 9, Nature: "rental", Amount: dec("300")})

		rentalRepo.AssertNotCalled(t, "UpdateFinancials", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cancelled caller context still reconciles", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()

		rentalRepo := new(MockRentalRepo)
		notCancelled := mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })
		rentalRepo.On("GetByID", notCancelled, int32(1)).Return(rentalWith(1, "1000", "0", "0"), nil)
		rentalRepo.On("UpdateFinancials", notCancelled, int32(1), decEq("0"), decEq("300"), nullDecEq("700")).Return(nil)

		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentCreated(cctx, &domain.Payment{RentalID: 1, Nature: "rental", Amount: dec("300")})

		rentalRepo.AssertExpectations(t)
	})
}

func TestReconciler_PaymentUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("Nature change moves amount between buckets", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "300"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("300"), decEq("0"), nullDecEq("1000")).Return(nil).Once()

		prior := &domain.Payment{ID: 5, RentalID: 1, Nature: "rental", Amount: dec("300")}
		updated := &domain.Payment{ID: 5, RentalID: 1, Nature: "deposit", Amount: dec("300")}
		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentUpdated(ctx, prior, updated)

		rentalRepo.AssertExpectations(t)
		rentalRepo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("Amount change in the same bucket", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "300"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("0"), decEq("450"), nullDecEq("550")).Return(nil)

		prior := &domain.Payment{ID: 5, RentalID: 1, Nature: "rental", Amount: dec("300")}
		updated := &domain.Payment{ID: 5, RentalID: 1, Nature: "rental", Amount: dec("450")}
		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentUpdated(ctx, prior, updated)

		rentalRepo.AssertExpectations(t)
	})

	t.Run("Rental change reconciles both rentals", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "300"), nil)
		rentalRepo.On("GetByID", mock.Anything, int32(2)).Return(rentalWith(2, "500", "0", "0"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("0"), decEq("0"), nullDecEq("1000")).Return(nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(2), decEq("0"), decEq("300"), nullDecEq("200")).Return(nil)

		prior := &domain.Payment{ID: 5, RentalID: 1, Nature: "rental", Amount: dec("300")}
		updated := &domain.Payment{ID: 5, RentalID: 2, Nature: "rental", Amount: dec("300")}
		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentUpdated(ctx, prior, updated)

		rentalRepo.AssertExpectations(t)
	})
}

func TestReconciler_PaymentDeleted(t *testing.T) {
	ctx := context.Background()

	t.Run("Receipt removal", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "300"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("0"), decEq("0"), nullDecEq("1000")).Return(nil)

		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentDeleted(ctx, &domain.Payment{ID: 5, RentalID: 1, Nature: "rental", Amount: dec("300")})

		rentalRepo.AssertExpectations(t)
	})

	t.Run("Deposit removal leaves balance", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "200", "300"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), decEq("0"), decEq("300"), nullDecEq("700")).Return(nil)

		service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentDeleted(ctx, &domain.Payment{ID: 6, RentalID: 1, Nature: "Deposit", Amount: dec("200")})

		rentalRepo.AssertExpectations(t)
	})

	t.Run("Write failure is swallowed", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(rentalWith(1, "1000", "0", "300"), nil)
		rentalRepo.On("UpdateFinancials", mock.Anything, int32(1), mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		assert.NotPanics(t, func() {
			service.NewReconciler(rentalRepo, service.NewRentalLocks()).PaymentDeleted(ctx, &domain.Payment{ID: 5, RentalID: 1, Nature: "rental", Amount: dec("300")})
		})
	})
}

// memRentalRepo is an in-memory RentalRepository holding copies of rentals.
type memRentalRepo struct {
	mu      sync.Mutex
	rentals map[int32]domain.RentalTransaction
}

func (r *memRentalRepo) Create(ctx context.Context, rt *domain.RentalTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rentals[rt.ID] = *rt
	return nil
}
func (r *memRentalRepo) GetByID(ctx context.Context, id int32) (*domain.RentalTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.rentals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rt, nil
}

// Update keeps the stored deposit and total receipt and derives balance from
// the stored receipt, like the postgres repository.
func (r *memRentalRepo) Update(ctx context.Context, rt *domain.RentalTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rentals[rt.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rt.Deposit, rt.TotalReceipt = stored.Deposit, stored.TotalReceipt
	if rt.TotalAmount.Valid {
		rt.Balance = decimal.NewNullDecimal(rt.TotalAmount.Decimal.Sub(stored.TotalReceipt))
	} else {
		rt.Balance = stored.Balance
	}
	r.rentals[rt.ID] = *rt
	return nil
}
func (r *memRentalRepo) UpdateFinancials(ctx context.Context, id int32, deposit, totalReceipt decimal.Decimal, balance decimal.NullDecimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt := r.rentals[id]
	rt.Deposit, rt.TotalReceipt, rt.Balance = deposit, totalReceipt, balance
	r.rentals[id] = rt
	return nil
}
func (r *memRentalRepo) Delete(ctx context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rentals, id)
	return nil
}
func (r *memRentalRepo) List(ctx context.Context, filter domain.RentalFilter, page domain.Page) ([]domain.RentalTransaction, int32, error) {
	return nil, 0, nil
}

func TestReconciler_ConcurrentPaymentsOnOneRental(t *testing.T) {
	repo := &memRentalRepo{rentals: map[int32]domain.RentalTransaction{
		1: *rentalWith(1, "10000", "0", "0"),
	}}
	rec := service.NewReconciler(repo, service.NewRentalLocks())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			nature := "rental"
			if i%2 == 0 {
				nature = "deposit"
			}
			rec.PaymentCreated(context.Background(), &domain.Payment{RentalID: 1, Nature: nature, Amount: dec("10")})
		}(i)
	}
	wg.Wait()

	rt, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, rt.Deposit.Equal(dec("250")), "deposit %s", rt.Deposit)
	assert.True(t, rt.TotalReceipt.Equal(dec("250")), "receipt %s", rt.TotalReceipt)
	assert.True(t, rt.Balance.Decimal.Equal(dec("9750")), "balance %s", rt.Balance.Decimal)
}
