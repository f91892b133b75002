package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

// contribution is the share one payment adds to a rental's aggregates.
type contribution struct {
	nature string
	amount decimal.Decimal
}

type rentalReconciler struct {
	rentalRepo repository.RentalRepository
	locks      *RentalLocks
}

// NewReconciler builds the payment reconciler. Pass the same locks to the
// rental service so rental edits and reconciliation do not interleave.
func NewReconciler(rentalRepo repository.RentalRepository, locks *RentalLocks) Reconciler {
	return &rentalReconciler{
		rentalRepo: rentalRepo,
		locks:      locks,
	}
}

func (r *rentalReconciler) PaymentCreated(ctx context.Context, p *domain.Payment) {
	r.reconcile(ctx, "create", p.RentalID, nil, &contribution{nature: p.Nature, amount: p.Amount})
}

// PaymentUpdated reverses the prior contribution and applies the new one.
// When the payment moved to another rental each side is reconciled on its own.
func (r *rentalReconciler) PaymentUpdated(ctx context.Context, prior, updated *domain.Payment) {
	before := &contribution{nature: prior.Nature, amount: prior.Amount}
	after := &contribution{nature: updated.Nature, amount: updated.Amount}

	if prior.RentalID == updated.RentalID {
		r.reconcile(ctx, "update", updated.RentalID, before, after)
		return
	}
	r.reconcile(ctx, "update", prior.RentalID, before, nil)
	r.reconcile(ctx, "update", updated.RentalID, nil, after)
}

func (r *rentalReconciler) PaymentDeleted(ctx context.Context, prior *domain.Payment) {
	r.reconcile(ctx, "delete", prior.RentalID, &contribution{nature: prior.Nature, amount: prior.Amount}, nil)
}

// reconcile reads the rental, applies the adjustments to one snapshot and
// writes deposit, total receipt and balance back. Errors are logged only.
func (r *rentalReconciler) reconcile(ctx context.Context, op string, rentalID int32, reverse, apply *contribution) {
	log := logger.WithComponent("reconciler").With("op", op, "rental_id", rentalID)

	// The payment write has already happened; finish even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	unlock := r.locks.Lock(rentalID)
	defer unlock()

	rt, err := r.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn("Rental not found, skipping reconciliation")
			return
		}
		log.Error("Failed to load rental for reconciliation", "error", err)
		return
	}

	if reverse != nil {
		adjust(rt, reverse.nature, reverse.amount.Neg())
	}
	if apply != nil {
		adjust(rt, apply.nature, apply.amount)
	}
	rt.RecomputeBalance()

	if err := r.rentalRepo.UpdateFinancials(ctx, rt.ID, rt.Deposit, rt.TotalReceipt, rt.Balance); err != nil {
		log.Error("Failed to persist reconciled rental amounts", "error", err)
		return
	}
	log.Debug("Rental amounts reconciled", "deposit", rt.Deposit, "total_receipt", rt.TotalReceipt, "balance", rt.Balance)
}

// adjust adds delta to the bucket the payment nature maps to.
func adjust(rt *domain.RentalTransaction, nature string, delta decimal.Decimal) {
	if domain.IsDepositNature(nature) {
		rt.Deposit = rt.Deposit.Add(delta)
		return
	}
	rt.TotalReceipt = rt.TotalReceipt.Add(delta)
}

// RentalLocks serializes read-modify-write work per rental id within this process.
type RentalLocks struct {
	mu    sync.Mutex
	locks map[int32]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewRentalLocks() *RentalLocks {
	return &RentalLocks{locks: make(map[int32]*keyedLock)}
}

// Lock blocks until the rental id is free and returns the unlock func.
func (k *RentalLocks) Lock(key int32) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
