package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/utils"
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	itemRepo      repository.RentalItemRepository
	equipmentRepo repository.EquipmentRepository
	locks         *RentalLocks
	now           func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	itemRepo repository.RentalItemRepository,
	equipmentRepo repository.EquipmentRepository,
	locks *RentalLocks,
) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		itemRepo:      itemRepo,
		equipmentRepo: equipmentRepo,
		locks:         locks,
		now:           time.Now,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, rt *domain.RentalTransaction) error {
	logger.EnterMethod("rentalService.CreateRental", "customerID", rt.CustomerID)

	if rt.Status == "" {
		rt.Status = domain.RentalStatusDraft
	}
	if err := validateRental(rt); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "customerID", rt.CustomerID)
		return err
	}

	// Deposit and receipts only move through payments.
	rt.Deposit = decimal.Zero
	rt.TotalReceipt = decimal.Zero
	applyTotals(rt, rt.Items)

	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "customerID", rt.CustomerID)
		return err
	}
	if len(rt.Items) > 0 {
		if err := s.itemRepo.ReplaceForRental(ctx, rt.ID, rt.Items); err != nil {
			logger.ExitMethodWithError("rentalService.CreateRental", err, "rentalID", rt.ID)
			return fmt.Errorf("rental %d created but items were not saved: %w", rt.ID, err)
		}
	}

	logger.ExitMethod("rentalService.CreateRental", "rentalID", rt.ID, "totalAmount", rt.TotalAmount)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.RentalTransaction, error) {
	rt, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByRental(ctx, id)
	if err != nil {
		return nil, err
	}
	rt.Items = items
	return rt, nil
}

// UpdateRental saves the editable fields of a rental. A nil Items slice keeps
// the stored line items; a non-nil one replaces them.
func (s *rentalService) UpdateRental(ctx context.Context, rt *domain.RentalTransaction) error {
	logger.EnterMethod("rentalService.UpdateRental", "rentalID", rt.ID)

	unlock := s.locks.Lock(rt.ID)
	defer unlock()

	existing, err := s.rentalRepo.GetByID(ctx, rt.ID)
	if err != nil {
		logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", rt.ID)
		return err
	}
	if rt.Status == "" {
		rt.Status = existing.Status
	}
	if err := validateRental(rt); err != nil {
		logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", rt.ID)
		return err
	}

	replaceItems := rt.Items != nil
	items := rt.Items
	if !replaceItems {
		if items, err = s.itemRepo.ListByRental(ctx, rt.ID); err != nil {
			logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", rt.ID)
			return err
		}
	}

	rt.Deposit = existing.Deposit
	rt.TotalReceipt = existing.TotalReceipt
	rt.CreatedOn = existing.CreatedOn
	applyTotals(rt, items)

	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", rt.ID)
		return err
	}
	if replaceItems {
		if err := s.itemRepo.ReplaceForRental(ctx, rt.ID, items); err != nil {
			logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", rt.ID)
			return err
		}
	}
	rt.Items = items

	logger.ExitMethod("rentalService.UpdateRental", "rentalID", rt.ID, "totalAmount", rt.TotalAmount, "balance", rt.Balance)
	return nil
}

func (s *rentalService) DeleteRental(ctx context.Context, id int32) error {
	return s.rentalRepo.Delete(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, filter domain.RentalFilter, page domain.Page) ([]domain.RentalTransaction, int32, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
	}
	return s.rentalRepo.List(ctx, filter, page)
}

func (s *rentalService) ChangeStatus(ctx context.Context, id int32, status domain.RentalStatus) (*domain.RentalTransaction, error) {
	logger.EnterMethod("rentalService.ChangeStatus", "rentalID", id, "status", status)

	if !status.Valid() {
		err := fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
		logger.ExitMethodWithError("rentalService.ChangeStatus", err, "rentalID", id)
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	rt, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("rentalService.ChangeStatus", err, "rentalID", id)
		return nil, err
	}
	if rt.Status == status {
		logger.ExitMethod("rentalService.ChangeStatus", "rentalID", id, "unchanged", true)
		return rt, nil
	}

	rt.Status = status
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		logger.ExitMethodWithError("rentalService.ChangeStatus", err, "rentalID", id)
		return nil, err
	}
	s.syncEquipmentStatus(ctx, rt)

	logger.ExitMethod("rentalService.ChangeStatus", "rentalID", id, "status", status)
	return rt, nil
}

// MarkReturned records the actual return date and moves the rental to
// RETURNED. An empty date means today.
func (s *rentalService) MarkReturned(ctx context.Context, id int32, returnDate string) (*domain.RentalTransaction, error) {
	logger.EnterMethod("rentalService.MarkReturned", "rentalID", id, "returnDate", returnDate)

	if returnDate == "" {
		returnDate = s.now().Format(utils.DateLayout)
	}
	d, err := utils.ParseDate(returnDate)
	if err != nil {
		err = fmt.Errorf("%w: return_date: %v", domain.ErrValidation, err)
		logger.ExitMethodWithError("rentalService.MarkReturned", err, "rentalID", id)
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	rt, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("rentalService.MarkReturned", err, "rentalID", id)
		return nil, err
	}
	if rt.Status == domain.RentalStatusCancelled {
		err := fmt.Errorf("%w: cancelled rental cannot be returned", domain.ErrValidation)
		logger.ExitMethodWithError("rentalService.MarkReturned", err, "rentalID", id)
		return nil, err
	}

	returned := d.Format(utils.DateLayout)
	rt.ActualReturnDate = &returned
	rt.Status = domain.RentalStatusReturned
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		logger.ExitMethodWithError("rentalService.MarkReturned", err, "rentalID", id)
		return nil, err
	}
	s.syncEquipmentStatus(ctx, rt)

	logger.ExitMethod("rentalService.MarkReturned", "rentalID", id, "returnDate", returned)
	return rt, nil
}

func (s *rentalService) Quote(rentalDate, expectedReturnDate string, items []domain.RentalItem) utils.RentalQuote {
	return utils.QuoteRental(rentalDate, expectedReturnDate, items)
}

// syncEquipmentStatus marks the rental's equipment as rented or available to
// follow the rental status. Failures are logged and ignored.
func (s *rentalService) syncEquipmentStatus(ctx context.Context, rt *domain.RentalTransaction) {
	var target domain.EquipmentStatus
	switch rt.Status {
	case domain.RentalStatusActive, domain.RentalStatusOverdue:
		target = domain.EquipmentStatusRented
	case domain.RentalStatusReturned, domain.RentalStatusCancelled:
		target = domain.EquipmentStatusAvailable
	default:
		return
	}

	items, err := s.itemRepo.ListByRental(ctx, rt.ID)
	if err != nil {
		logger.Warn("Failed to load rental items for equipment status", "rentalID", rt.ID, "error", err)
		return
	}
	for _, item := range items {
		eq, err := s.equipmentRepo.GetByID(ctx, item.EquipmentID)
		if err != nil {
			logger.Warn("Failed to load equipment", "equipmentID", item.EquipmentID, "error", err)
			continue
		}
		// Maintenance and retirement win over rental state.
		if eq.Status == target || eq.Status == domain.EquipmentStatusUnderMaintenance || eq.Status == domain.EquipmentStatusRetired {
			continue
		}
		eq.Status = target
		if err := s.equipmentRepo.Update(ctx, eq); err != nil {
			logger.Warn("Failed to update equipment status", "equipmentID", eq.ID, "status", target, "error", err)
		}
	}
}

func validateRental(rt *domain.RentalTransaction) error {
	if rt.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id is required", domain.ErrValidation)
	}
	if !rt.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, rt.Status)
	}
	start, err := utils.ParseDate(rt.RentalDate)
	if err != nil {
		return fmt.Errorf("%w: rental_date: %v", domain.ErrValidation, err)
	}
	rt.RentalDate = start.Format(utils.DateLayout)
	if rt.ExpectedReturnDate != "" {
		end, err := utils.ParseDate(rt.ExpectedReturnDate)
		if err != nil {
			return fmt.Errorf("%w: expected_return_date: %v", domain.ErrValidation, err)
		}
		if end.Before(start) {
			return fmt.Errorf("%w: expected_return_date is before rental_date", domain.ErrValidation)
		}
		rt.ExpectedReturnDate = end.Format(utils.DateLayout)
	}
	for i, item := range rt.Items {
		if item.EquipmentID <= 0 {
			return fmt.Errorf("%w: items[%d]: equipment_id is required", domain.ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: items[%d]: quantity must be positive", domain.ErrValidation, i)
		}
		if item.UnitRentalRate.IsNegative() {
			return fmt.Errorf("%w: items[%d]: unit_rental_rate must not be negative", domain.ErrValidation, i)
		}
	}
	return nil
}

// applyTotals derives total_amount from the items and dates, then the balance.
func applyTotals(rt *domain.RentalTransaction, items []domain.RentalItem) {
	days := utils.DayCount(rt.RentalDate, rt.ExpectedReturnDate)
	rt.TotalAmount = decimal.NewNullDecimal(utils.TotalAmountDue(items, days))
	rt.RecomputeBalance()
}
