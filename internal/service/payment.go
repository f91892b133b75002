package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/utils"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	reconciler  Reconciler
	now         func() time.Time
}

func NewPaymentService(paymentRepo repository.PaymentRepository, reconciler Reconciler) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		reconciler:  reconciler,
		now:         time.Now,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, p *domain.Payment) error {
	logger.EnterMethod("paymentService.CreatePayment", "rentalID", p.RentalID, "nature", p.Nature)

	if err := s.normalize(p); err != nil {
		logger.ExitMethodWithError("paymentService.CreatePayment", err, "rentalID", p.RentalID)
		return err
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		logger.ExitMethodWithError("paymentService.CreatePayment", err, "rentalID", p.RentalID)
		return err
	}

	s.reconciler.PaymentCreated(ctx, p)

	logger.ExitMethod("paymentService.CreatePayment", "paymentID", p.ID, "rentalID", p.RentalID)
	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// UpdatePayment reads the stored payment first so reconciliation can reverse
// what it contributed before the update. If that read fails for any reason
// other than a missing payment, the update still goes through and
// reconciliation is skipped.
func (s *paymentService) UpdatePayment(ctx context.Context, p *domain.Payment) error {
	logger.EnterMethod("paymentService.UpdatePayment", "paymentID", p.ID)

	if err := s.normalize(p); err != nil {
		logger.ExitMethodWithError("paymentService.UpdatePayment", err, "paymentID", p.ID)
		return err
	}

	prior, err := s.priorPayment(ctx, p.ID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.UpdatePayment", err, "paymentID", p.ID)
		return err
	}

	if err := s.paymentRepo.Update(ctx, p); err != nil {
		logger.ExitMethodWithError("paymentService.UpdatePayment", err, "paymentID", p.ID)
		return err
	}

	if prior != nil {
		p.CreatedOn = prior.CreatedOn
		s.reconciler.PaymentUpdated(ctx, prior, p)
	}

	logger.ExitMethod("paymentService.UpdatePayment", "paymentID", p.ID, "rentalID", p.RentalID)
	return nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id int32) error {
	logger.EnterMethod("paymentService.DeletePayment", "paymentID", id)

	prior, err := s.priorPayment(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("paymentService.DeletePayment", err, "paymentID", id)
		return err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("paymentService.DeletePayment", err, "paymentID", id)
		return err
	}

	if prior != nil {
		s.reconciler.PaymentDeleted(ctx, prior)
	}

	logger.ExitMethod("paymentService.DeletePayment", "paymentID", id)
	return nil
}

// priorPayment reads the stored payment ahead of a mutation. A missing payment
// is returned as an error. Any other failure is logged and yields nil, which
// skips reconciliation without blocking the mutation.
func (s *paymentService) priorPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	prior, err := s.paymentRepo.GetByID(ctx, id)
	if err == nil {
		return prior, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	logger.WithComponent("reconciler").Error("Failed to read payment before mutation, skipping reconciliation", "paymentID", id, "error", err)
	return nil, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]domain.Payment, int32, error) {
	return s.paymentRepo.List(ctx, filter, page)
}

func (s *paymentService) normalize(p *domain.Payment) error {
	if p.RentalID <= 0 {
		return fmt.Errorf("%w: rental_id is required", domain.ErrValidation)
	}
	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: payment_amount must not be negative", domain.ErrValidation)
	}
	p.Nature = strings.TrimSpace(p.Nature)
	if p.PaymentDate == "" {
		p.PaymentDate = s.now().Format(utils.DateLayout)
		return nil
	}
	d, err := utils.ParseDate(p.PaymentDate)
	if err != nil {
		return fmt.Errorf("%w: payment_date: %v", domain.ErrValidation, err)
	}
	p.PaymentDate = d.Format(utils.DateLayout)
	return nil
}
