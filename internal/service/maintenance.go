package service

import (
	"context"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/utils"
)

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	equipmentRepo   repository.EquipmentRepository
}

func NewMaintenanceService(maintenanceRepo repository.MaintenanceRepository, equipmentRepo repository.EquipmentRepository) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		equipmentRepo:   equipmentRepo,
	}
}

func (s *maintenanceService) CreateRecord(ctx context.Context, r *domain.MaintenanceRecord) error {
	if err := s.validate(ctx, r); err != nil {
		return err
	}
	return s.maintenanceRepo.Create(ctx, r)
}

func (s *maintenanceService) GetRecord(ctx context.Context, id int32) (*domain.MaintenanceRecord, error) {
	return s.maintenanceRepo.GetByID(ctx, id)
}

func (s *maintenanceService) UpdateRecord(ctx context.Context, r *domain.MaintenanceRecord) error {
	if err := s.validate(ctx, r); err != nil {
		return err
	}
	return s.maintenanceRepo.Update(ctx, r)
}

func (s *maintenanceService) DeleteRecord(ctx context.Context, id int32) error {
	return s.maintenanceRepo.Delete(ctx, id)
}

func (s *maintenanceService) ListRecords(ctx context.Context, equipmentID int32, page domain.Page) ([]domain.MaintenanceRecord, int32, error) {
	return s.maintenanceRepo.ListByEquipment(ctx, equipmentID, page)
}

func (s *maintenanceService) validate(ctx context.Context, r *domain.MaintenanceRecord) error {
	if r.EquipmentID <= 0 {
		return fmt.Errorf("%w: equipment_id is required", domain.ErrValidation)
	}
	d, err := utils.ParseDate(r.MaintenanceDate)
	if err != nil {
		return fmt.Errorf("%w: maintenance_date: %v", domain.ErrValidation, err)
	}
	r.MaintenanceDate = d.Format(utils.DateLayout)
	if r.NextDueDate != nil && *r.NextDueDate != "" {
		next, err := utils.ParseDate(*r.NextDueDate)
		if err != nil {
			return fmt.Errorf("%w: next_due_date: %v", domain.ErrValidation, err)
		}
		formatted := next.Format(utils.DateLayout)
		r.NextDueDate = &formatted
	} else {
		r.NextDueDate = nil
	}
	if r.Cost.IsNegative() {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if _, err := s.equipmentRepo.GetByID(ctx, r.EquipmentID); err != nil {
		return err
	}
	return nil
}
