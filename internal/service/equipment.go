package service

import (
	"context"
	"fmt"
	"strings"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type equipmentService struct {
	categoryRepo  repository.CategoryRepository
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(categoryRepo repository.CategoryRepository, equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{
		categoryRepo:  categoryRepo,
		equipmentRepo: equipmentRepo,
	}
}

func (s *equipmentService) CreateCategory(ctx context.Context, c *domain.EquipmentCategory) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return s.categoryRepo.Create(ctx, c)
}

func (s *equipmentService) GetCategory(ctx context.Context, id int32) (*domain.EquipmentCategory, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *equipmentService) UpdateCategory(ctx context.Context, c *domain.EquipmentCategory) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return s.categoryRepo.Update(ctx, c)
}

func (s *equipmentService) DeleteCategory(ctx context.Context, id int32) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *equipmentService) ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error) {
	return s.categoryRepo.List(ctx)
}

func (s *equipmentService) CreateEquipment(ctx context.Context, e *domain.Equipment) error {
	if e.Status == "" {
		e.Status = domain.EquipmentStatusAvailable
	}
	if err := s.validateEquipment(ctx, e); err != nil {
		return err
	}
	return s.equipmentRepo.Create(ctx, e)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, e *domain.Equipment) error {
	if e.Status == "" {
		existing, err := s.equipmentRepo.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		e.Status = existing.Status
	}
	if err := s.validateEquipment(ctx, e); err != nil {
		return err
	}
	return s.equipmentRepo.Update(ctx, e)
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, id int32) error {
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *equipmentService) ListEquipment(ctx context.Context, filter domain.EquipmentFilter, page domain.Page) ([]domain.Equipment, int32, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
	}
	return s.equipmentRepo.List(ctx, filter, page)
}

func (s *equipmentService) validateEquipment(ctx context.Context, e *domain.Equipment) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, e.Status)
	}
	if e.DefaultRentalRate.IsNegative() {
		return fmt.Errorf("%w: default_rental_rate must not be negative", domain.ErrValidation)
	}
	if e.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *e.CategoryID); err != nil {
			return fmt.Errorf("%w: category %d: %v", domain.ErrValidation, *e.CategoryID, err)
		}
	}
	return nil
}
