package service

import (
	"context"
	"fmt"
	"strings"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	return s.customerRepo.Create(ctx, c)
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	return s.customerRepo.Update(ctx, c)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int32) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, query string, page domain.Page) ([]domain.Customer, int32, error) {
	return s.customerRepo.List(ctx, strings.TrimSpace(query), page)
}

func validateCustomer(c *domain.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email is not valid", domain.ErrValidation)
	}
	return nil
}
