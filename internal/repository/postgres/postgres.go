package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	repository.UserRepository
	repository.CustomerRepository
	repository.CategoryRepository
	repository.EquipmentRepository
	repository.RentalRepository
	repository.RentalItemRepository
	repository.PaymentRepository
	repository.MaintenanceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		UserRepository:        NewUserRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
		CategoryRepository:    NewCategoryRepository(db),
		EquipmentRepository:   NewEquipmentRepository(db),
		RentalRepository:      NewRentalRepository(db),
		RentalItemRepository:  NewRentalItemRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// notFound translates sql.ErrNoRows into domain.ErrNotFound.
func notFound(err error, table string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", table, id, domain.ErrNotFound)
	}
	return err
}

// checkAffected returns domain.ErrNotFound when an update or delete hit no row.
func checkAffected(res sql.Result, table string, id int32) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// likePattern wraps a free-text search term for ILIKE.
func likePattern(q string) string {
	return "%" + q + "%"
}

// optionalDate stores an empty date string as NULL.
func optionalDate(d string) sql.NullString {
	return sql.NullString{String: d, Valid: d != ""}
}
