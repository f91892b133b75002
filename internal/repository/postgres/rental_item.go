package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type rentalItemRepository struct {
	db *sql.DB
}

func NewRentalItemRepository(db *sql.DB) repository.RentalItemRepository {
	return &rentalItemRepository{db: db}
}

func (r *rentalItemRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalItem, error) {
	query := `SELECT d.id, d.rental_id, d.equipment_id, COALESCE(e.name, ''), d.quantity, d.unit_rental_rate
	          FROM rental_details d LEFT JOIN equipment e ON e.id = d.equipment_id
	          WHERE d.rental_id = $1 ORDER BY d.id ASC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentalItem
	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(&it.ID, &it.RentalID, &it.EquipmentID, &it.EquipmentName, &it.Quantity, &it.UnitRentalRate); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *rentalItemRepository) ReplaceForRental(ctx context.Context, rentalID int32, items []domain.RentalItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_details WHERE rental_id = $1`, rentalID); err != nil {
		return err
	}

	insert := `INSERT INTO rental_details (rental_id, equipment_id, quantity, unit_rental_rate) VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range items {
		items[i].RentalID = rentalID
		if err := tx.QueryRowContext(ctx, insert, rentalID, items[i].EquipmentID, items[i].Quantity, items[i].UnitRentalRate).Scan(&items[i].ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
