package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

const equipmentColumns = `id, category_id, name, COALESCE(serial_number, ''), default_rental_rate, status, created_on, updated_on`

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func scanEquipment(s rowScanner) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	var categoryID sql.NullInt32
	if err := s.Scan(&e.ID, &categoryID, &e.Name, &e.SerialNumber, &e.DefaultRentalRate, &e.Status, &e.CreatedOn, &e.UpdatedOn); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := categoryID.Int32
		e.CategoryID = &id
	}
	return e, nil
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (category_id, name, serial_number, default_rental_rate, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	e.CreatedOn = now
	e.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, e.CategoryID, e.Name, e.SerialNumber, e.DefaultRentalRate, e.Status, e.CreatedOn, e.UpdatedOn).Scan(&e.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	e, err := scanEquipment(r.db.QueryRowContext(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "equipment", id)
	}
	return e, nil
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipment SET category_id=$1, name=$2, serial_number=$3, default_rental_rate=$4, status=$5, updated_on=$6 WHERE id=$7`
	e.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx, query, e.CategoryID, e.Name, e.SerialNumber, e.DefaultRentalRate, e.Status, e.UpdatedOn, e.ID)
	if err != nil {
		return err
	}
	return checkAffected(res, "equipment", e.ID)
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "equipment", id)
}

func (r *equipmentRepository) List(ctx context.Context, filter domain.EquipmentFilter, page domain.Page) ([]domain.Equipment, int32, error) {
	sql := `SELECT ` + equipmentColumns + ` FROM equipment WHERE 1=1`
	args := []interface{}{}
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		sql += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		sql += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, likePattern(filter.Query))
		sql += fmt.Sprintf(" AND (name ILIKE $%d OR serial_number ILIKE $%d)", len(args), len(args))
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sql + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sql += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *e)
	}
	return items, count, rows.Err()
}
