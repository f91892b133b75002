package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.EquipmentCategory) error {
	query := `INSERT INTO equipment_categories (name, description) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Description).Scan(&c.ID)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int32) (*domain.EquipmentCategory, error) {
	c := &domain.EquipmentCategory{}
	query := `SELECT id, name, COALESCE(description, '') FROM equipment_categories WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, notFound(err, "equipment_categories", id)
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.EquipmentCategory) error {
	res, err := r.db.ExecContext(ctx, `UPDATE equipment_categories SET name=$1, description=$2 WHERE id=$3`, c.Name, c.Description, c.ID)
	if err != nil {
		return err
	}
	return checkAffected(res, "equipment_categories", c.ID)
}

func (r *categoryRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "equipment_categories", id)
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.EquipmentCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(description, '') FROM equipment_categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.EquipmentCategory
	for rows.Next() {
		var c domain.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
