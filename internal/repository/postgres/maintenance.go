package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

const maintenanceColumns = `id, equipment_id, to_char(maintenance_date, 'YYYY-MM-DD'), COALESCE(description, ''), cost, COALESCE(performed_by, ''), to_char(next_due_date, 'YYYY-MM-DD'), created_on`

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func scanMaintenance(s rowScanner) (*domain.MaintenanceRecord, error) {
	m := &domain.MaintenanceRecord{}
	var nextDue sql.NullString
	if err := s.Scan(&m.ID, &m.EquipmentID, &m.MaintenanceDate, &m.Description, &m.Cost, &m.PerformedBy, &nextDue, &m.CreatedOn); err != nil {
		return nil, err
	}
	m.NextDueDate = nullString(nextDue)
	return m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	query := `INSERT INTO maintenance_records (equipment_id, maintenance_date, description, cost, performed_by, next_due_date, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	m.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, m.EquipmentID, m.MaintenanceDate, m.Description, m.Cost, m.PerformedBy, m.NextDueDate, m.CreatedOn).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.MaintenanceRecord, error) {
	m, err := scanMaintenance(r.db.QueryRowContext(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_records WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "maintenance_records", id)
	}
	return m, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.MaintenanceRecord) error {
	query := `UPDATE maintenance_records SET equipment_id=$1, maintenance_date=$2, description=$3, cost=$4, performed_by=$5, next_due_date=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, m.EquipmentID, m.MaintenanceDate, m.Description, m.Cost, m.PerformedBy, m.NextDueDate, m.ID)
	if err != nil {
		return err
	}
	return checkAffected(res, "maintenance_records", m.ID)
}

func (r *maintenanceRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenance_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "maintenance_records", id)
}

func (r *maintenanceRepository) ListByEquipment(ctx context.Context, equipmentID int32, page domain.Page) ([]domain.MaintenanceRecord, int32, error) {
	where := ""
	args := []interface{}{}
	if equipmentID != 0 {
		where = " WHERE equipment_id = $1"
		args = append(args, equipmentID)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM maintenance_records`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records` + where + ` ORDER BY maintenance_date DESC, id DESC`
	if equipmentID != 0 {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.MaintenanceRecord
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *m)
	}
	return records, count, rows.Err()
}
