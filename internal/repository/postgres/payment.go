package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

const paymentColumns = `id, rental_id, COALESCE(nature, ''), payment_amount, to_char(payment_date, 'YYYY-MM-DD'), COALESCE(payment_mode, ''), COALESCE(payment_reference, ''), COALESCE(notes, ''), created_on`

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(s rowScanner) (*domain.Payment, error) {
	p := &domain.Payment{}
	var paymentDate sql.NullString
	if err := s.Scan(&p.ID, &p.RentalID, &p.Nature, &p.Amount, &paymentDate, &p.PaymentMode, &p.PaymentReference, &p.Notes, &p.CreatedOn); err != nil {
		return nil, err
	}
	p.PaymentDate = paymentDate.String
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rental_id, nature, payment_amount, payment_date, payment_mode, payment_reference, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	p.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, p.RentalID, p.Nature, p.Amount, p.PaymentDate, p.PaymentMode, p.PaymentReference, p.Notes, p.CreatedOn).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "payments", id)
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET rental_id=$1, nature=$2, payment_amount=$3, payment_date=$4, payment_mode=$5, payment_reference=$6, notes=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, p.RentalID, p.Nature, p.Amount, p.PaymentDate, p.PaymentMode, p.PaymentReference, p.Notes, p.ID)
	if err != nil {
		return err
	}
	return checkAffected(res, "payments", p.ID)
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "payments", id)
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]domain.Payment, int32, error) {
	sql := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []interface{}{}
	if filter.RentalID != 0 {
		args = append(args, filter.RentalID)
		sql += fmt.Sprintf(" AND rental_id = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, likePattern(filter.Query))
		sql += fmt.Sprintf(" AND (nature ILIKE $%d OR payment_reference ILIKE $%d OR payment_mode ILIKE $%d)", len(args), len(args), len(args))
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sql + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sql += fmt.Sprintf(" ORDER BY payment_date DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, *p)
	}
	return payments, count, rows.Err()
}
