package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

const rentalColumns = `id, customer_id, to_char(rental_date, 'YYYY-MM-DD'), COALESCE(to_char(expected_return_date, 'YYYY-MM-DD'), ''), to_char(actual_return_date, 'YYYY-MM-DD'), status, total_amount, deposit, total_receipt, balance, COALESCE(notes, ''), created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(s rowScanner) (*domain.RentalTransaction, error) {
	rt := &domain.RentalTransaction{}
	var actualReturn sql.NullString
	err := s.Scan(&rt.ID, &rt.CustomerID, &rt.RentalDate, &rt.ExpectedReturnDate, &actualReturn, &rt.Status, &rt.TotalAmount, &rt.Deposit, &rt.TotalReceipt, &rt.Balance, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	rt.ActualReturnDate = nullString(actualReturn)
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.RentalTransaction) error {
	query := `INSERT INTO rental_transactions (customer_id, rental_date, expected_return_date, actual_return_date, status, total_amount, deposit, total_receipt, balance, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, rt.CustomerID, rt.RentalDate, optionalDate(rt.ExpectedReturnDate), rt.ActualReturnDate, rt.Status, rt.TotalAmount, rt.Deposit, rt.TotalReceipt, rt.Balance, rt.Notes, rt.CreatedOn, rt.UpdatedOn).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.RentalTransaction, error) {
	rt, err := scanRental(r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rental_transactions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "rental_transactions", id)
	}
	return rt, nil
}

// Update writes the editable rental fields. Deposit and total receipt are
// left to UpdateFinancials. Balance is derived from the stored total receipt,
// and the stored deposit, total receipt and balance are read back into rt.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.RentalTransaction) error {
	query := `UPDATE rental_transactions
	          SET customer_id=$1, rental_date=$2, expected_return_date=$3, actual_return_date=$4, status=$5, total_amount=$6,
	              balance = CASE WHEN $6::numeric IS NULL THEN balance ELSE $6::numeric - total_receipt END,
	              notes=$7, updated_on=$8
	          WHERE id=$9
	          RETURNING deposit, total_receipt, balance`
	rt.UpdatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, rt.CustomerID, rt.RentalDate, optionalDate(rt.ExpectedReturnDate), rt.ActualReturnDate, rt.Status, rt.TotalAmount, rt.Notes, rt.UpdatedOn, rt.ID).
		Scan(&rt.Deposit, &rt.TotalReceipt, &rt.Balance)
	return notFound(err, "rental_transactions", rt.ID)
}

func (r *rentalRepository) UpdateFinancials(ctx context.Context, id int32, deposit, totalReceipt decimal.Decimal, balance decimal.NullDecimal) error {
	query := `UPDATE rental_transactions SET deposit=$1, total_receipt=$2, balance=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, deposit, totalReceipt, balance, time.Now(), id)
	if err != nil {
		logger.DatabaseResult("rental_transactions.update_financials", 0, err, "rental_id", id)
		return err
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("rental_transactions.update_financials", n, nil, "rental_id", id)
	return checkAffected(res, "rental_transactions", id)
}

// Delete removes the rental and its line items in one transaction.
func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_details WHERE rental_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rental_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := checkAffected(res, "rental_transactions", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rentalRepository) List(ctx context.Context, filter domain.RentalFilter, page domain.Page) ([]domain.RentalTransaction, int32, error) {
	sql := `SELECT ` + rentalColumns + ` FROM rental_transactions r WHERE 1=1`
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		sql += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.CustomerID != 0 {
		args = append(args, filter.CustomerID)
		sql += fmt.Sprintf(" AND r.customer_id = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, likePattern(filter.Query))
		sql += fmt.Sprintf(" AND (r.notes ILIKE $%d OR EXISTS (SELECT 1 FROM customers c WHERE c.id = r.customer_id AND c.name ILIKE $%d))", len(args), len(args))
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sql + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sql += fmt.Sprintf(" ORDER BY r.rental_date DESC, r.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.RentalTransaction
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}
