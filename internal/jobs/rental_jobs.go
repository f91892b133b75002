package jobs

import (
	"context"

	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/utils"
)

// MarkOverdueRentals moves ACTIVE rentals past their expected return date to OVERDUE
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		count, err := jr.markOverdueRentals(context.Background())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		logger.Info("Marked rentals as overdue", "count", count)
	})
}

func (jr *JobRunner) markOverdueRentals(ctx context.Context) (int, error) {
	query := `
		UPDATE rental_transactions
		SET status = 'OVERDUE',
		    updated_on = NOW()
		WHERE status = 'ACTIVE'
		  AND expected_return_date < $1
		RETURNING id, customer_id, to_char(expected_return_date, 'YYYY-MM-DD')
	`

	today := jr.now().UTC().Format(utils.DateLayout)
	rows, err := jr.db.QueryContext(ctx, query, today)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			rentalID   int32
			customerID int32
			dueDate    string
		)
		if err := rows.Scan(&rentalID, &customerID, &dueDate); err != nil {
			logger.Error("Failed to scan overdue rental", "error", err)
			continue
		}
		count++
		logger.Debug("Marked rental as overdue",
			"rental_id", rentalID,
			"customer_id", customerID,
			"expected_return_date", dueDate)
	}

	return count, rows.Err()
}
