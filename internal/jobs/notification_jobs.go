package jobs

import (
	"context"

	"github.com/shopspring/decimal"

	"rentdesk-backend/internal/logger"
)

// SendOverdueReminders e-mails each customer holding an OVERDUE rental
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		sent, failed, err := jr.sendOverdueReminders(context.Background())
		if err != nil {
			logger.Error("Failed to send overdue reminders", "error", err)
			return
		}
		logger.Info("Sent overdue reminders", "sent", sent, "failed", failed)
	})
}

func (jr *JobRunner) sendOverdueReminders(ctx context.Context) (int, int, error) {
	query := `
		SELECT rt.id, to_char(rt.expected_return_date, 'YYYY-MM-DD'), rt.balance,
		       c.name, c.email
		FROM rental_transactions rt
		JOIN customers c ON rt.customer_id = c.id
		WHERE rt.status = 'OVERDUE'
		  AND COALESCE(c.email, '') <> ''
		ORDER BY rt.id
	`

	rows, err := jr.db.QueryContext(ctx, query)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	sent, failed := 0, 0
	for rows.Next() {
		var (
			rentalID int32
			dueDate  string
			balance  decimal.NullDecimal
			name     string
			email    string
		)
		if err := rows.Scan(&rentalID, &dueDate, &balance, &name, &email); err != nil {
			logger.Error("Failed to scan overdue rental", "error", err)
			failed++
			continue
		}

		outstanding := ""
		if balance.Valid && balance.Decimal.IsPositive() {
			outstanding = balance.Decimal.StringFixed(2)
		}

		if err := jr.services.Email.SendOverdueReminder(ctx, email, name, rentalID, dueDate, outstanding); err != nil {
			logger.Error("Failed to send overdue reminder email",
				"rental_id", rentalID,
				"email", email,
				"error", err)
			failed++
			continue
		}

		sent++
		logger.Debug("Sent overdue reminder", "rental_id", rentalID, "email", email)
	}

	return sent, failed, rows.Err()
}
