package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const depositKeyword = "deposit"

type Payment struct {
	ID               int32           `json:"payment_id"`
	RentalID         int32           `json:"rental_id"`
	Nature           string          `json:"nature"`
	Amount           decimal.Decimal `json:"payment_amount"`
	PaymentDate      string          `json:"payment_date"`
	PaymentMode      string          `json:"payment_mode"`
	PaymentReference string          `json:"payment_reference"`
	Notes            string          `json:"notes"`
	CreatedOn        time.Time       `json:"created_on"`
}

// IsDepositNature reports whether a payment nature counts toward a rental's
// deposit. Anything else, including the empty string, is a rental receipt.
func IsDepositNature(nature string) bool {
	return strings.Contains(strings.ToLower(nature), depositKeyword)
}

// IsDeposit reports whether the payment counts toward the rental deposit.
func (p *Payment) IsDeposit() bool {
	return IsDepositNature(p.Nature)
}

type PaymentFilter struct {
	RentalID int32
	Query    string
}
