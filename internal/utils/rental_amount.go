package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk-backend/internal/domain"
)

// DateLayout is the yyyy-mm-dd layout used for every calendar date field.
const DateLayout = "2006-01-02"

// RentalQuote is the derived money state of a rental form.
type RentalQuote struct {
	DayCount    int32           `json:"day_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ParseDate converts a yyyy-mm-dd string into a UTC calendar date.
// RFC 3339 timestamps are accepted and truncated to their date.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, dateStr); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %q", dateStr)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// DayCount returns the number of rental days between the rental date and the
// expected return date, counting both ends. It is 0 when either date is
// missing or unparseable, or when the return date precedes the rental date.
func DayCount(rentalDate, expectedReturnDate string) int32 {
	start, err := ParseDate(rentalDate)
	if err != nil {
		return 0
	}
	end, err := ParseDate(expectedReturnDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	// Unix seconds rather than Sub: a Duration overflows past ~292 years.
	const secondsPerDay = 24 * 60 * 60
	secs := end.Unix() - start.Unix()
	days := (secs + secondsPerDay - 1) / secondsPerDay
	return int32(days) + 1
}

// ItemsSubtotal is the per-day amount of the line items: sum of quantity x rate.
func ItemsSubtotal(items []domain.RentalItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitRentalRate.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return subtotal
}

// TotalAmountDue multiplies the items subtotal by the day count.
func TotalAmountDue(items []domain.RentalItem, dayCount int32) decimal.Decimal {
	if dayCount <= 0 || len(items) == 0 {
		return decimal.Zero
	}
	return ItemsSubtotal(items).Mul(decimal.NewFromInt32(dayCount))
}

// QuoteRental derives day count and total amount from rental form state.
func QuoteRental(rentalDate, expectedReturnDate string, items []domain.RentalItem) RentalQuote {
	days := DayCount(rentalDate, expectedReturnDate)
	return RentalQuote{
		DayCount:    days,
		Subtotal:    ItemsSubtotal(items),
		TotalAmount: TotalAmountDue(items, days),
	}
}
