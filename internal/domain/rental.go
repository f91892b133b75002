package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusDraft               RentalStatus = "DRAFT"
	RentalStatusPendingConfirmation RentalStatus = "PENDING_CONFIRMATION"
	RentalStatusConfirmed           RentalStatus = "CONFIRMED"
	RentalStatusActive              RentalStatus = "ACTIVE"
	RentalStatusReturned            RentalStatus = "RETURNED"
	RentalStatusOverdue             RentalStatus = "OVERDUE"
	RentalStatusCancelled           RentalStatus = "CANCELLED"
)

var rentalStatuses = map[RentalStatus]bool{
	RentalStatusDraft:               true,
	RentalStatusPendingConfirmation: true,
	RentalStatusConfirmed:           true,
	RentalStatusActive:              true,
	RentalStatusReturned:            true,
	RentalStatusOverdue:             true,
	RentalStatusCancelled:           true,
}

// Valid reports whether s is one of the known rental statuses.
func (s RentalStatus) Valid() bool {
	return rentalStatuses[s]
}

type RentalTransaction struct {
	ID                 int32        `json:"rental_id"`
	CustomerID         int32        `json:"customer_id"`
	RentalDate         string       `json:"rental_date"`
	ExpectedReturnDate string       `json:"expected_return_date"`
	ActualReturnDate   *string      `json:"actual_return_date,omitempty"`
	Status             RentalStatus `json:"status"`
	// TotalAmount is computed from the line items and the day count when the
	// rental is saved. Deposit, TotalReceipt and Balance are owned by payment
	// reconciliation.
	TotalAmount  decimal.NullDecimal `json:"total_amount"`
	Deposit      decimal.Decimal     `json:"deposit"`
	TotalReceipt decimal.Decimal     `json:"total_receipt"`
	Balance      decimal.NullDecimal `json:"balance"`
	Notes        string              `json:"notes"`
	Items        []RentalItem        `json:"items,omitempty"`
	CreatedOn    time.Time           `json:"created_on"`
	UpdatedOn    time.Time           `json:"updated_on"`
}

// RecomputeBalance sets Balance from TotalAmount and TotalReceipt. Balance is
// left untouched when TotalAmount is unset.
func (rt *RentalTransaction) RecomputeBalance() {
	if !rt.TotalAmount.Valid {
		return
	}
	rt.Balance = decimal.NewNullDecimal(rt.TotalAmount.Decimal.Sub(rt.TotalReceipt))
}

type RentalItem struct {
	ID             int32           `json:"id"`
	RentalID       int32           `json:"rental_id"`
	EquipmentID    int32           `json:"equipment_id"`
	EquipmentName  string          `json:"equipment_name,omitempty"`
	Quantity       int32           `json:"quantity"`
	UnitRentalRate decimal.Decimal `json:"unit_rental_rate"`
}

type RentalFilter struct {
	Status     RentalStatus
	CustomerID int32
	Query      string
}
