package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceRecord struct {
	ID              int32           `json:"maintenance_id"`
	EquipmentID     int32           `json:"equipment_id"`
	MaintenanceDate string          `json:"maintenance_date"`
	Description     string          `json:"description"`
	Cost            decimal.Decimal `json:"cost"`
	PerformedBy     string          `json:"performed_by"`
	NextDueDate     *string         `json:"next_due_date,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
}
