package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable        EquipmentStatus = "AVAILABLE"
	EquipmentStatusRented           EquipmentStatus = "RENTED"
	EquipmentStatusUnderMaintenance EquipmentStatus = "UNDER_MAINTENANCE"
	EquipmentStatusRetired          EquipmentStatus = "RETIRED"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusAvailable, EquipmentStatusRented, EquipmentStatusUnderMaintenance, EquipmentStatusRetired:
		return true
	}
	return false
}

type EquipmentCategory struct {
	ID          int32  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Equipment struct {
	ID                int32           `json:"equipment_id"`
	CategoryID        *int32          `json:"category_id,omitempty"`
	Name              string          `json:"name"`
	SerialNumber      string          `json:"serial_number"`
	DefaultRentalRate decimal.Decimal `json:"default_rental_rate"`
	Status            EquipmentStatus `json:"status"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}

type EquipmentFilter struct {
	CategoryID int32
	Status     EquipmentStatus
	Query      string
}
