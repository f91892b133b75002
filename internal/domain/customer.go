package domain

import "time"

type Customer struct {
	ID            int32     `json:"customer_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Pincode       string    `json:"pincode"`
	IDProofType   string    `json:"id_proof_type"`
	IDProofNumber string    `json:"id_proof_number"`
	Notes         string    `json:"notes"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}
