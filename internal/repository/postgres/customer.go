package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

const customerColumns = `id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(pincode, ''), COALESCE(id_proof_type, ''), COALESCE(id_proof_number, ''), COALESCE(notes, ''), created_on, updated_on`

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func scanCustomer(s rowScanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := s.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.City, &c.State, &c.Pincode, &c.IDProofType, &c.IDProofNumber, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	return c, err
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, phone, email, address, city, state, pincode, id_proof_type, id_proof_number, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, c.City, c.State, c.Pincode, c.IDProofType, c.IDProofNumber, c.Notes, c.CreatedOn, c.UpdatedOn).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "customers", id)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, phone=$2, email=$3, address=$4, city=$5, state=$6, pincode=$7, id_proof_type=$8, id_proof_number=$9, notes=$10, updated_on=$11 WHERE id=$12`
	c.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Email, c.Address, c.City, c.State, c.Pincode, c.IDProofType, c.IDProofNumber, c.Notes, c.UpdatedOn, c.ID)
	if err != nil {
		return err
	}
	return checkAffected(res, "customers", c.ID)
}

func (r *customerRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "customers", id)
}

func (r *customerRepository) List(ctx context.Context, q string, page domain.Page) ([]domain.Customer, int32, error) {
	where := ""
	args := []interface{}{}
	if q != "" {
		where = " WHERE name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1"
		args = append(args, likePattern(q))
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM customers"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	return customers, count, rows.Err()
}
