package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

func (r *customerRepository) Create(ctx context.Context, c *model.Customer) error {
	query := `INSERT INTO customers (full_name, email) VALUES (?, ?) RETURNING id`

	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), c.FullName, c.Email).Scan(&c.ID); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (*model.Customer, error) {
	query := `SELECT id, full_name, email FROM customers WHERE id = ?`

	var c model.Customer
	if err := r.db.GetContext(ctx, &c, r.db.Rebind(query), id); err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, translateError(err, repository.ErrInvalidReference))
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	query := `SELECT id, full_name, email FROM customers ORDER BY id`

	customers := []*model.Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `UPDATE customers SET full_name = ?, email = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), c.FullName, c.Email, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", c.ID, err)
	}
	return requireRow(result, "customer", c.ID)
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM customers WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, translateError(err, repository.ErrInUse))
	}
	return requireRow(result, "customer", id)
}
