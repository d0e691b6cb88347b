package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

func (r *serviceRepository) Create(ctx context.Context, s *model.Service) error {
	query := `INSERT INTO services (name, price) VALUES (?, ?) RETURNING id`

	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), s.Name, s.Price).Scan(&s.ID); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	query := `SELECT id, name, price FROM services WHERE id = ?`

	var s model.Service
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(query), id); err != nil {
		return nil, fmt.Errorf("failed to get service %d: %w", id, translateError(err, repository.ErrInvalidReference))
	}
	return &s, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `SELECT id, name, price FROM services ORDER BY id`

	services := []*model.Service{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, s *model.Service) error {
	query := `UPDATE services SET name = ?, price = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), s.Name, s.Price, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update service %d: %w", s.ID, err)
	}
	return requireRow(result, "service", s.ID)
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM services WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete service %d: %w", id, translateError(err, repository.ErrInUse))
	}
	return requireRow(result, "service", id)
}
