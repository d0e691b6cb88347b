package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

func (r *stylistRepository) Create(ctx context.Context, s *model.Stylist) error {
	query := `INSERT INTO stylists (name, specialty) VALUES (?, ?) RETURNING id`

	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), s.Name, s.Specialty).Scan(&s.ID); err != nil {
		return fmt.Errorf("failed to create stylist: %w", err)
	}
	return nil
}

func (r *stylistRepository) Get(ctx context.Context, id int64) (*model.Stylist, error) {
	query := `SELECT id, name, specialty FROM stylists WHERE id = ?`

	var s model.Stylist
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(query), id); err != nil {
		return nil, fmt.Errorf("failed to get stylist %d: %w", id, translateError(err, repository.ErrInvalidReference))
	}
	return &s, nil
}

func (r *stylistRepository) List(ctx context.Context) ([]*model.Stylist, error) {
	query := `SELECT id, name, specialty FROM stylists ORDER BY id`

	stylists := []*model.Stylist{}
	if err := r.db.SelectContext(ctx, &stylists, query); err != nil {
		return nil, fmt.Errorf("failed to list stylists: %w", err)
	}
	return stylists, nil
}

func (r *stylistRepository) Update(ctx context.Context, s *model.Stylist) error {
	query := `UPDATE stylists SET name = ?, specialty = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), s.Name, s.Specialty, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update stylist %d: %w", s.ID, err)
	}
	return requireRow(result, "stylist", s.ID)
}

func (r *stylistRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM stylists WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("failed to delete stylist %d: %w", id, translateError(err, repository.ErrInUse))
	}
	return requireRow(result, "stylist", id)
}
