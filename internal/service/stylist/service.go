package stylist

import (
	"context"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service"
	"github.com/jwalitptl/salon-api/pkg/logger"
)

const resource = "stylist"

type Service struct {
	repo   repository.StylistRepository
	logger *logger.Logger
}

func NewService(repo repository.StylistRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) CreateStylist(ctx context.Context, req *model.StylistRequest) (*model.Stylist, error) {
	st := &model.Stylist{Name: req.Name, Specialty: req.Specialty}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, service.FromRepository(resource, err)
	}
	s.logger.Info("stylist created", "stylist_id", st.ID)
	return st, nil
}

func (s *Service) GetStylist(ctx context.Context, id int64) (*model.Stylist, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return st, nil
}

func (s *Service) ListStylists(ctx context.Context) ([]*model.Stylist, error) {
	stylists, err := s.repo.List(ctx)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return stylists, nil
}

func (s *Service) UpdateStylist(ctx context.Context, id int64, req *model.StylistRequest) error {
	st := &model.Stylist{ID: id, Name: req.Name, Specialty: req.Specialty}
	return service.FromRepository(resource, s.repo.Update(ctx, st))
}

func (s *Service) DeleteStylist(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return service.FromRepository(resource, err)
	}
	s.logger.Info("stylist deleted", "stylist_id", id)
	return nil
}
