// Package catalog manages the salon's priced services.
package catalog

import (
	"context"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service"
	"github.com/jwalitptl/salon-api/pkg/logger"
)

const resource = "service"

type Service struct {
	repo   repository.ServiceRepository
	logger *logger.Logger
}

func NewService(repo repository.ServiceRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) CreateService(ctx context.Context, req *model.ServiceRequest) (*model.Service, error) {
	sv := &model.Service{Name: req.Name, Price: req.Price.Round(2)}
	if err := s.repo.Create(ctx, sv); err != nil {
		return nil, service.FromRepository(resource, err)
	}
	s.logger.Info("service created", "service_id", sv.ID)
	return sv, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*model.Service, error) {
	sv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return sv, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return services, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req *model.ServiceRequest) error {
	sv := &model.Service{ID: id, Name: req.Name, Price: req.Price.Round(2)}
	return service.FromRepository(resource, s.repo.Update(ctx, sv))
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return service.FromRepository(resource, err)
	}
	s.logger.Info("service deleted", "service_id", id)
	return nil
}
