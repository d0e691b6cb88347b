package customer

import (
	"context"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service"
	"github.com/jwalitptl/salon-api/pkg/logger"
)

const resource = "customer"

type Service struct {
	repo   repository.CustomerRepository
	logger *logger.Logger
}

func NewService(repo repository.CustomerRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) CreateCustomer(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error) {
	c := &model.Customer{FullName: req.FullName, Email: req.Email}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, service.FromRepository(resource, err)
	}
	s.logger.Info("customer created", "customer_id", c.ID)
	return c, nil
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return c, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return customers, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, req *model.CustomerRequest) error {
	c := &model.Customer{ID: id, FullName: req.FullName, Email: req.Email}
	return service.FromRepository(resource, s.repo.Update(ctx, c))
}

// DeleteCustomer fails with a conflict while bookings still reference the customer.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return service.FromRepository(resource, err)
	}
	s.logger.Info("customer deleted", "customer_id", id)
	return nil
}
