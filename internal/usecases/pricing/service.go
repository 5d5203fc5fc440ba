package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/batching"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

type BudgetService interface {
	ComputeCostBudget(ctx context.Context, auth domain.AuthContext, serviceIDs []string) (decimal.Decimal, error)
	ComputeCompanyBudget(ctx context.Context, auth domain.AuthContext, serviceIDs []string) (decimal.Decimal, error)
	LoadServices(ctx context.Context, serviceIDs []string) ([]*domain.Service, error)
}

type Service struct {
	catalogRepository repository.CatalogRepository
	calculator        *Calculator
}

func NewService(
	catalogRepository repository.CatalogRepository,
	calculator *Calculator,
) BudgetService {
	return &Service{
		catalogRepository: catalogRepository,
		calculator:        calculator,
	}
}

// ComputeCostBudget é restrito ao operador da rede
func (s *Service) ComputeCostBudget(ctx context.Context, auth domain.AuthContext, serviceIDs []string) (decimal.Decimal, error) {
	if err := auth.Require(domain.RoleAdmin); err != nil {
		return decimal.Zero, err
	}

	services, err := s.LoadServices(ctx, serviceIDs)
	if err != nil {
		return decimal.Zero, err
	}

	return s.calculator.CostBudget(services)
}

func (s *Service) ComputeCompanyBudget(ctx context.Context, auth domain.AuthContext, serviceIDs []string) (decimal.Decimal, error) {
	services, err := s.LoadServices(ctx, serviceIDs)
	if err != nil {
		return decimal.Zero, err
	}

	for _, service := range services {
		if !auth.CanAccessCompany(service.CompanyID) {
			return decimal.Zero, domain.OutOfScope(service.ID)
		}
	}

	return s.calculator.CompanyBudget(services)
}

// LoadServices busca os serviços na ordem pedida, falhando se algum não existir
func (s *Service) LoadServices(ctx context.Context, serviceIDs []string) ([]*domain.Service, error) {
	ids := batching.Dedupe(serviceIDs)
	if len(ids) == 0 {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrEmptySelection, "selecione ao menos um serviço")
	}

	services, err := s.catalogRepository.GetServicesByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar serviços do catálogo")
		return nil, domain.NewError(domain.ErrUpstream, apiErrors.ErrDatabaseOperation, "falha ao buscar serviços")
	}

	byID := make(map[string]*domain.Service, len(services))
	for _, service := range services {
		byID[service.ID] = service
	}

	ordered := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		service, ok := byID[id]
		if !ok {
			return nil, domain.NewErrorWithID(domain.ErrNotFound, apiErrors.ErrServiceNotFound, id, fmt.Sprintf("serviço %s não encontrado", id))
		}
		ordered = append(ordered, service)
	}

	return ordered, nil
}
