package referring

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/batching"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/utils"
)

type ReferralService interface {
	AssignReferral(ctx context.Context, auth domain.AuthContext, request domain.AssignReferralRequest) error
	CreateCommissioner(ctx context.Context, auth domain.AuthContext, request domain.CreateCommissionerRequest) (*domain.Commissioner, error)
	SetCommissionerEnabled(ctx context.Context, auth domain.AuthContext, id string, enabled bool) error
	ListCommissioners(ctx context.Context, auth domain.AuthContext, companyID string) ([]*domain.Commissioner, error)
	ListRewards(ctx context.Context, auth domain.AuthContext, filter domain.RewardFilter) ([]*domain.SaleReward, error)
}

type Service struct {
	commissionerRepository repository.CommissionerRepository
	serviceSaleRepository  repository.ServiceSaleRepository
	rewardRepository       repository.RewardRepository
	calculator             *pricing.Calculator
}

func NewService(
	commissionerRepository repository.CommissionerRepository,
	serviceSaleRepository repository.ServiceSaleRepository,
	rewardRepository repository.RewardRepository,
	calculator *pricing.Calculator,
) ReferralService {
	return &Service{
		commissionerRepository: commissionerRepository,
		serviceSaleRepository:  serviceSaleRepository,
		rewardRepository:       rewardRepository,
		calculator:             calculator,
	}
}

// AssignReferral atribui o comissionado às linhas informadas, sobrescrevendo
// apenas elas. Linhas de vendas diferentes são aceitas desde que todas sejam da
// empresa do comissionado.
func (s *Service) AssignReferral(ctx context.Context, auth domain.AuthContext, request domain.AssignReferralRequest) error {
	if err := auth.Require(domain.RoleAdmin, domain.RoleManager); err != nil {
		return err
	}
	ids := batching.Dedupe(request.ServiceSaleIDs)
	if len(ids) == 0 {
		return domain.NewError(domain.ErrValidation, apiErrors.ErrEmptySelection, "selecione ao menos um serviço para indicar")
	}
	if strings.TrimSpace(request.CommissionerID) == "" {
		return domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "comissionado é obrigatório")
	}

	commissioner, err := s.loadCommissioner(ctx, auth, request.CommissionerID)
	if err != nil {
		return err
	}
	if !commissioner.Enabled {
		return domain.NewErrorWithID(domain.ErrConflict, apiErrors.ErrCommissionerDisabled, commissioner.ID, "comissionado desabilitado")
	}

	lines, err := s.serviceSaleRepository.GetByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar linhas de serviço")
		return databaseError("falha ao buscar linhas de serviço")
	}
	found := make(map[string]*domain.ServiceSale, len(lines))
	for _, line := range lines {
		found[line.ID] = line
	}
	for _, id := range ids {
		line, ok := found[id]
		if !ok {
			return domain.NewErrorWithID(domain.ErrNotFound, apiErrors.ErrServiceSaleNotFound, id, "linha de serviço não encontrada")
		}
		if line.CompanyID != commissioner.CompanyID {
			return domain.NewErrorWithID(domain.ErrConflict, apiErrors.ErrCrossCompany, id,
				fmt.Sprintf("linha de serviço de outra empresa que a do comissionado %s", commissioner.Name))
		}
	}

	if err := s.serviceSaleRepository.AssignCommissioner(ctx, commissioner.ID, ids); err != nil {
		logrus.WithError(err).WithField("commissioner_id", commissioner.ID).Error("Erro ao atribuir comissionado")
		return databaseError("falha ao atribuir comissionado")
	}

	logrus.WithFields(logrus.Fields{
		"commissioner_id": commissioner.ID,
		"lines":           len(ids),
	}).Info("Indicação registrada")

	return nil
}

func (s *Service) CreateCommissioner(ctx context.Context, auth domain.AuthContext, request domain.CreateCommissionerRequest) (*domain.Commissioner, error) {
	if err := auth.Require(domain.RoleAdmin, domain.RoleManager); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "nome é obrigatório")
	}

	companyID := strings.TrimSpace(request.CompanyID)
	if auth.Role == domain.RoleManager {
		companyID = auth.CompanyID
	}
	if companyID == "" {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "empresa é obrigatória")
	}

	pixKey, err := domain.NewPixKey(request.PixKeyType, request.PixKey)
	if err != nil {
		return nil, err
	}

	commissioner := &domain.Commissioner{
		ID:        utils.NewUUID(),
		CompanyID: companyID,
		Name:      name,
		Enabled:   true,
		PixKey:    pixKey,
	}

	if err := s.commissionerRepository.Create(ctx, commissioner); err != nil {
		logrus.WithError(err).Error("Erro ao gravar comissionado")
		return nil, databaseError("falha ao gravar comissionado")
	}

	return commissioner, nil
}

func (s *Service) SetCommissionerEnabled(ctx context.Context, auth domain.AuthContext, id string, enabled bool) error {
	if err := auth.Require(domain.RoleAdmin, domain.RoleManager); err != nil {
		return err
	}
	if _, err := s.loadCommissioner(ctx, auth, id); err != nil {
		return err
	}

	if err := s.commissionerRepository.SetEnabled(ctx, id, enabled); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return commissionerNotFound(id)
		}
		logrus.WithError(err).WithField("commissioner_id", id).Error("Erro ao atualizar comissionado")
		return databaseError("falha ao atualizar comissionado")
	}
	return nil
}

func (s *Service) ListCommissioners(ctx context.Context, auth domain.AuthContext, companyID string) ([]*domain.Commissioner, error) {
	if !auth.IsAdmin() {
		companyID = auth.CompanyID
	}

	commissioners, err := s.commissionerRepository.List(ctx, companyID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar comissionados")
		return nil, databaseError("falha ao listar comissionados")
	}
	return commissioners, nil
}

// ListRewards devolve uma entrada por venda com ao menos uma linha indicada,
// independente do status comercial
func (s *Service) ListRewards(ctx context.Context, auth domain.AuthContext, filter domain.RewardFilter) ([]*domain.SaleReward, error) {
	if err := auth.Require(domain.RoleAdmin, domain.RoleManager); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrInvalidFormat, "data inicial maior que a final")
	}
	if auth.Role == domain.RoleManager {
		filter.CompanyID = auth.CompanyID
	}

	return CollectRewards(ctx, s.rewardRepository, s.calculator, filter)
}

// CollectRewards calcula as premiações do período; usado também pelo fechamento mensal
func CollectRewards(ctx context.Context, rewardRepository repository.RewardRepository, calculator *pricing.Calculator, filter domain.RewardFilter) ([]*domain.SaleReward, error) {
	sales, err := rewardRepository.ListReferredSales(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar vendas indicadas")
		return nil, databaseError("falha ao listar premiações")
	}

	rewards := make([]*domain.SaleReward, 0, len(sales))
	for _, sale := range sales {
		if reward := calculator.SaleReward(sale); reward != nil {
			rewards = append(rewards, reward)
		}
	}
	return rewards, nil
}

func (s *Service) loadCommissioner(ctx context.Context, auth domain.AuthContext, id string) (*domain.Commissioner, error) {
	commissioner, err := s.commissionerRepository.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("commissioner_id", id).Error("Erro ao buscar comissionado")
		return nil, databaseError("falha ao buscar comissionado")
	}
	if commissioner == nil {
		return nil, commissionerNotFound(id)
	}
	if !auth.CanAccessCompany(commissioner.CompanyID) {
		return nil, domain.OutOfScope(id)
	}
	return commissioner, nil
}

func commissionerNotFound(id string) *domain.Error {
	return domain.NewErrorWithID(domain.ErrNotFound, apiErrors.ErrCommissionerNotFound, id, "comissionado não encontrado")
}

func databaseError(details string) *domain.Error {
	return domain.NewError(domain.ErrUpstream, apiErrors.ErrDatabaseOperation, details)
}
