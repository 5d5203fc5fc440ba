package selling

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/batching"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

// UpdateSaleStatus aplica a mesma transição a cada venda do lote. Falhas por item
// voltam no resultado e não interrompem as demais.
func (s *Service) UpdateSaleStatus(ctx context.Context, auth domain.AuthContext, request domain.UpdateSaleStatusRequest) (*domain.UpdateSaleStatusResponse, error) {
	if err := auth.Require(domain.RoleAdmin, domain.RoleManager); err != nil {
		return nil, err
	}
	if strings.TrimSpace(request.Status) == "" {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "status é obrigatório")
	}
	ids := batching.Dedupe(request.SaleIDs)
	if len(ids) == 0 {
		return nil, emptySelection("selecione ao menos uma venda")
	}
	target, err := domain.ParseSaleStatus(request.Status)
	if err != nil {
		return nil, err
	}

	result := s.executor.Run(ctx, ids, func(ctx context.Context, id string) error {
		sale, err := s.loadSale(ctx, auth, id)
		if err != nil {
			return err
		}
		if err := s.saleMachine.Transition(sale.Status, target); err != nil {
			return err
		}

		finishedAt := sale.FinishedAt
		if target == domain.SaleStatusFinished {
			now := s.now()
			finishedAt = &now
		}

		if err := s.saleRepository.UpdateSaleStatus(ctx, id, target, finishedAt); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return saleNotFound(id)
			}
			logrus.WithError(err).WithField("sale_id", id).Error("Erro ao atualizar status da venda")
			return databaseError("falha ao atualizar status")
		}
		return nil
	})

	logrus.WithFields(logrus.Fields{
		"status":    target,
		"requested": len(ids),
		"failed":    len(result.Failures),
	}).Info("Status de vendas atualizado")

	return &domain.UpdateSaleStatusResponse{
		Status:    target,
		Succeeded: result.Succeeded,
		Failures:  result.Failures,
	}, nil
}

// DeleteSales remove cada venda de forma independente
func (s *Service) DeleteSales(ctx context.Context, auth domain.AuthContext, request domain.DeleteSalesRequest) (*domain.DeleteSalesResponse, error) {
	if err := auth.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	ids := batching.Dedupe(request.SaleIDs)
	if len(ids) == 0 {
		return nil, emptySelection("selecione ao menos uma venda")
	}

	result := s.executor.Run(ctx, ids, func(ctx context.Context, id string) error {
		err := s.saleRepository.DeleteSale(ctx, id)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrNoRowsAffected):
			return saleNotFound(id)
		case errors.Is(err, repository.ErrReferenced):
			return domain.NewErrorWithID(domain.ErrConflict, apiErrors.ErrReferencedRecord, id,
				"venda possui linhas já fechadas em premiação")
		default:
			logrus.WithError(err).WithField("sale_id", id).Error("Erro ao remover venda")
			return databaseError("falha ao remover venda")
		}
	})

	message := fmt.Sprintf("%d venda(s) removida(s)", len(result.Succeeded))
	if result.HasFailures() {
		message = fmt.Sprintf("%d de %d venda(s) removida(s)", len(result.Succeeded), len(ids))
	}

	logrus.WithFields(logrus.Fields{
		"requested": len(ids),
		"failed":    len(result.Failures),
	}).Info("Remoção de vendas concluída")

	return &domain.DeleteSalesResponse{
		Message:   message,
		Succeeded: result.Succeeded,
		Errors:    result.Failures,
	}, nil
}

// UpdateProductionStatus altera as linhas numa só chamada ao banco, sem olhar o status da venda
func (s *Service) UpdateProductionStatus(ctx context.Context, auth domain.AuthContext, request domain.UpdateProductionStatusRequest) error {
	if err := auth.Require(domain.RoleAdmin); err != nil {
		return err
	}
	ids := batching.Dedupe(request.ServiceSaleIDs)
	if len(ids) == 0 {
		return emptySelection("selecione ao menos um serviço")
	}
	status, err := domain.ParseProductionStatus(request.Status)
	if err != nil {
		return err
	}

	lines, err := s.serviceSaleRepository.GetByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar linhas de serviço")
		return databaseError("falha ao buscar linhas de serviço")
	}
	if missing := missingIDs(ids, lines); len(missing) > 0 {
		return domain.NewErrorWithID(domain.ErrNotFound, apiErrors.ErrServiceSaleNotFound, missing[0],
			fmt.Sprintf("linhas de serviço não encontradas: %s", strings.Join(missing, ", ")))
	}

	for _, line := range lines {
		if err := s.productionMachine.Transition(line.ProductionStatus, status); err != nil {
			return err
		}
	}

	if err := s.serviceSaleRepository.UpdateProductionStatus(ctx, ids, status); err != nil {
		logrus.WithError(err).Error("Erro ao atualizar status de produção")
		return databaseError("falha ao atualizar status de produção")
	}

	s.productionMachine.Notify(ctx, ids, status)
	return nil
}

func missingIDs(ids []string, lines []*domain.ServiceSale) []string {
	found := make(map[string]bool, len(lines))
	for _, line := range lines {
		found[line.ID] = true
	}
	missing := make([]string, 0)
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func emptySelection(details string) *domain.Error {
	return domain.NewError(domain.ErrValidation, apiErrors.ErrEmptySelection, details)
}
