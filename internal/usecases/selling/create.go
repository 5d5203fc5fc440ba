package selling

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/utils"
)

// CreateSale grava a venda PENDING e suas linhas de uma vez, cada linha com os
// próprios valores de custo e empresa tirados do catálogo
func (s *Service) CreateSale(ctx context.Context, auth domain.AuthContext, input domain.NewSaleInput) (*domain.CreateSaleResponse, error) {
	if err := auth.Require(domain.RoleAdmin, domain.RoleManager, domain.RoleSeller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.UnitID) == "" {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "unidade é obrigatória")
	}
	if input.RequestDate == nil {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "data de solicitação é obrigatória")
	}

	unit, err := s.catalogRepository.GetUnit(ctx, input.UnitID)
	if err != nil {
		logrus.WithError(err).WithField("unit_id", input.UnitID).Error("Erro ao buscar unidade")
		return nil, databaseError("falha ao buscar unidade")
	}
	if unit == nil {
		return nil, domain.NewErrorWithID(domain.ErrNotFound, apiErrors.ErrUnitNotFound, input.UnitID, "unidade não encontrada")
	}
	if !auth.CanAccessCompany(unit.CompanyID) || (auth.Role == domain.RoleSeller && auth.UnitID != unit.ID) {
		return nil, domain.OutOfScope(unit.ID)
	}

	services, err := s.budgetService.LoadServices(ctx, input.ServiceIDs)
	if err != nil {
		return nil, err
	}
	for _, service := range services {
		if service.CompanyID != unit.CompanyID {
			return nil, domain.NewErrorWithID(domain.ErrConflict, apiErrors.ErrCrossCompany, service.ID,
				fmt.Sprintf("serviço %q não pertence à empresa da unidade", service.Name))
		}
	}

	// Os dois orçamentos são independentes; nenhum é derivado do outro
	costBudget, err := s.calculator.CostBudget(services)
	if err != nil {
		return nil, err
	}
	companyBudget, err := s.calculator.CompanyBudget(services)
	if err != nil {
		return nil, err
	}

	sequence, err := s.saleRepository.NextSequence(ctx, unit.ID)
	if err != nil {
		logrus.WithError(err).WithField("unit_id", unit.ID).Error("Erro ao reservar sequência da unidade")
		return nil, databaseError("falha ao gerar identificador da venda")
	}

	sale, err := s.buildSale(auth, unit, services, input, sequence)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepository.CreateSale(ctx, sale); err != nil {
		logrus.WithError(err).WithField("unit_id", unit.ID).Error("Erro ao gravar venda")
		return nil, databaseError("falha ao gravar venda")
	}

	logrus.WithFields(logrus.Fields{
		"sale_id":           sale.ID,
		"client_identifier": sale.ClientIdentifier,
		"lines":             len(sale.ServiceSales),
	}).Info("Venda cadastrada")

	response := &domain.CreateSaleResponse{
		SaleID:           sale.ID,
		ClientIdentifier: sale.ClientIdentifier,
		CompanyBudget:    companyBudget,
	}
	if auth.IsAdmin() {
		response.CostBudget = &costBudget
	}
	return response, nil
}

func (s *Service) buildSale(auth domain.AuthContext, unit *domain.UnitWithCompany, services []*domain.Service, input domain.NewSaleInput, sequence int64) (*domain.Sale, error) {
	sellerID := strings.TrimSpace(input.SellerID)
	if sellerID == "" || auth.Role == domain.RoleSeller {
		sellerID = auth.UserID
	}

	now := s.now()
	sale := &domain.Sale{
		ID:                utils.NewUUID(),
		ClientIdentifier:  clientIdentifier(unit, sequence),
		Status:            domain.SaleStatusPending,
		AvailabilityDate:  input.AvailabilityDate,
		DeliveryDate:      input.DeliveryDate,
		RequestDate:       *input.RequestDate,
		Comments:          input.Comments,
		TechnicalComments: input.TechnicalComments,
		Vehicle:           normalizeVehicle(input.Vehicle),
		UnitID:            unit.ID,
		CompanyID:         unit.CompanyID,
		SellerID:          sellerID,
		ServiceSales:      make([]*domain.ServiceSale, 0, len(services)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for position, service := range services {
		lineID, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id da linha: %w", err)
		}
		sale.ServiceSales = append(sale.ServiceSales, &domain.ServiceSale{
			ID:               lineID,
			SaleID:           sale.ID,
			CompanyID:        sale.CompanyID,
			ServiceID:        service.ID,
			ServiceName:      service.Name,
			CostValue:        valueOrZero(service.CostPrice),
			CompanyValue:     valueOrZero(service.CompanyPrice),
			ProductionStatus: domain.ProductionStatusToDo,
			Position:         position,
		})
	}

	return sale, nil
}

// UpdateSaleFields edita datas, observações e veículo. Status só muda pelo fluxo próprio.
func (s *Service) UpdateSaleFields(ctx context.Context, auth domain.AuthContext, request domain.UpdateSaleRequest) (*domain.Sale, error) {
	if strings.TrimSpace(request.ID) == "" {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "id da venda é obrigatório")
	}

	sale, err := s.loadSale(ctx, auth, request.ID)
	if err != nil {
		return nil, err
	}
	if sale.Status.IsTerminal() {
		return nil, domain.NewErrorWithID(domain.ErrConflict, apiErrors.ErrTerminalStatus, sale.ID,
			fmt.Sprintf("venda em status terminal %s não pode ser editada", sale.Status))
	}

	if request.AvailabilityDate != nil {
		sale.AvailabilityDate = request.AvailabilityDate
	}
	if request.DeliveryDate != nil {
		sale.DeliveryDate = request.DeliveryDate
	}
	if request.Comments != nil {
		sale.Comments = request.Comments
	}
	if request.TechnicalComments != nil {
		sale.TechnicalComments = request.TechnicalComments
	}
	if request.Vehicle != nil {
		sale.Vehicle = normalizeVehicle(*request.Vehicle)
	}
	sale.UpdatedAt = s.now()

	if err := s.saleRepository.UpdateSale(ctx, sale); err != nil {
		logrus.WithError(err).WithField("sale_id", sale.ID).Error("Erro ao atualizar venda")
		return nil, databaseError("falha ao atualizar venda")
	}

	return sale, nil
}

// clientIdentifier monta EMPRESA-UNIDADE-000001
func clientIdentifier(unit *domain.UnitWithCompany, sequence int64) string {
	return fmt.Sprintf("%s-%s-%06d", unit.CompanyCode, unit.Code, sequence)
}

func normalizeVehicle(vehicle domain.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		Brand: strings.TrimSpace(vehicle.Brand),
		Model: strings.TrimSpace(vehicle.Model),
		Plate: strings.ToUpper(strings.TrimSpace(vehicle.Plate)),
		Color: strings.TrimSpace(vehicle.Color),
	}
}

func valueOrZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}
