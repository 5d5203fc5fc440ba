package domain

import (
	"fmt"
	"strings"

	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

// SaleStatus é o status comercial de uma venda
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
	SaleStatusCanceled  SaleStatus = "CANCELED"
	SaleStatusFinished  SaleStatus = "FINISHED"
)

// SaleStatuses lista os status comerciais na ordem natural do fluxo
func SaleStatuses() []SaleStatus {
	return []SaleStatus{SaleStatusPending, SaleStatusConfirmed, SaleStatusCanceled, SaleStatusFinished}
}

func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusConfirmed, SaleStatusCanceled, SaleStatusFinished:
		return true
	}
	return false
}

// IsTerminal indica que nenhuma transição sai deste status
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusCanceled || s == SaleStatusFinished
}

func ParseSaleStatus(value string) (SaleStatus, error) {
	status := SaleStatus(strings.ToUpper(strings.TrimSpace(value)))
	if status == "" {
		return "", NewError(ErrValidation, apiErrors.ErrMissingRequiredData, "status é obrigatório")
	}
	if !status.IsValid() {
		return "", NewError(ErrValidation, apiErrors.ErrInvalidStatus, fmt.Sprintf("status de venda inválido: %s", value))
	}
	return status, nil
}

// ProductionStatus é o andamento de execução de uma linha de serviço.
// Tipo distinto de SaleStatus mesmo compartilhando o literal PENDING.
type ProductionStatus string

const (
	ProductionStatusToDo       ProductionStatus = "TO_DO"
	ProductionStatusInProgress ProductionStatus = "IN_PROGRESS"
	ProductionStatusDone       ProductionStatus = "DONE"
	ProductionStatusPending    ProductionStatus = "PENDING"
)

func ProductionStatuses() []ProductionStatus {
	return []ProductionStatus{ProductionStatusToDo, ProductionStatusInProgress, ProductionStatusDone, ProductionStatusPending}
}

func (s ProductionStatus) IsValid() bool {
	switch s {
	case ProductionStatusToDo, ProductionStatusInProgress, ProductionStatusDone, ProductionStatusPending:
		return true
	}
	return false
}

func ParseProductionStatus(value string) (ProductionStatus, error) {
	status := ProductionStatus(strings.ToUpper(strings.TrimSpace(value)))
	if status == "" {
		return "", NewError(ErrValidation, apiErrors.ErrMissingRequiredData, "status de produção é obrigatório")
	}
	if !status.IsValid() {
		return "", NewError(ErrValidation, apiErrors.ErrInvalidStatus, fmt.Sprintf("status de produção inválido: %s", value))
	}
	return status, nil
}
