package lifecycle

import (
	"context"
	"sync"

	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

// ProductionListener é avisado depois que linhas de serviço mudam de status de produção
type ProductionListener func(ctx context.Context, serviceSaleIDs []string, status domain.ProductionStatus)

// ProductionStatusMachine aceita qualquer transição entre status de produção,
// independente do status comercial da venda.
type ProductionStatusMachine struct {
	mu        sync.RWMutex
	listeners []ProductionListener
}

func NewProductionStatusMachine() *ProductionStatusMachine {
	return &ProductionStatusMachine{}
}

func (m *ProductionStatusMachine) Transition(_ domain.ProductionStatus, target domain.ProductionStatus) error {
	if !target.IsValid() {
		_, err := domain.ParseProductionStatus(string(target))
		return err
	}
	return nil
}

// OnProductionUpdated registra um listener de atualização
func (m *ProductionStatusMachine) OnProductionUpdated(listener ProductionListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// Notify dispara os listeners na ordem de registro
func (m *ProductionStatusMachine) Notify(ctx context.Context, serviceSaleIDs []string, status domain.ProductionStatus) {
	m.mu.RLock()
	listeners := append([]ProductionListener(nil), m.listeners...)
	m.mu.RUnlock()

	for _, listener := range listeners {
		listener(ctx, serviceSaleIDs, status)
	}
}
