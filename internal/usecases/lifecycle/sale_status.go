package lifecycle

import (
	"fmt"
	"strings"

	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

type edge struct {
	from domain.SaleStatus
	to   domain.SaleStatus
}

// SaleStatusMachine valida transições do status comercial de uma venda
type SaleStatusMachine struct {
	edges map[edge]bool
}

// DefaultSaleTransitions é a malha completa: todo status não terminal pode ir para qualquer outro
func DefaultSaleTransitions() []string {
	transitions := make([]string, 0)
	for _, from := range domain.SaleStatuses() {
		if from.IsTerminal() {
			continue
		}
		for _, to := range domain.SaleStatuses() {
			if from != to {
				transitions = append(transitions, fmt.Sprintf("%s>%s", from, to))
			}
		}
	}
	return transitions
}

// NewSaleStatusMachine monta a máquina a partir de arestas ORIGEM>DESTINO.
// Lista vazia usa DefaultSaleTransitions.
func NewSaleStatusMachine(transitions []string) (*SaleStatusMachine, error) {
	if len(transitions) == 0 {
		transitions = DefaultSaleTransitions()
	}

	machine := &SaleStatusMachine{edges: make(map[edge]bool)}
	for _, raw := range transitions {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		parts := strings.Split(raw, ">")
		if len(parts) != 2 {
			return nil, fmt.Errorf("transição mal formada: %q", raw)
		}

		from, err := domain.ParseSaleStatus(parts[0])
		if err != nil {
			return nil, fmt.Errorf("transição %q: %w", raw, err)
		}
		to, err := domain.ParseSaleStatus(parts[1])
		if err != nil {
			return nil, fmt.Errorf("transição %q: %w", raw, err)
		}
		if from == to {
			return nil, fmt.Errorf("transição %q: origem igual ao destino", raw)
		}
		if from.IsTerminal() {
			return nil, fmt.Errorf("transição %q: %s é terminal", raw, from)
		}

		machine.edges[edge{from: from, to: to}] = true
	}

	return machine, nil
}

// Transition decide se current pode ir para target. Não altera nada.
func (m *SaleStatusMachine) Transition(current, target domain.SaleStatus) error {
	if current == target {
		return domain.NewError(domain.ErrConflict, apiErrors.ErrSameStatus, fmt.Sprintf("status já é %s", target))
	}
	if current.IsTerminal() {
		return domain.NewError(domain.ErrConflict, apiErrors.ErrTerminalStatus, fmt.Sprintf("venda em status terminal %s", current))
	}
	if !m.edges[edge{from: current, to: target}] {
		return domain.NewError(domain.ErrConflict, apiErrors.ErrTransitionNotAllowed, fmt.Sprintf("transição de %s para %s não permitida", current, target))
	}
	return nil
}

// Allowed lista os destinos possíveis a partir de current
func (m *SaleStatusMachine) Allowed(current domain.SaleStatus) []domain.SaleStatus {
	targets := make([]domain.SaleStatus, 0)
	for _, to := range domain.SaleStatuses() {
		if m.edges[edge{from: current, to: to}] {
			targets = append(targets, to)
		}
	}
	return targets
}
