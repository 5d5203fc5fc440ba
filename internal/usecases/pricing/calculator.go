package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/utils"
)

// Calculator faz as contas de orçamento e comissão. Não acessa o banco.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// CostBudget soma o preço de custo dos serviços, que só o operador da rede enxerga
func (c *Calculator) CostBudget(services []*domain.Service) (decimal.Decimal, error) {
	return sumPrices(services, "custo", func(s *domain.Service) *decimal.Decimal { return s.CostPrice })
}

// CompanyBudget soma o preço cobrado da empresa parceira
func (c *Calculator) CompanyBudget(services []*domain.Service) (decimal.Decimal, error) {
	return sumPrices(services, "empresa", func(s *domain.Service) *decimal.Decimal { return s.CompanyPrice })
}

func sumPrices(services []*domain.Service, side string, price func(*domain.Service) *decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, service := range services {
		value := price(service)
		if value == nil {
			return decimal.Zero, domain.NewErrorWithID(domain.ErrValidation, apiErrors.ErrMissingPrice, service.ID,
				fmt.Sprintf("serviço %q sem preço de %s configurado", service.Name, side))
		}
		total = total.Add(*value)
	}
	return utils.RoundMoney(total), nil
}

// Commission é a margem de uma linha com comissionado; linhas sem comissionado rendem zero
func (c *Calculator) Commission(line *domain.ServiceSale) decimal.Decimal {
	return utils.RoundMoney(line.Commission())
}

// SaleReward monta a premiação da venda. Devolve nil quando nenhuma linha foi indicada.
// O status comercial não interfere no cálculo.
func (c *Calculator) SaleReward(sale *domain.Sale) *domain.SaleReward {
	reward := &domain.SaleReward{
		SaleID:           sale.ID,
		ClientIdentifier: sale.ClientIdentifier,
		CompanyID:        sale.CompanyID,
		Status:           sale.Status,
		RequestDate:      sale.RequestDate,
		Lines:            make([]domain.RewardLine, 0),
		ByCommissioner:   make(map[string]decimal.Decimal),
		Total:            decimal.Zero,
	}

	for _, line := range sale.ServiceSales {
		if !line.HasCommissioner() {
			continue
		}
		commission := c.Commission(line)
		reward.Lines = append(reward.Lines, domain.RewardLine{
			ServiceSaleID:  line.ID,
			ServiceName:    line.ServiceName,
			CommissionerID: *line.CommissionerID,
			CostValue:      line.CostValue,
			CompanyValue:   line.CompanyValue,
			Commission:     commission,
		})
		reward.ByCommissioner[*line.CommissionerID] = reward.ByCommissioner[*line.CommissionerID].Add(commission)
		reward.Total = reward.Total.Add(commission)
	}

	if len(reward.Lines) == 0 {
		return nil
	}
	return reward
}

// Payouts agrega premiações por comissionado para o fechamento de um mês
func (c *Calculator) Payouts(rewards []*domain.SaleReward, month string) []*domain.CommissionerPayout {
	byCommissioner := make(map[string]*domain.CommissionerPayout)
	salesSeen := make(map[string]map[string]bool)

	for _, reward := range rewards {
		for _, line := range reward.Lines {
			payout, ok := byCommissioner[line.CommissionerID]
			if !ok {
				payout = &domain.CommissionerPayout{
					CommissionerID: line.CommissionerID,
					CompanyID:      reward.CompanyID,
					Month:          month,
					Amount:         decimal.Zero,
					ServiceSaleIDs: make([]string, 0),
				}
				byCommissioner[line.CommissionerID] = payout
				salesSeen[line.CommissionerID] = make(map[string]bool)
			}
			payout.Amount = payout.Amount.Add(line.Commission)
			payout.LinesCount++
			payout.ServiceSaleIDs = append(payout.ServiceSaleIDs, line.ServiceSaleID)
			if !salesSeen[line.CommissionerID][reward.SaleID] {
				salesSeen[line.CommissionerID][reward.SaleID] = true
				payout.SalesCount++
			}
		}
	}

	payouts := make([]*domain.CommissionerPayout, 0, len(byCommissioner))
	for _, payout := range byCommissioner {
		payouts = append(payouts, payout)
	}
	sort.Slice(payouts, func(i, j int) bool {
		return payouts[i].CommissionerID < payouts[j].CommissionerID
	})
	return payouts
}
