package selling

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	reportmocks "github.com/vfg2006/dealership-sales-api/infrastructure/integrator/reports/mocks"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository/memory"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/batching"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/filtering"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/lifecycle"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/referring"
	"go.uber.org/mock/gomock"
)

type scenario struct {
	store     *memory.Store
	sales     SaleService
	referrals referring.ReferralService
}

func newScenario(t *testing.T) *scenario {
	store := memory.NewStore()
	store.AddCompany(domain.Company{ID: "c1", Code: "ACME", Name: "Acme Veículos"})
	store.AddUnit(domain.Unit{ID: "un1", CompanyID: "c1", Code: "U01", Name: "Matriz"})
	store.AddService(domain.Service{ID: "svc-1", CompanyID: "c1", Name: "Polimento", CostPrice: price("100.00"), CompanyPrice: price("150.00")})
	store.AddService(domain.Service{ID: "svc-2", CompanyID: "c1", Name: "Película", CostPrice: price("50.00"), CompanyPrice: price("80.00")})

	machine, err := lifecycle.NewSaleStatusMachine(nil)
	require.NoError(t, err)

	calculator := pricing.NewCalculator()
	return &scenario{
		store: store,
		sales: NewService(
			store, store, store,
			pricing.NewService(store, calculator),
			calculator,
			machine,
			lifecycle.NewProductionStatusMachine(),
			batching.NewExecutor(4),
			filtering.NewPaginator(20, 100),
			reportmocks.NewMockExporter(gomock.NewController(t)),
		),
		referrals: referring.NewService(store, store, store, calculator),
	}
}

func (s *scenario) createSale(t *testing.T, serviceIDs ...string) (*domain.CreateSaleResponse, *domain.Sale) {
	t.Helper()
	requestDate := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	response, err := s.sales.CreateSale(context.Background(), admin, domain.NewSaleInput{
		UnitID:      "un1",
		ServiceIDs:  serviceIDs,
		RequestDate: &requestDate,
		Vehicle:     domain.Vehicle{Brand: "VW", Model: "Gol", Plate: "abc1d23"},
	})
	require.NoError(t, err)

	sale, err := s.sales.GetSale(context.Background(), admin, response.SaleID)
	require.NoError(t, err)
	return response, sale
}

func listedIDs(t *testing.T, s *scenario) []string {
	t.Helper()
	result, err := s.sales.ListSales(context.Background(), admin, domain.SaleFilters{}, 0, 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Items))
	for _, sale := range result.Items {
		ids = append(ids, sale.ID)
	}
	return ids
}

func TestScenario_OrcamentoEPremiacao(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	response, sale := s.createSale(t, "svc-1", "svc-2")
	require.NotNil(t, response.CostBudget)
	assert.True(t, decimal.NewFromInt(150).Equal(*response.CostBudget))
	assert.True(t, decimal.NewFromInt(230).Equal(response.CompanyBudget))

	commissioner, err := s.referrals.CreateCommissioner(ctx, admin, domain.CreateCommissionerRequest{
		CompanyID:  "c1",
		Name:       "Carlos",
		PixKeyType: domain.PixKeyEmail,
		PixKey:     "carlos@example.com",
	})
	require.NoError(t, err)

	require.Len(t, sale.ServiceSales, 2)
	first, second := sale.ServiceSales[0], sale.ServiceSales[1]
	assert.Equal(t, "svc-1", first.ServiceID)

	err = s.referrals.AssignReferral(ctx, manager, domain.AssignReferralRequest{
		CommissionerID: commissioner.ID,
		ServiceSaleIDs: []string{first.ID},
	})
	require.NoError(t, err)

	rewards, err := s.referrals.ListRewards(ctx, admin, domain.RewardFilter{})
	require.NoError(t, err)
	require.Len(t, rewards, 1)

	reward := rewards[0]
	assert.Equal(t, sale.ID, reward.SaleID)
	require.Len(t, reward.Lines, 1)
	assert.Equal(t, first.ID, reward.Lines[0].ServiceSaleID)
	assert.True(t, decimal.NewFromInt(50).Equal(reward.ByCommissioner[commissioner.ID]))
	assert.True(t, decimal.NewFromInt(50).Equal(reward.Total))

	updated, err := s.sales.GetSale(ctx, admin, sale.ID)
	require.NoError(t, err)
	for _, line := range updated.ServiceSales {
		if line.ID == second.ID {
			assert.Nil(t, line.CommissionerID)
			assert.True(t, line.Commission().IsZero())
		}
	}
}

func TestScenario_LinhasNaOrdemDosServicosEscolhidos(t *testing.T) {
	s := newScenario(t)
	s.store.AddService(domain.Service{ID: "svc-3", CompanyID: "c1", Name: "Higienização", CostPrice: price("40.00"), CompanyPrice: price("65.00")})

	selections := [][]string{
		{"svc-1", "svc-2", "svc-3"},
		{"svc-3", "svc-1", "svc-2"},
		{"svc-2", "svc-3", "svc-1"},
	}

	for round := 0; round < 10; round++ {
		for _, serviceIDs := range selections {
			_, sale := s.createSale(t, serviceIDs...)

			require.Len(t, sale.ServiceSales, len(serviceIDs))
			for i, line := range sale.ServiceSales {
				assert.Equal(t, serviceIDs[i], line.ServiceID, "linha %d da venda %s", i, sale.ID)
				assert.Equal(t, i, line.Position)
			}
		}
	}
}

func TestScenario_TransicoesDeStatus(t *testing.T) {
	for _, from := range domain.SaleStatuses() {
		if from.IsTerminal() {
			continue
		}
		for _, to := range domain.SaleStatuses() {
			if from == to {
				continue
			}
			t.Run(string(from)+"_para_"+string(to), func(t *testing.T) {
				s := newScenario(t)
				ctx := context.Background()
				_, sale := s.createSale(t, "svc-1")

				if from != domain.SaleStatusPending {
					_, err := s.sales.UpdateSaleStatus(ctx, admin, domain.UpdateSaleStatusRequest{SaleIDs: []string{sale.ID}, Status: string(from)})
					require.NoError(t, err)
				}

				response, err := s.sales.UpdateSaleStatus(ctx, manager, domain.UpdateSaleStatusRequest{SaleIDs: []string{sale.ID}, Status: string(to)})
				require.NoError(t, err)
				assert.Equal(t, []string{sale.ID}, response.Succeeded)
				assert.Empty(t, response.Failures)

				got, err := s.sales.GetSale(ctx, admin, sale.ID)
				require.NoError(t, err)
				assert.Equal(t, to, got.Status)
				if to == domain.SaleStatusFinished {
					assert.NotNil(t, got.FinishedAt)
				}
			})
		}
	}
}

func TestScenario_VendaTerminalFalhaNoLote(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	_, open := s.createSale(t, "svc-1")
	_, closed := s.createSale(t, "svc-2")

	_, err := s.sales.UpdateSaleStatus(ctx, admin, domain.UpdateSaleStatusRequest{SaleIDs: []string{closed.ID}, Status: "CANCELED"})
	require.NoError(t, err)

	response, err := s.sales.UpdateSaleStatus(ctx, admin, domain.UpdateSaleStatusRequest{
		SaleIDs: []string{open.ID, closed.ID},
		Status:  "CONFIRMED",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{open.ID}, response.Succeeded)
	require.Len(t, response.Failures, 1)
	assert.Equal(t, closed.ID, response.Failures[0].ID)

	got, err := s.sales.GetSale(ctx, admin, closed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusCanceled, got.Status)
}

func TestScenario_RemocaoParcial(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	_, sale1 := s.createSale(t, "svc-1")
	_, sale2 := s.createSale(t, "svc-1")
	_, sale3 := s.createSale(t, "svc-2")

	// Linha já fechada em premiação impede a remoção da venda
	require.NoError(t, s.store.SavePayouts(ctx, []*domain.CommissionerPayout{{
		CommissionerID: "cm-1",
		CompanyID:      "c1",
		Month:          "02-2024",
		ServiceSaleIDs: []string{sale2.ServiceSales[0].ID},
	}}))

	response, err := s.sales.DeleteSales(ctx, admin, domain.DeleteSalesRequest{SaleIDs: []string{sale1.ID, sale2.ID, sale3.ID}})
	require.NoError(t, err)

	assert.Equal(t, []string{sale1.ID, sale3.ID}, response.Succeeded)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, sale2.ID, response.Errors[0].ID)

	assert.Equal(t, []string{sale2.ID}, listedIDs(t, s))
}

func TestScenario_LimparFiltros(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	s.createSale(t, "svc-1")
	s.createSale(t, "svc-2")
	s.createSale(t, "svc-1", "svc-2")

	ids := func(result *domain.PageResult[*domain.Sale]) []string {
		out := make([]string, 0, len(result.Items))
		for _, sale := range result.Items {
			out = append(out, sale.ID)
		}
		return out
	}

	before, err := s.sales.ListSales(ctx, admin, domain.SaleFilters{}, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 2, before.TotalPages)

	filtered, err := s.sales.SearchSales(ctx, admin, domain.SaleFilters{Status: "CONFIRMED", FiltersKey: before.FiltersKey}, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, filtered.Items)
	assert.Equal(t, 0, filtered.Page)
	assert.Equal(t, 0, filtered.TotalPages)

	after, err := s.sales.ListSales(ctx, admin, domain.SaleFilters{}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, ids(before), ids(after))
	assert.Equal(t, before.TotalPages, after.TotalPages)
	assert.Equal(t, before.TotalItems, after.TotalItems)
	assert.Equal(t, before.FiltersKey, after.FiltersKey)
}

func TestScenario_StatusDeProducaoIndependente(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	_, sale := s.createSale(t, "svc-1", "svc-2")
	_, err := s.sales.UpdateSaleStatus(ctx, admin, domain.UpdateSaleStatusRequest{SaleIDs: []string{sale.ID}, Status: "FINISHED"})
	require.NoError(t, err)

	err = s.sales.UpdateProductionStatus(ctx, admin, domain.UpdateProductionStatusRequest{
		ServiceSaleIDs: []string{sale.ServiceSales[0].ID},
		Status:         "PENDING",
	})
	require.NoError(t, err)

	got, err := s.sales.GetSale(ctx, admin, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusFinished, got.Status)
	assert.Equal(t, domain.ProductionStatusPending, got.ServiceSales[0].ProductionStatus)
	assert.Equal(t, domain.ProductionStatusToDo, got.ServiceSales[1].ProductionStatus)

	result, err := s.sales.SearchSales(ctx, admin, domain.SaleFilters{ProductionStatus: "pending"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, sale.ID, result.Items[0].ID)
}
