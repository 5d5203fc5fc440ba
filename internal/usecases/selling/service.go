package selling

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/integrator/reports"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/batching"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/filtering"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/lifecycle"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

type SaleService interface {
	ListSales(ctx context.Context, auth domain.AuthContext, filters domain.SaleFilters, pageIndex, pageSize int) (*domain.PageResult[*domain.Sale], error)
	SearchSales(ctx context.Context, auth domain.AuthContext, filters domain.SaleFilters, pageIndex, pageSize int) (*domain.PageResult[*domain.Sale], error)
	GetSale(ctx context.Context, auth domain.AuthContext, id string) (*domain.Sale, error)
	CreateSale(ctx context.Context, auth domain.AuthContext, input domain.NewSaleInput) (*domain.CreateSaleResponse, error)
	UpdateSaleFields(ctx context.Context, auth domain.AuthContext, request domain.UpdateSaleRequest) (*domain.Sale, error)
	UpdateSaleStatus(ctx context.Context, auth domain.AuthContext, request domain.UpdateSaleStatusRequest) (*domain.UpdateSaleStatusResponse, error)
	DeleteSales(ctx context.Context, auth domain.AuthContext, request domain.DeleteSalesRequest) (*domain.DeleteSalesResponse, error)
	UpdateProductionStatus(ctx context.Context, auth domain.AuthContext, request domain.UpdateProductionStatusRequest) error
	ExportSales(ctx context.Context, auth domain.AuthContext, filters domain.SaleFilters) (*domain.ReportHandle, error)
}

type Service struct {
	saleRepository        repository.SaleRepository
	serviceSaleRepository repository.ServiceSaleRepository
	catalogRepository     repository.CatalogRepository
	budgetService         pricing.BudgetService
	calculator            *pricing.Calculator
	saleMachine           *lifecycle.SaleStatusMachine
	productionMachine     *lifecycle.ProductionStatusMachine
	executor              *batching.Executor
	paginator             *filtering.Paginator
	exporter              reports.Exporter
	now                   func() time.Time
}

func NewService(
	saleRepository repository.SaleRepository,
	serviceSaleRepository repository.ServiceSaleRepository,
	catalogRepository repository.CatalogRepository,
	budgetService pricing.BudgetService,
	calculator *pricing.Calculator,
	saleMachine *lifecycle.SaleStatusMachine,
	productionMachine *lifecycle.ProductionStatusMachine,
	executor *batching.Executor,
	paginator *filtering.Paginator,
	exporter reports.Exporter,
) SaleService {
	return &Service{
		saleRepository:        saleRepository,
		serviceSaleRepository: serviceSaleRepository,
		catalogRepository:     catalogRepository,
		budgetService:         budgetService,
		calculator:            calculator,
		saleMachine:           saleMachine,
		productionMachine:     productionMachine,
		executor:              executor,
		paginator:             paginator,
		exporter:              exporter,
		now:                   time.Now,
	}
}

// ListSales aceita filtro vazio: é a listagem padrão e o "limpar filtros"
func (s *Service) ListSales(ctx context.Context, auth domain.AuthContext, filters domain.SaleFilters, pageIndex, pageSize int) (*domain.PageResult[*domain.Sale], error) {
	query, err := filtering.Normalize(filters)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, auth, query, filters.FiltersKey, pageIndex, pageSize)
}

// SearchSales exige ao menos um critério informado pelo usuário
func (s *Service) SearchSales(ctx context.Context, auth domain.AuthContext, filters domain.SaleFilters, pageIndex, pageSize int) (*domain.PageResult[*domain.Sale], error) {
	query, err := filtering.Normalize(filters)
	if err != nil {
		return nil, err
	}
	if query.IsEmpty() {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingCriteria, "informe ao menos um critério de busca")
	}
	return s.list(ctx, auth, query, filters.FiltersKey, pageIndex, pageSize)
}

func (s *Service) list(ctx context.Context, auth domain.AuthContext, query domain.SaleQuery, previousKey string, pageIndex, pageSize int) (*domain.PageResult[*domain.Sale], error) {
	query = filtering.ApplyScope(auth, query)
	if filtering.FiltersChanged(previousKey, query) {
		pageIndex = 0
	}
	page := s.paginator.Paginate(pageIndex, pageSize)

	sales, total, err := s.saleRepository.ListSales(ctx, query, page)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar vendas")
		return nil, databaseError("falha ao listar vendas")
	}

	result := domain.NewPageResult(sales, page, total)
	result.FiltersKey = filtering.Fingerprint(query)
	return &result, nil
}

func (s *Service) GetSale(ctx context.Context, auth domain.AuthContext, id string) (*domain.Sale, error) {
	return s.loadSale(ctx, auth, id)
}

// loadSale busca a venda e aplica o escopo do usuário
func (s *Service) loadSale(ctx context.Context, auth domain.AuthContext, id string) (*domain.Sale, error) {
	sale, err := s.saleRepository.GetSale(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("sale_id", id).Error("Erro ao buscar venda")
		return nil, databaseError("falha ao buscar venda")
	}
	if sale == nil {
		return nil, saleNotFound(id)
	}
	if !auth.CanAccessSale(sale) {
		return nil, domain.OutOfScope(id)
	}
	return sale, nil
}

func (s *Service) ExportSales(ctx context.Context, auth domain.AuthContext, filters domain.SaleFilters) (*domain.ReportHandle, error) {
	query, err := filtering.Normalize(filters)
	if err != nil {
		return nil, err
	}
	query = filtering.ApplyScope(auth, query)

	handle, err := s.exporter.ExportSales(ctx, auth, query)
	if err != nil {
		logrus.WithError(err).Error("Erro ao solicitar relatório de vendas")
		return nil, domain.NewError(domain.ErrUpstream, apiErrors.ErrExternalService, "serviço de relatórios indisponível")
	}
	return handle, nil
}

func saleNotFound(id string) *domain.Error {
	return domain.NewErrorWithID(domain.ErrNotFound, apiErrors.ErrSaleNotFound, id, "venda não encontrada")
}

func databaseError(details string) *domain.Error {
	return domain.NewError(domain.ErrUpstream, apiErrors.ErrDatabaseOperation, details)
}
