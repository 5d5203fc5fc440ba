package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/dealership-sales-api/infrastructure/integrator/reports"
	"github.com/vfg2006/dealership-sales-api/infrastructure/integrator/reports/reportclient"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository/memory"
	"github.com/vfg2006/dealership-sales-api/internal/api"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/scheduler"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/batching"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/filtering"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/lifecycle"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/referring"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/selling"
	"github.com/vfg2006/dealership-sales-api/pkg/log"
)

type repositories struct {
	sales         repository.SaleRepository
	serviceSales  repository.ServiceSaleRepository
	catalog       repository.CatalogRepository
	commissioners repository.CommissionerRepository
	rewards       repository.RewardRepository
	close         func()
}

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos := newRepositories(ctx, cfg)
	defer repos.close()

	saleMachine, err := lifecycle.NewSaleStatusMachine(cfg.Lifecycle.SaleTransitions)
	if err != nil {
		logrus.WithError(err).Fatal("Transições de status inválidas")
	}

	calculator := pricing.NewCalculator()
	budgetService := pricing.NewService(repos.catalog, calculator)

	exporter := reports.New(reportclient.NewClient(cfg.Reports))

	productionMachine := lifecycle.NewProductionStatusMachine()
	productionMachine.OnProductionUpdated(func(ctx context.Context, serviceSaleIDs []string, status domain.ProductionStatus) {
		log.ForContext(ctx).WithFields(log.Fields{
			"service_sales": len(serviceSaleIDs),
			"status":        status,
		}).Info("Status de produção atualizado")
	})

	saleService := selling.NewService(
		repos.sales,
		repos.serviceSales,
		repos.catalog,
		budgetService,
		calculator,
		saleMachine,
		productionMachine,
		batching.NewExecutor(cfg.Batch.MaxConcurrency),
		filtering.NewPaginator(cfg.Pagination.PageSize, cfg.Pagination.MaxPageSize),
		exporter,
	)

	referralService := referring.NewService(repos.commissioners, repos.serviceSales, repos.rewards, calculator)

	authenticator := authenticating.NewService(cfg.Auth)

	rewardsClosingService := scheduler.NewRewardsClosingService(repos.rewards, calculator, cfg)
	if err := rewardsClosingService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de fechamento de premiações")
	} else {
		logrus.Info("Agendador de fechamento de premiações iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:  authenticator,
		Sales:          saleService,
		Budgets:        budgetService,
		Referrals:      referralService,
		RewardsClosing: rewardsClosingService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource permite achar o .env ao rodar com go run de qualquer pasta
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Warn("Não foi possível mudar para o diretório do binário")
	}
}

func newRepositories(ctx context.Context, cfg *config.Config) repositories {
	if cfg.Database.Driver == config.DriverMemory {
		logrus.Warn("Usando armazenamento em memória: os dados não sobrevivem ao reinício")
		store := memory.NewStore()
		seedMemoryStore(store)
		return repositories{
			sales:         store,
			serviceSales:  store,
			catalog:       store,
			commissioners: store,
			rewards:       store,
			close:         func() {},
		}
	}

	conn := pgconn(ctx, cfg.Database)
	return repositories{
		sales:         repository.NewSaleRepository(conn),
		serviceSales:  repository.NewServiceSaleRepository(conn),
		catalog:       repository.NewCatalogRepository(conn),
		commissioners: repository.NewCommissionerRepository(conn),
		rewards:       repository.NewRewardRepository(conn),
		close: func() {
			if err := conn.Close(); err != nil {
				logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
			}
		},
	}
}

// seedMemoryStore carrega um catálogo mínimo para uso local
func seedMemoryStore(store *memory.Store) {
	money := func(value string) *decimal.Decimal {
		d := decimal.RequireFromString(value)
		return &d
	}

	store.AddCompany(domain.Company{ID: "demo-company", Code: "DEMO", Name: "Concessionária Demo"})
	store.AddUnit(domain.Unit{ID: "demo-unit", CompanyID: "demo-company", Code: "U01", Name: "Matriz"})
	store.AddService(domain.Service{
		ID:           "demo-polish",
		CompanyID:    "demo-company",
		Name:         "Polimento",
		ListPrice:    decimal.RequireFromString("180.00"),
		CostPrice:    money("100.00"),
		CompanyPrice: money("150.00"),
	})
	store.AddService(domain.Service{
		ID:           "demo-film",
		CompanyID:    "demo-company",
		Name:         "Película",
		ListPrice:    decimal.RequireFromString("120.00"),
		CostPrice:    money("50.00"),
		CompanyPrice: money("80.00"),
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
