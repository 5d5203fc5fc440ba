package handler

import (
	"net/http"

	"github.com/vfg2006/dealership-sales-api/internal/api/handler/router"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/referring"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/selling"
	"github.com/vfg2006/dealership-sales-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/auth/token",
			Method:      http.MethodPost,
			Handler:     IssueToken(service),
			Middlewares: []router.Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
	}
}

func Sales(service selling.SaleService) []router.Route {
	return []router.Route{
		{
			Path:        "/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/search/sales",
			Method:      http.MethodGet,
			Handler:     SearchSales(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/reports/sales",
			Method:      http.MethodGet,
			Handler:     ExportSales(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/sales/status",
			Method:      http.MethodPost,
			Handler:     UpdateSaleStatus(service),
			Middlewares: []router.Middleware{middleware.AdminOrManager()},
		},
		{
			Path:        "/sales/delete",
			Method:      http.MethodPost,
			Handler:     DeleteSales(service),
			Middlewares: []router.Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/sales/:id",
			Method:      http.MethodGet,
			Handler:     GetSale(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/sales/:id",
			Method:      http.MethodPatch,
			Handler:     UpdateSale(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/service-sales/production-status",
			Method:      http.MethodPost,
			Handler:     UpdateProductionStatus(service),
			Middlewares: []router.Middleware{middleware.AdminOnly()},
		},
	}
}

func Budgets(service pricing.BudgetService) []router.Route {
	return []router.Route{
		{
			Path:        "/budgets/cost",
			Method:      http.MethodPost,
			Handler:     CostBudget(service),
			Middlewares: []router.Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/budgets/company",
			Method:      http.MethodPost,
			Handler:     CompanyBudget(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
	}
}

func Referrals(service referring.ReferralService) []router.Route {
	return []router.Route{
		{
			Path:        "/referrals",
			Method:      http.MethodPost,
			Handler:     AssignReferral(service),
			Middlewares: []router.Middleware{middleware.AdminOrManager()},
		},
		{
			Path:        "/rewards",
			Method:      http.MethodGet,
			Handler:     ListRewards(service),
			Middlewares: []router.Middleware{middleware.AdminOrManager()},
		},
		{
			Path:        "/commissioners",
			Method:      http.MethodGet,
			Handler:     ListCommissioners(service),
			Middlewares: []router.Middleware{middleware.AllRoles()},
		},
		{
			Path:        "/commissioners",
			Method:      http.MethodPost,
			Handler:     CreateCommissioner(service),
			Middlewares: []router.Middleware{middleware.AdminOrManager()},
		},
		{
			Path:        "/commissioners/:id/enabled",
			Method:      http.MethodPut,
			Handler:     SetCommissionerEnabled(service),
			Middlewares: []router.Middleware{middleware.AdminOrManager()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []router.Middleware{middleware.AdminOnly()},
		},
		{
			Path:        "/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []router.Middleware{middleware.AdminOnly()},
		},
	}
}
