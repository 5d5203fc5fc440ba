package handler

import (
	"net/http"

	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
)

// CostBudget soma o preço de custo; só ADMIN
func CostBudget(service pricing.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.BudgetRequest
		if !decodeBody(w, r, &req) {
			return
		}

		total, err := service.ComputeCostBudget(r.Context(), auth, req.ServiceIDs)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, domain.CostBudgetResponse{CostPrice: total})
	}
}

func CompanyBudget(service pricing.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.BudgetRequest
		if !decodeBody(w, r, &req) {
			return
		}

		total, err := service.ComputeCompanyBudget(r.Context(), auth, req.ServiceIDs)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, domain.CompanyBudgetResponse{CompanyPrice: total})
	}
}
