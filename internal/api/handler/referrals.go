package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/referring"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

type setEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// rewardListResponse traz o total geral do período formatado em reais
type rewardListResponse struct {
	Items []*domain.SaleReward `json:"items"`
	Total string               `json:"total"`
}

func AssignReferral(service referring.ReferralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.AssignReferralRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := service.AssignReferral(r.Context(), auth, req); err != nil {
			writeDomainError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListCommissioners(service referring.ReferralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		commissioners, err := service.ListCommissioners(r.Context(), auth, r.URL.Query().Get("company_id"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		response := make([]*domain.CommissionerResponse, 0, len(commissioners))
		for _, commissioner := range commissioners {
			response = append(response, commissioner.Response())
		}
		writeJSON(w, http.StatusOK, response)
	}
}

func CreateCommissioner(service referring.ReferralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.CreateCommissionerRequest
		if !decodeBody(w, r, &req) {
			return
		}

		commissioner, err := service.CreateCommissioner(r.Context(), auth, req)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, commissioner.Response())
	}
}

func SetCommissionerEnabled(service referring.ReferralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req setEnabledRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Enabled == nil {
			writeDomainError(w, r, domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "enabled é obrigatório"))
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.SetCommissionerEnabled(r.Context(), auth, id, *req.Enabled); err != nil {
			writeDomainError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListRewards aceita start_date, end_date e company_id na query
func ListRewards(service referring.ReferralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		start, err := parseOptionalDate("start_date", query.Get("start_date"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		end, err := parseOptionalDate("end_date", query.Get("end_date"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		rewards, err := service.ListRewards(r.Context(), auth, domain.RewardFilter{
			StartDate: start,
			EndDate:   end,
			CompanyID: query.Get("company_id"),
		})
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		total := decimal.Zero
		for _, reward := range rewards {
			total = total.Add(reward.Total)
		}
		writeJSON(w, http.StatusOK, rewardListResponse{Items: rewards, Total: total.StringFixed(2)})
	}
}
