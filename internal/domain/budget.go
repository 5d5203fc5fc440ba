package domain

import "github.com/shopspring/decimal"

type BudgetRequest struct {
	ServiceIDs []string `json:"service_ids"`
}

type CostBudgetResponse struct {
	CostPrice decimal.Decimal `json:"costPrice"`
}

type CompanyBudgetResponse struct {
	CompanyPrice decimal.Decimal `json:"companyPrice"`
}

type AssignReferralRequest struct {
	CommissionerID string   `json:"commissioner_id"`
	ServiceSaleIDs []string `json:"service_sale_ids"`
}
