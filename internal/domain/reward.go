package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardLine é a margem de uma linha de serviço atribuída a um comissionado
type RewardLine struct {
	ServiceSaleID  string          `json:"service_sale_id"`
	ServiceName    string          `json:"service_name"`
	CommissionerID string          `json:"commissioner_id"`
	CostValue      decimal.Decimal `json:"cost_value"`
	CompanyValue   decimal.Decimal `json:"company_value"`
	Commission     decimal.Decimal `json:"commission"`
}

// SaleReward é uma venda na listagem de premiações, com as margens por linha
type SaleReward struct {
	SaleID           string                     `json:"sale_id"`
	ClientIdentifier string                     `json:"client_identifier"`
	CompanyID        string                     `json:"company_id"`
	Status           SaleStatus                 `json:"status"`
	RequestDate      time.Time                  `json:"request_date"`
	Lines            []RewardLine               `json:"lines"`
	ByCommissioner   map[string]decimal.Decimal `json:"by_commissioner"`
	Total            decimal.Decimal            `json:"total"`
}

// RewardFilter restringe a listagem de premiações pela data de solicitação
type RewardFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	CompanyID string
}

// CommissionerPayout é o fechamento mensal de um comissionado
type CommissionerPayout struct {
	CommissionerID string          `json:"commissioner_id"`
	CompanyID      string          `json:"company_id"`
	Month          string          `json:"month"` // Formato mm-yyyy (ex: 01-2024)
	SalesCount     int             `json:"sales_count"`
	LinesCount     int             `json:"lines_count"`
	Amount         decimal.Decimal `json:"amount"`
	ClosedAt       time.Time       `json:"closed_at"`
	ServiceSaleIDs []string        `json:"service_sale_ids"`
}

// ReportHandle é o link de download devolvido pelo serviço de relatórios
type ReportHandle struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
