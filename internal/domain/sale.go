package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Vehicle struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Plate string `json:"plate"` // Placa ou chassi
	Color string `json:"color"`
}

type Sale struct {
	ID                string         `json:"id"`
	ClientIdentifier  string         `json:"client_identifier"` // empresa-unidade-sequência
	Status            SaleStatus     `json:"status"`
	AvailabilityDate  *time.Time     `json:"availability_date"`
	DeliveryDate      *time.Time     `json:"delivery_date"`
	RequestDate       time.Time      `json:"request_date"`
	FinishedAt        *time.Time     `json:"finished_at"`
	Comments          *string        `json:"comments"`
	TechnicalComments *string        `json:"technical_comments"`
	Vehicle           Vehicle        `json:"vehicle"`
	UnitID            string         `json:"unit_id"`
	CompanyID         string         `json:"company_id"`
	SellerID          string         `json:"seller_id"`
	ServiceSales      []*ServiceSale `json:"service_sales"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type ServiceSale struct {
	ID               string           `json:"id"`
	SaleID           string           `json:"sale_id"`
	CompanyID        string           `json:"company_id,omitempty"` // Empresa da venda, preenchida nas leituras
	ServiceID        string           `json:"service_id"`
	ServiceName      string           `json:"service_name"`
	CostValue        decimal.Decimal  `json:"cost_value"`
	CompanyValue     decimal.Decimal  `json:"company_value"`
	CommissionerID   *string          `json:"commissioner_id"`
	ProductionStatus ProductionStatus `json:"production_status"`
	Position         int              `json:"position"` // Ordem em que o serviço foi escolhido na venda
}

// HasCommissioner indica se a linha foi atribuída a um comissionado
func (s *ServiceSale) HasCommissioner() bool {
	return s.CommissionerID != nil && *s.CommissionerID != ""
}

// Commission é a margem da linha: valor empresa menos valor custo, zero sem comissionado
func (s *ServiceSale) Commission() decimal.Decimal {
	if !s.HasCommissioner() {
		return decimal.Zero
	}
	return s.CompanyValue.Sub(s.CostValue)
}

// NewSaleInput são os dados do formulário de cadastro de venda
type NewSaleInput struct {
	UnitID            string     `json:"unit_id"`
	SellerID          string     `json:"seller_id"`
	ServiceIDs        []string   `json:"service_ids"`
	AvailabilityDate  *time.Time `json:"availability_date"`
	DeliveryDate      *time.Time `json:"delivery_date"`
	RequestDate       *time.Time `json:"request_date"`
	Comments          *string    `json:"comments"`
	TechnicalComments *string    `json:"technical_comments"`
	Vehicle           Vehicle    `json:"vehicle"`
}

// UpdateSaleRequest é a edição parcial de campos da venda. Status não é editável por aqui.
type UpdateSaleRequest struct {
	ID                string     `json:"id"`
	AvailabilityDate  *time.Time `json:"availability_date"`
	DeliveryDate      *time.Time `json:"delivery_date"`
	Comments          *string    `json:"comments"`
	TechnicalComments *string    `json:"technical_comments"`
	Vehicle           *Vehicle   `json:"vehicle"`
}

// CreateSaleResponse é o retorno do cadastro de venda
type CreateSaleResponse struct {
	SaleID           string           `json:"sale_id"`
	ClientIdentifier string           `json:"client_identifier"`
	CostBudget       *decimal.Decimal `json:"cost_budget,omitempty"` // Somente para ADMIN
	CompanyBudget    decimal.Decimal  `json:"company_budget"`
}
