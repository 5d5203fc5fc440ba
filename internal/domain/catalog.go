package domain

import "github.com/shopspring/decimal"

// Service é um item do catálogo de serviços de uma empresa
type Service struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	ListPrice decimal.Decimal `json:"list_price"` // Preço nominal de tabela

	// Preços usados nos dois orçamentos. Nil significa não configurado.
	CostPrice    *decimal.Decimal `json:"cost_price"`
	CompanyPrice *decimal.Decimal `json:"company_price"`
}

type Company struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type Unit struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
}

// UnitWithCompany é a unidade já resolvida com a empresa dona
type UnitWithCompany struct {
	Unit
	CompanyCode string `json:"company_code"`
}
