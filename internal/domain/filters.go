package domain

import (
	"strings"
	"time"
)

// SaleFilters são os campos esparsos do formulário de filtro, todos opcionais
type SaleFilters struct {
	AvailabilityStart string `json:"availability_start" mapstructure:"availability_start"`
	AvailabilityEnd   string `json:"availability_end" mapstructure:"availability_end"`
	DeliveryStart     string `json:"delivery_start" mapstructure:"delivery_start"`
	DeliveryEnd       string `json:"delivery_end" mapstructure:"delivery_end"`
	FinishedStart     string `json:"finished_start" mapstructure:"finished_start"`
	FinishedEnd       string `json:"finished_end" mapstructure:"finished_end"`
	Status            string `json:"status" mapstructure:"status"`
	ProductionStatus  string `json:"production_status" mapstructure:"production_status"`
	CompanyID         string `json:"company_id" mapstructure:"company_id"`
	UnitID            string `json:"unit_id" mapstructure:"unit_id"`
	SellerID          string `json:"seller_id" mapstructure:"seller_id"`
	Plate             string `json:"plate" mapstructure:"plate"`
	Search            string `json:"search" mapstructure:"search"`

	// Chave devolvida pela consulta anterior; vazia na primeira consulta
	FiltersKey string `json:"filters_key" mapstructure:"filters_key"`
}

// DateRange é um intervalo fechado; qualquer ponta pode estar ausente
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

func (r *DateRange) IsZero() bool {
	return r == nil || (r.From == nil && r.To == nil)
}

// Contains aplica o intervalo a uma data. Datas ausentes nunca casam com um intervalo presente.
func (r *DateRange) Contains(t *time.Time) bool {
	if r.IsZero() {
		return true
	}
	if t == nil {
		return false
	}
	day := truncateDay(*t)
	if r.From != nil && day.Before(truncateDay(*r.From)) {
		return false
	}
	if r.To != nil && day.After(truncateDay(*r.To)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SaleQuery é o filtro normalizado: somente os critérios presentes
type SaleQuery struct {
	Availability     *DateRange        `json:"availability,omitempty"`
	Delivery         *DateRange        `json:"delivery,omitempty"`
	Finished         *DateRange        `json:"finished,omitempty"`
	Status           *SaleStatus       `json:"status,omitempty"`
	ProductionStatus *ProductionStatus `json:"production_status,omitempty"`
	CompanyID        string            `json:"company_id,omitempty"`
	UnitID           string            `json:"unit_id,omitempty"`
	SellerID         string            `json:"seller_id,omitempty"`
	Plate            string            `json:"plate,omitempty"`
	Search           string            `json:"search,omitempty"`
}

func (q SaleQuery) IsEmpty() bool {
	return q.Availability.IsZero() &&
		q.Delivery.IsZero() &&
		q.Finished.IsZero() &&
		q.Status == nil &&
		q.ProductionStatus == nil &&
		q.CompanyID == "" &&
		q.UnitID == "" &&
		q.SellerID == "" &&
		q.Plate == "" &&
		q.Search == ""
}

// Page é a paginação com índice começando em zero
type Page struct {
	Index int `json:"page"`
	Size  int `json:"page_size"`
}

func (p Page) Offset() int {
	return p.Index * p.Size
}

type PageResult[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	FiltersKey string `json:"filters_key,omitempty"`
}

// NewPageResult calcula o total de páginas a partir do total de itens
func NewPageResult[T any](items []T, page Page, totalItems int) PageResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	totalPages := 0
	if page.Size > 0 {
		totalPages = (totalItems + page.Size - 1) / page.Size
	}
	return PageResult[T]{
		Items:      items,
		Page:       page.Index,
		PageSize:   page.Size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Matches avalia o filtro sobre uma venda já carregada
func (q SaleQuery) Matches(sale *Sale) bool {
	if !q.Availability.Contains(sale.AvailabilityDate) ||
		!q.Delivery.Contains(sale.DeliveryDate) ||
		!q.Finished.Contains(sale.FinishedAt) {
		return false
	}
	if q.Status != nil && sale.Status != *q.Status {
		return false
	}
	if q.CompanyID != "" && sale.CompanyID != q.CompanyID {
		return false
	}
	if q.UnitID != "" && sale.UnitID != q.UnitID {
		return false
	}
	if q.SellerID != "" && sale.SellerID != q.SellerID {
		return false
	}
	if q.Plate != "" && !strings.Contains(strings.ToUpper(sale.Vehicle.Plate), strings.ToUpper(q.Plate)) {
		return false
	}
	if q.ProductionStatus != nil {
		found := false
		for _, line := range sale.ServiceSales {
			if line.ProductionStatus == *q.ProductionStatus {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Search != "" {
		return sale.matchesText(q.Search)
	}
	return true
}

func (s *Sale) matchesText(text string) bool {
	text = strings.ToLower(text)
	candidates := []string{s.ClientIdentifier, s.Vehicle.Brand, s.Vehicle.Model, s.Vehicle.Plate}
	if s.Comments != nil {
		candidates = append(candidates, *s.Comments)
	}
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), text) {
			return true
		}
	}
	return false
}
