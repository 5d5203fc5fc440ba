// Package memory guarda vendas, catálogo e comissionados em memória.
// Usado no modo de desenvolvimento (DATABASE_DRIVER=memory) e nos testes de ponta a ponta.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/filtering"
)

var (
	_ repository.SaleRepository         = (*Store)(nil)
	_ repository.ServiceSaleRepository  = (*Store)(nil)
	_ repository.CatalogRepository      = (*Store)(nil)
	_ repository.CommissionerRepository = (*Store)(nil)
	_ repository.RewardRepository       = (*Store)(nil)
)

type Store struct {
	mu sync.RWMutex

	companies     map[string]domain.Company
	units         map[string]domain.Unit
	services      map[string]domain.Service
	sales         map[string]*domain.Sale
	serviceSales  map[string]*domain.ServiceSale
	commissioners map[string]domain.Commissioner
	payouts       map[string]*domain.CommissionerPayout // commissioner_id|month
	paidLines     map[string]bool
	sequences     map[string]int64
}

func NewStore() *Store {
	return &Store{
		companies:     make(map[string]domain.Company),
		units:         make(map[string]domain.Unit),
		services:      make(map[string]domain.Service),
		sales:         make(map[string]*domain.Sale),
		serviceSales:  make(map[string]*domain.ServiceSale),
		sequences:     make(map[string]int64),
		commissioners: make(map[string]domain.Commissioner),
		payouts:       make(map[string]*domain.CommissionerPayout),
		paidLines:     make(map[string]bool),
	}
}

func (s *Store) AddCompany(company domain.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[company.ID] = company
}

func (s *Store) AddUnit(unit domain.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[unit.ID] = unit
}

func (s *Store) AddService(service domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[service.ID] = service
}

func (s *Store) ListSales(_ context.Context, query domain.SaleQuery, page domain.Page) ([]*domain.Sale, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Sale, 0)
	for _, sale := range s.sales {
		full := s.withLines(sale)
		if query.Matches(full) {
			matched = append(matched, full)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].RequestDate.Equal(matched[j].RequestDate) {
			return matched[i].RequestDate.After(matched[j].RequestDate)
		}
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	return filtering.Slice(matched, page), len(matched), nil
}

func (s *Store) GetSale(_ context.Context, id string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := s.sales[id]
	if !ok {
		return nil, nil
	}
	return s.withLines(sale), nil
}

func (s *Store) NextSequence(_ context.Context, unitID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences[unitID]++
	return s.sequences[unitID], nil
}

func (s *Store) CreateSale(_ context.Context, sale *domain.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sales[sale.ID]; exists {
		return errors.Errorf("venda %s já existe", sale.ID)
	}
	if _, ok := s.units[sale.UnitID]; !ok {
		return errors.Wrapf(repository.ErrReferenced, "unidade %s inexistente", sale.UnitID)
	}
	for _, line := range sale.ServiceSales {
		if _, exists := s.serviceSales[line.ID]; exists {
			return errors.Errorf("linha de serviço %s já existe", line.ID)
		}
	}

	stored := copySale(sale)
	stored.ServiceSales = nil
	s.sales[sale.ID] = stored
	for _, line := range sale.ServiceSales {
		copied := *line
		copied.SaleID = sale.ID
		copied.CompanyID = sale.CompanyID
		s.serviceSales[line.ID] = &copied
	}
	return nil
}

func (s *Store) UpdateSale(_ context.Context, sale *domain.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sales[sale.ID]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	stored.AvailabilityDate = copyTime(sale.AvailabilityDate)
	stored.DeliveryDate = copyTime(sale.DeliveryDate)
	stored.Comments = copyString(sale.Comments)
	stored.TechnicalComments = copyString(sale.TechnicalComments)
	stored.Vehicle = sale.Vehicle
	stored.UpdatedAt = sale.UpdatedAt
	return nil
}

func (s *Store) UpdateSaleStatus(_ context.Context, id string, status domain.SaleStatus, finishedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sales[id]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	stored.Status = status
	if finishedAt != nil {
		stored.FinishedAt = copyTime(finishedAt)
	}
	stored.UpdatedAt = time.Now()
	return nil
}

// DeleteSale remove a venda e suas linhas, recusando linhas já fechadas em premiação
func (s *Store) DeleteSale(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sales[id]; !ok {
		return repository.ErrNoRowsAffected
	}

	lineIDs := make([]string, 0)
	for lineID, line := range s.serviceSales {
		if line.SaleID != id {
			continue
		}
		if s.paidLines[lineID] {
			return errors.Wrapf(repository.ErrReferenced, "linha %s fechada em premiação", lineID)
		}
		lineIDs = append(lineIDs, lineID)
	}

	for _, lineID := range lineIDs {
		delete(s.serviceSales, lineID)
	}
	delete(s.sales, id)
	return nil
}

func (s *Store) GetByIDs(_ context.Context, ids []string) ([]*domain.ServiceSale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]*domain.ServiceSale, 0, len(ids))
	for _, id := range ids {
		if line, ok := s.serviceSales[id]; ok {
			copied := *line
			copied.CommissionerID = copyString(line.CommissionerID)
			lines = append(lines, &copied)
		}
	}
	return lines, nil
}

func (s *Store) UpdateProductionStatus(_ context.Context, ids []string, status domain.ProductionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if line, ok := s.serviceSales[id]; ok {
			line.ProductionStatus = status
		}
	}
	return nil
}

func (s *Store) AssignCommissioner(_ context.Context, commissionerID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.commissioners[commissionerID]; !ok {
		return errors.Wrapf(repository.ErrReferenced, "comissionado %s inexistente", commissionerID)
	}
	for _, id := range ids {
		if line, ok := s.serviceSales[id]; ok {
			assigned := commissionerID
			line.CommissionerID = &assigned
		}
	}
	return nil
}

func (s *Store) GetServicesByIDs(_ context.Context, ids []string) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if service, ok := s.services[id]; ok {
			copied := service
			services = append(services, &copied)
		}
	}
	return services, nil
}

func (s *Store) GetUnit(_ context.Context, unitID string) (*domain.UnitWithCompany, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unit, ok := s.units[unitID]
	if !ok {
		return nil, nil
	}
	return &domain.UnitWithCompany{Unit: unit, CompanyCode: s.companies[unit.CompanyID].Code}, nil
}

func (s *Store) Create(_ context.Context, commissioner *domain.Commissioner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.commissioners[commissioner.ID]; exists {
		return errors.Errorf("comissionado %s já existe", commissioner.ID)
	}
	s.commissioners[commissioner.ID] = *commissioner
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*domain.Commissioner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	commissioner, ok := s.commissioners[id]
	if !ok {
		return nil, nil
	}
	return &commissioner, nil
}

func (s *Store) List(_ context.Context, companyID string) ([]*domain.Commissioner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	commissioners := make([]*domain.Commissioner, 0)
	for _, commissioner := range s.commissioners {
		if companyID != "" && commissioner.CompanyID != companyID {
			continue
		}
		copied := commissioner
		commissioners = append(commissioners, &copied)
	}
	sort.Slice(commissioners, func(i, j int) bool {
		return commissioners[i].Name < commissioners[j].Name
	})
	return commissioners, nil
}

func (s *Store) SetEnabled(_ context.Context, id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	commissioner, ok := s.commissioners[id]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	commissioner.Enabled = enabled
	s.commissioners[id] = commissioner
	return nil
}

func (s *Store) ListReferredSales(_ context.Context, filter domain.RewardFilter) ([]*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	period := domain.DateRange{From: filter.StartDate, To: filter.EndDate}
	sales := make([]*domain.Sale, 0)
	for _, sale := range s.sales {
		if filter.CompanyID != "" && sale.CompanyID != filter.CompanyID {
			continue
		}
		requestDate := sale.RequestDate
		if !period.Contains(&requestDate) {
			continue
		}
		full := s.withLines(sale)
		for _, line := range full.ServiceSales {
			if line.HasCommissioner() {
				sales = append(sales, full)
				break
			}
		}
	}

	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].RequestDate.Equal(sales[j].RequestDate) {
			return sales[i].RequestDate.Before(sales[j].RequestDate)
		}
		return sales[i].ID < sales[j].ID
	})
	return sales, nil
}

func (s *Store) SavePayouts(_ context.Context, payouts []*domain.CommissionerPayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, payout := range payouts {
		copied := *payout
		copied.ServiceSaleIDs = append([]string(nil), payout.ServiceSaleIDs...)
		s.payouts[payout.CommissionerID+"|"+payout.Month] = &copied
		for _, id := range payout.ServiceSaleIDs {
			s.paidLines[id] = true
		}
	}
	return nil
}

// Payouts lista os fechamentos gravados, ordenados por mês e comissionado
func (s *Store) Payouts() []*domain.CommissionerPayout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payouts := make([]*domain.CommissionerPayout, 0, len(s.payouts))
	for _, payout := range s.payouts {
		copied := *payout
		payouts = append(payouts, &copied)
	}
	sort.Slice(payouts, func(i, j int) bool {
		if payouts[i].Month != payouts[j].Month {
			return payouts[i].Month < payouts[j].Month
		}
		return payouts[i].CommissionerID < payouts[j].CommissionerID
	})
	return payouts
}

// withLines copia a venda com suas linhas; exige o lock de leitura
func (s *Store) withLines(sale *domain.Sale) *domain.Sale {
	full := copySale(sale)
	full.ServiceSales = make([]*domain.ServiceSale, 0)
	for _, line := range s.serviceSales {
		if line.SaleID == sale.ID {
			copied := *line
			copied.CommissionerID = copyString(line.CommissionerID)
			full.ServiceSales = append(full.ServiceSales, &copied)
		}
	}
	sort.Slice(full.ServiceSales, func(i, j int) bool {
		return full.ServiceSales[i].Position < full.ServiceSales[j].Position
	})
	return full
}

func copySale(sale *domain.Sale) *domain.Sale {
	copied := *sale
	copied.AvailabilityDate = copyTime(sale.AvailabilityDate)
	copied.DeliveryDate = copyTime(sale.DeliveryDate)
	copied.FinishedAt = copyTime(sale.FinishedAt)
	copied.Comments = copyString(sale.Comments)
	copied.TechnicalComments = copyString(sale.TechnicalComments)
	return &copied
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
