package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		filters   domain.SaleFilters
		wantEmpty bool
		wantErr   bool
		check     func(t *testing.T, q domain.SaleQuery)
	}{
		{
			name:      "formulário vazio",
			filters:   domain.SaleFilters{},
			wantEmpty: true,
		},
		{
			name:      "somente espaços",
			filters:   domain.SaleFilters{Plate: "  ", Search: " ", Status: " "},
			wantEmpty: true,
		},
		{
			name:    "intervalo de entrega completo",
			filters: domain.SaleFilters{DeliveryStart: "2024-01-01", DeliveryEnd: "2024-01-31"},
			check: func(t *testing.T, q domain.SaleQuery) {
				require.NotNil(t, q.Delivery)
				assert.Equal(t, "2024-01-01", q.Delivery.From.Format("2006-01-02"))
				assert.Equal(t, "2024-01-31", q.Delivery.To.Format("2006-01-02"))
				assert.Nil(t, q.Availability)
			},
		},
		{
			name:    "intervalo aberto no fim",
			filters: domain.SaleFilters{AvailabilityStart: "2024-02-10"},
			check: func(t *testing.T, q domain.SaleQuery) {
				require.NotNil(t, q.Availability)
				assert.NotNil(t, q.Availability.From)
				assert.Nil(t, q.Availability.To)
			},
		},
		{
			name:    "status e placa normalizados",
			filters: domain.SaleFilters{Status: "confirmed", Plate: " abc1d23 ", ProductionStatus: "in_progress"},
			check: func(t *testing.T, q domain.SaleQuery) {
				require.NotNil(t, q.Status)
				assert.Equal(t, domain.SaleStatusConfirmed, *q.Status)
				require.NotNil(t, q.ProductionStatus)
				assert.Equal(t, domain.ProductionStatusInProgress, *q.ProductionStatus)
				assert.Equal(t, "ABC1D23", q.Plate)
			},
		},
		{
			name:    "data inicial maior que final",
			filters: domain.SaleFilters{FinishedStart: "2024-03-10", FinishedEnd: "2024-03-01"},
			wantErr: true,
		},
		{
			name:    "data em formato inválido",
			filters: domain.SaleFilters{DeliveryStart: "10/03/2024"},
			wantErr: true,
		},
		{
			name:    "status inexistente",
			filters: domain.SaleFilters{Status: "SHIPPED"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := Normalize(tt.filters)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmpty, query.IsEmpty())
			if tt.check != nil {
				tt.check(t, query)
			}
		})
	}
}

func TestApplyScope(t *testing.T) {
	query := domain.SaleQuery{CompanyID: "outra", UnitID: "outra-unidade"}

	admin := ApplyScope(domain.AuthContext{Role: domain.RoleAdmin}, query)
	assert.Equal(t, "outra", admin.CompanyID)

	manager := ApplyScope(domain.AuthContext{Role: domain.RoleManager, CompanyID: "c1"}, query)
	assert.Equal(t, "c1", manager.CompanyID)
	assert.Equal(t, "outra-unidade", manager.UnitID)

	seller := ApplyScope(domain.AuthContext{Role: domain.RoleSeller, CompanyID: "c1", UnitID: "u1"}, query)
	assert.Equal(t, "c1", seller.CompanyID)
	assert.Equal(t, "u1", seller.UnitID)
}

func TestFiltersChanged(t *testing.T) {
	previous, err := Normalize(domain.SaleFilters{Status: "PENDING", DeliveryStart: "2024-01-01"})
	require.NoError(t, err)
	same, err := Normalize(domain.SaleFilters{Status: "pending", DeliveryStart: "2024-01-01"})
	require.NoError(t, err)
	other, err := Normalize(domain.SaleFilters{Status: "PENDING", DeliveryStart: "2024-01-02"})
	require.NoError(t, err)

	key := Fingerprint(previous)
	require.NotEmpty(t, key)
	assert.Equal(t, key, Fingerprint(same))

	assert.False(t, FiltersChanged(key, same))
	assert.True(t, FiltersChanged(key, other))
	assert.True(t, FiltersChanged(key, domain.SaleQuery{}))
	assert.False(t, FiltersChanged("", other), "primeira consulta mantém a página pedida")
}

func TestSaleQuery_Matches(t *testing.T) {
	delivery := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	sale := &domain.Sale{
		Status:       domain.SaleStatusPending,
		CompanyID:    "c1",
		UnitID:       "u1",
		DeliveryDate: &delivery,
		Vehicle:      domain.Vehicle{Plate: "ABC1D23", Model: "Onix"},
		ServiceSales: []*domain.ServiceSale{{ProductionStatus: domain.ProductionStatusToDo}},
	}

	inRange, _ := Normalize(domain.SaleFilters{DeliveryStart: "2024-01-15", DeliveryEnd: "2024-01-15"})
	assert.True(t, inRange.Matches(sale))

	outRange, _ := Normalize(domain.SaleFilters{DeliveryStart: "2024-01-16"})
	assert.False(t, outRange.Matches(sale))

	noAvailability, _ := Normalize(domain.SaleFilters{AvailabilityStart: "2024-01-01"})
	assert.False(t, noAvailability.Matches(sale))

	byProduction, _ := Normalize(domain.SaleFilters{ProductionStatus: "DONE"})
	assert.False(t, byProduction.Matches(sale))

	byText, _ := Normalize(domain.SaleFilters{Search: "onix"})
	assert.True(t, byText.Matches(sale))

	byPlate, _ := Normalize(domain.SaleFilters{Plate: "1d2"})
	assert.True(t, byPlate.Matches(sale))
}
