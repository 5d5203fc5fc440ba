package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "texto simples", text: "gol", want: "%gol%"},
		{name: "percentual", text: "50%", want: `%50\%%`},
		{name: "sublinhado", text: "AB_1", want: `%AB\_1%`},
		{name: "barra invertida", text: `a\b`, want: `%a\\b%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.text))
		})
	}
}

func TestSaleConditions_BuscaLivreEscapaCuringas(t *testing.T) {
	sql, args, err := saleConditions(domain.SaleQuery{Search: "100%_ok"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "s.client_identifier ILIKE ?")
	require.Len(t, args, 5)
	for _, arg := range args {
		assert.Equal(t, `%100\%\_ok%`, arg)
	}
}

func TestSaleConditions_PlacaEDatas(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	status := domain.SaleStatusConfirmed

	sql, args, err := saleConditions(domain.SaleQuery{
		Delivery:  &domain.DateRange{From: &from},
		Status:    &status,
		CompanyID: "c1",
		Plate:     "ABC_",
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "s.delivery_date >= ?")
	assert.Contains(t, sql, "s.vehicle_plate ILIKE ?")
	assert.Equal(t, []interface{}{"2024-03-01", "CONFIRMED", "c1", `%ABC\_%`}, args)
}
