package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/infrastructure/integrator/reports/mocks"
	"github.com/vfg2006/dealership-sales-api/infrastructure/integrator/reports/reportclient"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestReportService_ExportSales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service := New(client)

	status := domain.SaleStatusConfirmed
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	query := domain.SaleQuery{
		Status:   &status,
		Delivery: &domain.DateRange{From: &from},
		UnitID:   "u1",
	}
	expiresAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	client.EXPECT().
		RequestSalesReport(gomock.Any(), reportclient.SalesReportParams{
			Filters: map[string]any{
				"status":         "CONFIRMED",
				"delivery_start": "2024-01-01",
				"unit_id":        "u1",
			},
			RequestedBy: "user-1",
			Format:      "xlsx",
		}).
		Return(reportclient.SalesReportResponse{URL: "https://files.local/abc", ExpiresAt: expiresAt}, nil)

	handle, err := service.ExportSales(context.Background(), domain.AuthContext{UserID: "user-1"}, query)

	require.NoError(t, err)
	assert.Equal(t, "https://files.local/abc", handle.URL)
	assert.Equal(t, expiresAt, handle.ExpiresAt)
}

func TestReportService_ExportSales_Falha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service := New(client)

	client.EXPECT().
		RequestSalesReport(gomock.Any(), gomock.Any()).
		Return(reportclient.SalesReportResponse{}, errors.New("timeout"))

	handle, err := service.ExportSales(context.Background(), domain.AuthContext{}, domain.SaleQuery{})

	assert.Nil(t, handle)
	assert.Error(t, err)
}
