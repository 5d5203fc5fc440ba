package reports

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/vfg2006/dealership-sales-api/infrastructure/integrator/reports/reportclient"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Exporter pede ao serviço externo a geração do relatório de vendas
type Exporter interface {
	ExportSales(ctx context.Context, auth domain.AuthContext, query domain.SaleQuery) (*domain.ReportHandle, error)
}

type ReportService struct {
	Client reportclient.Client
}

func New(client reportclient.Client) Exporter {
	return &ReportService{
		Client: client,
	}
}

func (s *ReportService) ExportSales(ctx context.Context, auth domain.AuthContext, query domain.SaleQuery) (*domain.ReportHandle, error) {
	filters, err := encodeQuery(query)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.RequestSalesReport(ctx, reportclient.SalesReportParams{
		Filters:     filters,
		RequestedBy: auth.UserID,
		Format:      "xlsx",
	})
	if err != nil {
		return nil, err
	}

	return &domain.ReportHandle{
		URL:       resp.URL,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// encodeQuery achata o filtro em um mapa com datas AAAA-MM-DD, sem critérios ausentes
func encodeQuery(query domain.SaleQuery) (map[string]any, error) {
	flat := domain.SaleFilters{
		CompanyID: query.CompanyID,
		UnitID:    query.UnitID,
		SellerID:  query.SellerID,
		Plate:     query.Plate,
		Search:    query.Search,
	}
	if query.Status != nil {
		flat.Status = string(*query.Status)
	}
	if query.ProductionStatus != nil {
		flat.ProductionStatus = string(*query.ProductionStatus)
	}
	if query.Availability != nil {
		flat.AvailabilityStart = utils.FormatDate(query.Availability.From)
		flat.AvailabilityEnd = utils.FormatDate(query.Availability.To)
	}
	if query.Delivery != nil {
		flat.DeliveryStart = utils.FormatDate(query.Delivery.From)
		flat.DeliveryEnd = utils.FormatDate(query.Delivery.To)
	}
	if query.Finished != nil {
		flat.FinishedStart = utils.FormatDate(query.Finished.From)
		flat.FinishedEnd = utils.FormatDate(query.Finished.To)
	}

	encoded := make(map[string]any)
	if err := mapstructure.Decode(flat, &encoded); err != nil {
		return nil, err
	}
	for key, value := range encoded {
		if value == "" {
			delete(encoded, key)
		}
	}
	return encoded, nil
}
