package reportclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/dealership-sales-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	RequestSalesReport(ctx context.Context, params SalesReportParams) (SalesReportResponse, error)
}

type ReportClient struct {
	httpClient *http.Client
	config     config.Reports
}

func NewClient(cfg config.Reports) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ReportClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
