package reportclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/internal/config"
)

func TestReportClient_RequestSalesReport(t *testing.T) {
	expiresAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/reports/sales", r.URL.Path)
		assert.Equal(t, "Bearer token-relatorio", r.Header.Get("Authorization"))

		var params SalesReportParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "PENDING", params.Filters["status"])
		assert.Equal(t, "u-1", params.RequestedBy)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SalesReportResponse{URL: "https://files.local/r/abc.xlsx", ExpiresAt: expiresAt})
	}))
	defer server.Close()

	client := NewClient(config.Reports{URL: server.URL + "/v1", AccessToken: "token-relatorio", Timeout: time.Second})

	resp, err := client.RequestSalesReport(context.Background(), SalesReportParams{
		Filters:     map[string]any{"status": "PENDING"},
		RequestedBy: "u-1",
		Format:      "xlsx",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://files.local/r/abc.xlsx", resp.URL)
	assert.True(t, expiresAt.Equal(resp.ExpiresAt))
}

func TestReportClient_RequestSalesReport_StatusDeErro(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("fila cheia"))
	}))
	defer server.Close()

	client := NewClient(config.Reports{URL: server.URL})

	_, err := client.RequestSalesReport(context.Background(), SalesReportParams{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "fila cheia", statusErr.Body)
}

func TestReportClient_RequestSalesReport_SemURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"expires_at":"2024-03-01T12:00:00Z"}`))
	}))
	defer server.Close()

	client := NewClient(config.Reports{URL: server.URL})

	_, err := client.RequestSalesReport(context.Background(), SalesReportParams{})
	assert.Error(t, err)
}
