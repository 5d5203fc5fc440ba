package reportclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// SalesReportParams é o corpo enviado ao serviço de relatórios: o filtro já normalizado
type SalesReportParams struct {
	Filters     map[string]any `json:"filters"`
	RequestedBy string         `json:"requested_by"`
	Format      string         `json:"format"`
}

type SalesReportResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StatusError carrega o status HTTP devolvido pelo serviço de relatórios
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("requisição falhou com status %d: %s", e.StatusCode, e.Body)
}

func (c *ReportClient) RequestSalesReport(ctx context.Context, params SalesReportParams) (SalesReportResponse, error) {
	var response SalesReportResponse

	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return response, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/reports/sales")

	body, err := json.Marshal(params)
	if err != nil {
		return response, fmt.Errorf("erro ao serializar os filtros: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return response, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return response, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if response.URL == "" {
		return response, fmt.Errorf("resposta sem URL de download")
	}

	return response, nil
}
