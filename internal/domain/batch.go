package domain

// BatchFailure é uma falha individual dentro de uma operação em lote
type BatchFailure struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BatchResult é o resultado de uma operação em lote. Falhas parciais fazem
// parte do retorno, não do erro.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Failures  []BatchFailure `json:"failures"`
}

func (r BatchResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// FailedIDs são os ids que o chamador deve manter selecionados para nova tentativa
func (r BatchResult) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failures))
	for _, failure := range r.Failures {
		ids = append(ids, failure.ID)
	}
	return ids
}

type UpdateSaleStatusRequest struct {
	SaleIDs []string `json:"sale_ids"`
	Status  string   `json:"status"`
}

type UpdateSaleStatusResponse struct {
	Status    SaleStatus     `json:"status"`
	Succeeded []string       `json:"succeeded"`
	Failures  []BatchFailure `json:"failures"`
}

type DeleteSalesRequest struct {
	SaleIDs []string `json:"sale_ids"`
}

type DeleteSalesResponse struct {
	Message   string         `json:"message"`
	Succeeded []string       `json:"succeeded"`
	Errors    []BatchFailure `json:"errors"`
}

type UpdateProductionStatusRequest struct {
	ServiceSaleIDs []string `json:"service_sale_ids"`
	Status         string   `json:"status"`
}
