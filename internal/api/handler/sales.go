package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/selling"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/log"
)

// createSaleRequest recebe as datas como AAAA-MM-DD
type createSaleRequest struct {
	UnitID            string         `json:"unit_id"`
	SellerID          string         `json:"seller_id"`
	ServiceIDs        []string       `json:"service_ids"`
	AvailabilityDate  string         `json:"availability_date"`
	DeliveryDate      string         `json:"delivery_date"`
	RequestDate       string         `json:"request_date"`
	Comments          *string        `json:"comments"`
	TechnicalComments *string        `json:"technical_comments"`
	Vehicle           domain.Vehicle `json:"vehicle"`
}

func (req createSaleRequest) toInput() (domain.NewSaleInput, error) {
	availability, err := parseOptionalDate("availability_date", req.AvailabilityDate)
	if err != nil {
		return domain.NewSaleInput{}, err
	}
	delivery, err := parseOptionalDate("delivery_date", req.DeliveryDate)
	if err != nil {
		return domain.NewSaleInput{}, err
	}
	requestDate, err := parseOptionalDate("request_date", req.RequestDate)
	if err != nil {
		return domain.NewSaleInput{}, err
	}

	return domain.NewSaleInput{
		UnitID:            req.UnitID,
		SellerID:          req.SellerID,
		ServiceIDs:        req.ServiceIDs,
		AvailabilityDate:  availability,
		DeliveryDate:      delivery,
		RequestDate:       requestDate,
		Comments:          req.Comments,
		TechnicalComments: req.TechnicalComments,
		Vehicle:           req.Vehicle,
	}, nil
}

type updateSaleRequest struct {
	AvailabilityDate  *string         `json:"availability_date"`
	DeliveryDate      *string         `json:"delivery_date"`
	Comments          *string         `json:"comments"`
	TechnicalComments *string         `json:"technical_comments"`
	Vehicle           *domain.Vehicle `json:"vehicle"`
}

func (req updateSaleRequest) toRequest(id string) (domain.UpdateSaleRequest, error) {
	update := domain.UpdateSaleRequest{
		ID:                id,
		Comments:          req.Comments,
		TechnicalComments: req.TechnicalComments,
		Vehicle:           req.Vehicle,
	}

	var err error
	if req.AvailabilityDate != nil {
		if update.AvailabilityDate, err = parseOptionalDate("availability_date", *req.AvailabilityDate); err != nil {
			return domain.UpdateSaleRequest{}, err
		}
	}
	if req.DeliveryDate != nil {
		if update.DeliveryDate, err = parseOptionalDate("delivery_date", *req.DeliveryDate); err != nil {
			return domain.UpdateSaleRequest{}, err
		}
	}
	return update, nil
}

func ListSales(service selling.SaleService) http.HandlerFunc {
	return listOrSearch(service.ListSales)
}

func SearchSales(service selling.SaleService) http.HandlerFunc {
	return listOrSearch(service.SearchSales)
}

type listFunc func(ctx context.Context, auth domain.AuthContext, filters domain.SaleFilters, pageIndex, pageSize int) (*domain.PageResult[*domain.Sale], error)

func listOrSearch(list listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		filters, err := saleFiltersFromQuery(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Filtros inválidos", nil)
			return
		}
		page, size, err := pageFromQuery(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page e page_size devem ser números", nil)
			return
		}

		result, err := list(r.Context(), auth, filters, page, size)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func GetSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		sale, err := service.GetSale(r.Context(), auth, id)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

func CreateSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req createSaleRequest
		if !decodeBody(w, r, &req) {
			return
		}

		input, err := req.toInput()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		response, err := service.CreateSale(r.Context(), auth, input)
		if err != nil {
			logger.WithError(err).Warn("sales: falha ao cadastrar venda")
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, response)
	}
}

func UpdateSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req updateSaleRequest
		if !decodeBody(w, r, &req) {
			return
		}

		update, err := req.toRequest(httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		sale, err := service.UpdateSaleFields(r.Context(), auth, update)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

// UpdateSaleStatus responde 200 mesmo com falhas parciais; elas vêm no corpo
func UpdateSaleStatus(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.UpdateSaleStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		response, err := service.UpdateSaleStatus(r.Context(), auth, req)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

func DeleteSales(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.DeleteSalesRequest
		if !decodeBody(w, r, &req) {
			return
		}

		response, err := service.DeleteSales(r.Context(), auth, req)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

func UpdateProductionStatus(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.UpdateProductionStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := service.UpdateProductionStatus(r.Context(), auth, req); err != nil {
			writeDomainError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ExportSales(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authFromRequest(w, r)
		if !ok {
			return
		}

		filters, err := saleFiltersFromQuery(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Filtros inválidos", nil)
			return
		}

		handle, err := service.ExportSales(r.Context(), auth, filters)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, handle)
	}
}
