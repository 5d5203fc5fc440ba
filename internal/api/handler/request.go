package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/log"
	"github.com/vfg2006/dealership-sales-api/pkg/middleware"
	"github.com/vfg2006/dealership-sales-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// authFromRequest devolve o chamador autenticado ou escreve 401
func authFromRequest(w http.ResponseWriter, r *http.Request) (domain.AuthContext, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return domain.AuthContext{}, false
	}
	return claims.AuthContext(), true
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição vazio", nil)
			return false
		}
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao decodificar requisição")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeDomainError traduz o erro do caso de uso no envelope padrão da API
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		log.ForContext(r.Context()).WithError(err).Error("Erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
		return
	}

	var details any
	if domainErr.ID != "" {
		details = map[string]string{"id": domainErr.ID}
	}

	if apiErrors.StatusFor(domainErr.Code) >= http.StatusInternalServerError {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao processar requisição")
	}
	apiErrors.WriteError(w, domainErr.Code, domainErr.Message(), details)
}

// saleFiltersFromQuery lê os filtros esparsos da query string
func saleFiltersFromQuery(query url.Values) (domain.SaleFilters, error) {
	raw := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			raw[key] = strings.TrimSpace(values[0])
		}
	}

	var filters domain.SaleFilters
	if err := mapstructure.Decode(raw, &filters); err != nil {
		return domain.SaleFilters{}, err
	}
	return filters, nil
}

// pageFromQuery lê page e page_size; ausentes viram zero e o paginador aplica o padrão
func pageFromQuery(query url.Values) (int, int, error) {
	page, err := optionalInt(query.Get("page"))
	if err != nil {
		return 0, 0, err
	}
	size, err := optionalInt(query.Get("page_size"))
	if err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func optionalInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	date, err := utils.ParseDate(value)
	if err != nil {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrInvalidFormat, field+": use o formato AAAA-MM-DD")
	}
	return date, nil
}
