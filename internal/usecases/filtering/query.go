package filtering

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/utils"
)

// Normalize converte o formulário esparso em SaleQuery, descartando campos vazios
func Normalize(filters domain.SaleFilters) (domain.SaleQuery, error) {
	query := domain.SaleQuery{
		CompanyID: strings.TrimSpace(filters.CompanyID),
		UnitID:    strings.TrimSpace(filters.UnitID),
		SellerID:  strings.TrimSpace(filters.SellerID),
		Plate:     strings.ToUpper(strings.TrimSpace(filters.Plate)),
		Search:    strings.TrimSpace(filters.Search),
	}

	var err error
	if query.Availability, err = parseRange("availability", filters.AvailabilityStart, filters.AvailabilityEnd); err != nil {
		return domain.SaleQuery{}, err
	}
	if query.Delivery, err = parseRange("delivery", filters.DeliveryStart, filters.DeliveryEnd); err != nil {
		return domain.SaleQuery{}, err
	}
	if query.Finished, err = parseRange("finished", filters.FinishedStart, filters.FinishedEnd); err != nil {
		return domain.SaleQuery{}, err
	}

	if strings.TrimSpace(filters.Status) != "" {
		status, err := domain.ParseSaleStatus(filters.Status)
		if err != nil {
			return domain.SaleQuery{}, err
		}
		query.Status = &status
	}

	if strings.TrimSpace(filters.ProductionStatus) != "" {
		status, err := domain.ParseProductionStatus(filters.ProductionStatus)
		if err != nil {
			return domain.SaleQuery{}, err
		}
		query.ProductionStatus = &status
	}

	return query, nil
}

func parseRange(field, start, end string) (*domain.DateRange, error) {
	from, err := parseDate(field+"_start", start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(field+"_end", end)
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return nil, nil
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrInvalidFormat,
			fmt.Sprintf("%s: data inicial %s maior que a final %s", field, utils.FormatDate(from), utils.FormatDate(to)))
	}
	return &domain.DateRange{From: from, To: to}, nil
}

func parseDate(field, value string) (*time.Time, error) {
	date, err := utils.ParseDate(value)
	if err != nil {
		return nil, domain.NewError(domain.ErrValidation, apiErrors.ErrInvalidFormat,
			fmt.Sprintf("%s: data inválida %q, use AAAA-MM-DD", field, value))
	}
	return date, nil
}

// ApplyScope força o escopo do usuário: gerente na própria empresa, vendedor na própria unidade
func ApplyScope(auth domain.AuthContext, query domain.SaleQuery) domain.SaleQuery {
	switch auth.Role {
	case domain.RoleManager:
		query.CompanyID = auth.CompanyID
	case domain.RoleSeller:
		query.CompanyID = auth.CompanyID
		query.UnitID = auth.UnitID
	}
	return query
}

// Fingerprint identifica o filtro normalizado. O cliente devolve a chave na
// próxima consulta como filters_key.
func Fingerprint(query domain.SaleQuery) string {
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(query)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

// FiltersChanged indica que o filtro mudou desde a consulta anterior e a página deve voltar a zero.
// Sem chave anterior não há com o que comparar.
func FiltersChanged(previousKey string, next domain.SaleQuery) bool {
	return previousKey != "" && previousKey != Fingerprint(next)
}
