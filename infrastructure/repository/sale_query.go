package repository

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

// saleConditions traduz o filtro normalizado para o WHERE de sales s
func saleConditions(q domain.SaleQuery) squirrel.And {
	conditions := squirrel.And{}

	conditions = appendDateRange(conditions, "s.availability_date", q.Availability)
	conditions = appendDateRange(conditions, "s.delivery_date", q.Delivery)
	conditions = appendDateRange(conditions, "s.finished_at::date", q.Finished)

	if q.Status != nil {
		conditions = append(conditions, squirrel.Eq{"s.status": string(*q.Status)})
	}
	if q.CompanyID != "" {
		conditions = append(conditions, squirrel.Eq{"s.company_id": q.CompanyID})
	}
	if q.UnitID != "" {
		conditions = append(conditions, squirrel.Eq{"s.unit_id": q.UnitID})
	}
	if q.SellerID != "" {
		conditions = append(conditions, squirrel.Eq{"s.seller_id": q.SellerID})
	}
	if q.Plate != "" {
		conditions = append(conditions, squirrel.ILike{"s.vehicle_plate": containsPattern(q.Plate)})
	}
	if q.ProductionStatus != nil {
		conditions = append(conditions, squirrel.Expr(
			"EXISTS (SELECT 1 FROM service_sales x WHERE x.sale_id = s.id AND x.production_status = ?)",
			string(*q.ProductionStatus),
		))
	}
	if q.Search != "" {
		pattern := containsPattern(q.Search)
		conditions = append(conditions, squirrel.Or{
			squirrel.ILike{"s.client_identifier": pattern},
			squirrel.ILike{"s.vehicle_brand": pattern},
			squirrel.ILike{"s.vehicle_model": pattern},
			squirrel.ILike{"s.vehicle_plate": pattern},
			squirrel.ILike{"s.comments": pattern},
		})
	}

	return conditions
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern monta o padrão de ILIKE tratando % e _ do usuário como texto
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

func appendDateRange(conditions squirrel.And, column string, r *domain.DateRange) squirrel.And {
	if r.IsZero() {
		return conditions
	}
	if r.From != nil {
		conditions = append(conditions, squirrel.Expr(fmt.Sprintf("%s >= ?", column), r.From.Format("2006-01-02")))
	}
	if r.To != nil {
		conditions = append(conditions, squirrel.Expr(fmt.Sprintf("%s <= ?", column), r.To.Format("2006-01-02")))
	}
	return conditions
}
