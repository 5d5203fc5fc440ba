package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

//go:generate mockgen -source=service_sale.go -destination=mocks/service_sale.go -package=mocks

type ServiceSaleRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.ServiceSale, error)
	UpdateProductionStatus(ctx context.Context, ids []string, status domain.ProductionStatus) error
	AssignCommissioner(ctx context.Context, commissionerID string, ids []string) error
}

type serviceSaleRepository struct {
	conn *postgres.Connection
}

func NewServiceSaleRepository(conn *postgres.Connection) ServiceSaleRepository {
	return &serviceSaleRepository{
		conn: conn,
	}
}

func (r *serviceSaleRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.ServiceSale, error) {
	if len(ids) == 0 {
		return []*domain.ServiceSale{}, nil
	}
	return queryServiceSales(ctx, r.conn, squirrel.Eq{"ss.id": ids})
}

// UpdateProductionStatus altera todas as linhas num único comando
func (r *serviceSaleRepository) UpdateProductionStatus(ctx context.Context, ids []string, status domain.ProductionStatus) error {
	query, args, err := squirrel.
		Update("service_sales").
		Set("production_status", string(status)).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de produção")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return dbError(err, "atualizar status de produção")
	}
	return nil
}

// AssignCommissioner sobrescreve o comissionado apenas nas linhas informadas
func (r *serviceSaleRepository) AssignCommissioner(ctx context.Context, commissionerID string, ids []string) error {
	query, args, err := squirrel.
		Update("service_sales").
		Set("commissioner_id", commissionerID).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atribuição de comissionado")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return dbError(err, "atribuir comissionado")
	}
	return nil
}

func queryServiceSales(ctx context.Context, q postgres.Queryer, where squirrel.Sqlizer) ([]*domain.ServiceSale, error) {
	query, args, err := squirrel.
		Select(
			"ss.id",
			"ss.sale_id",
			"s.company_id",
			"ss.service_id",
			"ss.service_name",
			"ss.cost_value",
			"ss.company_value",
			"ss.commissioner_id",
			"ss.production_status",
			"ss.position",
		).
		From(serviceSalesTable).
		Join("sales s ON s.id = ss.sale_id").
		Where(where).
		OrderBy("ss.sale_id", "ss.position").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de linhas de serviço")
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "listar linhas de serviço")
	}
	defer rows.Close()

	lines := make([]*domain.ServiceSale, 0)
	for rows.Next() {
		line := &domain.ServiceSale{}
		var productionStatus string
		if err := rows.Scan(
			&line.ID,
			&line.SaleID,
			&line.CompanyID,
			&line.ServiceID,
			&line.ServiceName,
			&line.CostValue,
			&line.CompanyValue,
			&line.CommissionerID,
			&productionStatus,
			&line.Position,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear linha de serviço")
		}
		line.ProductionStatus = domain.ProductionStatus(productionStatus)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas de serviço")
	}

	return lines, nil
}
