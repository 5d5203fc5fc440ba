package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

//go:generate mockgen -source=catalog.go -destination=mocks/catalog.go -package=mocks

type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
	GetUnit(ctx context.Context, unitID string) (*domain.UnitWithCompany, error)
}

type catalogRepository struct {
	conn *postgres.Connection
}

func NewCatalogRepository(conn *postgres.Connection) CatalogRepository {
	return &catalogRepository{
		conn: conn,
	}
}

func (r *catalogRepository) GetServicesByIDs(ctx context.Context, ids []string) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	query, args, err := squirrel.
		Select("sv.id", "sv.company_id", "sv.name", "sv.list_price", "sv.cost_price", "sv.company_price").
		From("services sv").
		Where(squirrel.Eq{"sv.id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de serviços")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "listar serviços")
	}
	defer rows.Close()

	services := make([]*domain.Service, 0, len(ids))
	for rows.Next() {
		service := &domain.Service{}
		var costPrice, companyPrice decimal.NullDecimal
		if err := rows.Scan(
			&service.ID,
			&service.CompanyID,
			&service.Name,
			&service.ListPrice,
			&costPrice,
			&companyPrice,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear serviço")
		}
		if costPrice.Valid {
			service.CostPrice = &costPrice.Decimal
		}
		if companyPrice.Valid {
			service.CompanyPrice = &companyPrice.Decimal
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de serviços")
	}

	return services, nil
}

func (r *catalogRepository) GetUnit(ctx context.Context, unitID string) (*domain.UnitWithCompany, error) {
	query, args, err := squirrel.
		Select("u.id", "u.company_id", "u.code", "u.name", "c.code").
		From("units u").
		Join("companies c ON c.id = u.company_id").
		Where(squirrel.Eq{"u.id": unitID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de unidade")
	}

	unit := &domain.UnitWithCompany{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&unit.ID,
		&unit.CompanyID,
		&unit.Code,
		&unit.Name,
		&unit.CompanyCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(err, "buscar unidade")
	}

	return unit, nil
}
