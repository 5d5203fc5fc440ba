package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

//go:generate mockgen -source=commissioner.go -destination=mocks/commissioner.go -package=mocks

const commissionersTable = "commissioners cm"

type CommissionerRepository interface {
	Create(ctx context.Context, commissioner *domain.Commissioner) error
	GetByID(ctx context.Context, id string) (*domain.Commissioner, error)
	List(ctx context.Context, companyID string) ([]*domain.Commissioner, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
}

type commissionerRepository struct {
	conn *postgres.Connection
}

func NewCommissionerRepository(conn *postgres.Connection) CommissionerRepository {
	return &commissionerRepository{
		conn: conn,
	}
}

func (r *commissionerRepository) Create(ctx context.Context, commissioner *domain.Commissioner) error {
	query, args, err := squirrel.
		Insert("commissioners").
		Columns("id", "company_id", "name", "enabled", "pix_key_type", "pix_key").
		Values(
			commissioner.ID,
			commissioner.CompanyID,
			commissioner.Name,
			commissioner.Enabled,
			string(commissioner.PixKey.Type()),
			commissioner.PixKey.Value(),
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de comissionado")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return dbError(err, "inserir comissionado")
	}
	return nil
}

func (r *commissionerRepository) GetByID(ctx context.Context, id string) (*domain.Commissioner, error) {
	query, args, err := r.selectCommissioners().
		Where(squirrel.Eq{"cm.id": id}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de comissionado")
	}

	commissioner, err := scanCommissioner(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(err, "buscar comissionado")
	}
	return commissioner, nil
}

func (r *commissionerRepository) List(ctx context.Context, companyID string) ([]*domain.Commissioner, error) {
	builder := r.selectCommissioners().OrderBy("cm.name")
	if companyID != "" {
		builder = builder.Where(squirrel.Eq{"cm.company_id": companyID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de comissionados")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "listar comissionados")
	}
	defer rows.Close()

	commissioners := make([]*domain.Commissioner, 0)
	for rows.Next() {
		commissioner, err := scanCommissioner(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear comissionado")
		}
		commissioners = append(commissioners, commissioner)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de comissionados")
	}

	return commissioners, nil
}

func (r *commissionerRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	query, args, err := squirrel.
		Update("commissioners").
		Set("enabled", enabled).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de comissionado")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return dbError(err, "atualizar comissionado")
	}
	return requireAffected(result)
}

func (r *commissionerRepository) selectCommissioners() squirrel.SelectBuilder {
	return squirrel.
		Select("cm.id", "cm.company_id", "cm.name", "cm.enabled", "cm.pix_key_type", "cm.pix_key").
		From(commissionersTable).
		PlaceholderFormat(squirrel.Dollar)
}

func scanCommissioner(row scanner) (*domain.Commissioner, error) {
	commissioner := &domain.Commissioner{}
	var keyType, keyValue string

	if err := row.Scan(
		&commissioner.ID,
		&commissioner.CompanyID,
		&commissioner.Name,
		&commissioner.Enabled,
		&keyType,
		&keyValue,
	); err != nil {
		return nil, err
	}

	pixKey, err := domain.NewPixKey(domain.PixKeyType(keyType), keyValue)
	if err != nil {
		return nil, errors.Wrapf(err, "chave PIX gravada inválida para o comissionado %s", commissioner.ID)
	}
	commissioner.PixKey = pixKey

	return commissioner, nil
}
