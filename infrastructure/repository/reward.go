package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

//go:generate mockgen -source=reward.go -destination=mocks/reward.go -package=mocks

type RewardRepository interface {
	ListReferredSales(ctx context.Context, filter domain.RewardFilter) ([]*domain.Sale, error)
	SavePayouts(ctx context.Context, payouts []*domain.CommissionerPayout) error
}

type rewardRepository struct {
	conn *postgres.Connection
}

func NewRewardRepository(conn *postgres.Connection) RewardRepository {
	return &rewardRepository{
		conn: conn,
	}
}

// ListReferredSales devolve as vendas com ao menos uma linha atribuída a comissionado,
// com todas as suas linhas carregadas
func (r *rewardRepository) ListReferredSales(ctx context.Context, filter domain.RewardFilter) ([]*domain.Sale, error) {
	conditions := squirrel.And{
		squirrel.Expr("EXISTS (SELECT 1 FROM service_sales x WHERE x.sale_id = s.id AND x.commissioner_id IS NOT NULL)"),
	}
	if filter.StartDate != nil {
		conditions = append(conditions, squirrel.GtOrEq{"s.request_date": filter.StartDate.Format("2006-01-02")})
	}
	if filter.EndDate != nil {
		conditions = append(conditions, squirrel.LtOrEq{"s.request_date": filter.EndDate.Format("2006-01-02")})
	}
	if filter.CompanyID != "" {
		conditions = append(conditions, squirrel.Eq{"s.company_id": filter.CompanyID})
	}

	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(conditions).
		OrderBy("s.request_date", "s.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de premiações")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "listar vendas com indicação")
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	byID := make(map[string]*domain.Sale)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		sale.ServiceSales = make([]*domain.ServiceSale, 0)
		sales = append(sales, sale)
		byID[sale.ID] = sale
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de vendas")
	}
	if len(sales) == 0 {
		return sales, nil
	}

	ids := make([]string, 0, len(sales))
	for _, sale := range sales {
		ids = append(ids, sale.ID)
	}
	lines, err := queryServiceSales(ctx, r.conn, squirrel.Eq{"ss.sale_id": ids})
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		byID[line.SaleID].ServiceSales = append(byID[line.SaleID].ServiceSales, line)
	}

	return sales, nil
}

// SavePayouts grava o fechamento do mês. Refazer o mesmo mês substitui o anterior.
func (r *rewardRepository) SavePayouts(ctx context.Context, payouts []*domain.CommissionerPayout) error {
	if len(payouts) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		q := postgres.TxQueryer{Tx: tx}

		for _, payout := range payouts {
			upsertSQL, upsertArgs, err := squirrel.
				Insert("commissioner_payouts").
				Columns("commissioner_id", "company_id", "month", "sales_count", "lines_count", "amount", "closed_at").
				Values(payout.CommissionerID, payout.CompanyID, payout.Month, payout.SalesCount, payout.LinesCount, payout.Amount, payout.ClosedAt).
				Suffix(`
					ON CONFLICT (commissioner_id, month) DO UPDATE SET
						sales_count = EXCLUDED.sales_count,
						lines_count = EXCLUDED.lines_count,
						amount = EXCLUDED.amount,
						closed_at = EXCLUDED.closed_at
				`).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return errors.Wrap(err, "erro ao construir inserção de fechamento")
			}
			if _, err := q.Exec(ctx, upsertSQL, upsertArgs...); err != nil {
				return dbError(err, "gravar fechamento")
			}

			if len(payout.ServiceSaleIDs) == 0 {
				continue
			}

			linesQuery := squirrel.
				Insert("commissioner_payout_lines").
				Columns("commissioner_id", "month", "service_sale_id").
				Suffix("ON CONFLICT DO NOTHING").
				PlaceholderFormat(squirrel.Dollar)
			for _, id := range payout.ServiceSaleIDs {
				linesQuery = linesQuery.Values(payout.CommissionerID, payout.Month, id)
			}
			linesSQL, linesArgs, err := linesQuery.ToSql()
			if err != nil {
				return errors.Wrap(err, "erro ao construir inserção das linhas do fechamento")
			}
			if _, err := q.Exec(ctx, linesSQL, linesArgs...); err != nil {
				return dbError(err, "gravar linhas do fechamento")
			}
		}

		return nil
	})
}
