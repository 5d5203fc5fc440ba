package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database/postgres"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

//go:generate mockgen -source=sale.go -destination=mocks/sale.go -package=mocks

const (
	salesTable        = "sales s"
	serviceSalesTable = "service_sales ss"
)

var saleColumns = []string{
	"s.id",
	"s.client_identifier",
	"s.status",
	"s.availability_date",
	"s.delivery_date",
	"s.request_date",
	"s.finished_at",
	"s.comments",
	"s.technical_comments",
	"s.vehicle_brand",
	"s.vehicle_model",
	"s.vehicle_plate",
	"s.vehicle_color",
	"s.unit_id",
	"s.company_id",
	"s.seller_id",
	"s.created_at",
	"s.updated_at",
}

type SaleRepository interface {
	ListSales(ctx context.Context, query domain.SaleQuery, page domain.Page) ([]*domain.Sale, int, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	CreateSale(ctx context.Context, sale *domain.Sale) error
	UpdateSale(ctx context.Context, sale *domain.Sale) error
	UpdateSaleStatus(ctx context.Context, id string, status domain.SaleStatus, finishedAt *time.Time) error
	DeleteSale(ctx context.Context, id string) error
	NextSequence(ctx context.Context, unitID string) (int64, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) ListSales(ctx context.Context, query domain.SaleQuery, page domain.Page) ([]*domain.Sale, int, error) {
	conditions := saleConditions(query)

	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(salesTable).
		Where(conditions).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(err, "erro ao construir a query de contagem")
	}

	var total int
	if err := r.conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, dbError(err, "contar vendas")
	}
	if total == 0 {
		return []*domain.Sale{}, 0, nil
	}

	listSQL, listArgs, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(conditions).
		OrderBy("s.request_date DESC", "s.created_at DESC", "s.id").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(err, "erro ao construir a query de vendas")
	}

	rows, err := r.conn.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, dbError(err, "listar vendas")
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "erro ao escanear venda")
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "erro durante a iteração de vendas")
	}

	if err := r.attachServiceSales(ctx, sales); err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

func (r *saleRepository) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"s.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	sale, err := scanSale(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(err, "buscar venda")
	}

	if err := r.attachServiceSales(ctx, []*domain.Sale{sale}); err != nil {
		return nil, err
	}

	return sale, nil
}

// NextSequence reserva o próximo número da unidade. O upsert serializa
// concorrentes na mesma linha, então dois pedidos nunca recebem o mesmo número.
func (r *saleRepository) NextSequence(ctx context.Context, unitID string) (int64, error) {
	query, args, err := squirrel.
		Insert("unit_sequences").
		Columns("unit_id", "last_value").
		Values(unitID, 1).
		Suffix("ON CONFLICT (unit_id) DO UPDATE SET last_value = unit_sequences.last_value + 1 RETURNING last_value").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir reserva de sequência")
	}

	var next int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&next); err != nil {
		return 0, dbError(err, "reservar sequência da unidade")
	}
	return next, nil
}

// CreateSale grava a venda e suas linhas de serviço numa única transação
func (r *saleRepository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	saleSQL, saleArgs, err := squirrel.
		Insert("sales").
		Columns(
			"id", "client_identifier", "status", "availability_date", "delivery_date", "request_date",
			"comments", "technical_comments", "vehicle_brand", "vehicle_model", "vehicle_plate",
			"vehicle_color", "unit_id", "company_id", "seller_id", "created_at", "updated_at",
		).
		Values(
			sale.ID, sale.ClientIdentifier, sale.Status, sale.AvailabilityDate, sale.DeliveryDate, sale.RequestDate,
			sale.Comments, sale.TechnicalComments, sale.Vehicle.Brand, sale.Vehicle.Model, sale.Vehicle.Plate,
			sale.Vehicle.Color, sale.UnitID, sale.CompanyID, sale.SellerID, sale.CreatedAt, sale.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de venda")
	}

	linesQuery := squirrel.
		Insert("service_sales").
		Columns("id", "sale_id", "service_id", "service_name", "cost_value", "company_value", "commissioner_id", "production_status", "position").
		PlaceholderFormat(squirrel.Dollar)
	for _, line := range sale.ServiceSales {
		linesQuery = linesQuery.Values(
			line.ID, sale.ID, line.ServiceID, line.ServiceName, line.CostValue, line.CompanyValue, line.CommissionerID, line.ProductionStatus, line.Position,
		)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		q := postgres.TxQueryer{Tx: tx}

		if _, err := q.Exec(ctx, saleSQL, saleArgs...); err != nil {
			return dbError(err, "inserir venda")
		}

		if len(sale.ServiceSales) == 0 {
			return nil
		}

		linesSQL, linesArgs, err := linesQuery.ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir inserção de linhas de serviço")
		}
		if _, err := q.Exec(ctx, linesSQL, linesArgs...); err != nil {
			return dbError(err, "inserir linhas de serviço")
		}
		return nil
	})
}

func (r *saleRepository) UpdateSale(ctx context.Context, sale *domain.Sale) error {
	query, args, err := squirrel.
		Update("sales").
		SetMap(map[string]interface{}{
			"availability_date":  sale.AvailabilityDate,
			"delivery_date":      sale.DeliveryDate,
			"comments":           sale.Comments,
			"technical_comments": sale.TechnicalComments,
			"vehicle_brand":      sale.Vehicle.Brand,
			"vehicle_model":      sale.Vehicle.Model,
			"vehicle_plate":      sale.Vehicle.Plate,
			"vehicle_color":      sale.Vehicle.Color,
			"updated_at":         sale.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": sale.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de venda")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return dbError(err, "atualizar venda")
	}
	return requireAffected(result)
}

func (r *saleRepository) UpdateSaleStatus(ctx context.Context, id string, status domain.SaleStatus, finishedAt *time.Time) error {
	builder := squirrel.
		Update("sales").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if finishedAt != nil {
		builder = builder.Set("finished_at", *finishedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de status")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return dbError(err, "atualizar status da venda")
	}
	return requireAffected(result)
}

// DeleteSale remove a venda; linhas de serviço já fechadas em premiação impedem a remoção
func (r *saleRepository) DeleteSale(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete("sales").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir remoção de venda")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return dbError(err, "remover venda")
	}
	return requireAffected(result)
}

func (r *saleRepository) attachServiceSales(ctx context.Context, sales []*domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, sale := range sales {
		sale.ServiceSales = make([]*domain.ServiceSale, 0)
		byID[sale.ID] = sale
		ids = append(ids, sale.ID)
	}

	lines, err := queryServiceSales(ctx, r.conn, squirrel.Eq{"ss.sale_id": ids})
	if err != nil {
		return err
	}
	for _, line := range lines {
		if sale, ok := byID[line.SaleID]; ok {
			sale.ServiceSales = append(sale.ServiceSales, line)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSale(row scanner) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var status string

	if err := row.Scan(
		&sale.ID,
		&sale.ClientIdentifier,
		&status,
		&sale.AvailabilityDate,
		&sale.DeliveryDate,
		&sale.RequestDate,
		&sale.FinishedAt,
		&sale.Comments,
		&sale.TechnicalComments,
		&sale.Vehicle.Brand,
		&sale.Vehicle.Model,
		&sale.Vehicle.Plate,
		&sale.Vehicle.Color,
		&sale.UnitID,
		&sale.CompanyID,
		&sale.SellerID,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sale.Status = domain.SaleStatus(status)
	return sale, nil
}

// ErrNoRowsAffected indica que o registro alvo não existe mais
var ErrNoRowsAffected = errors.New("nenhum registro afetado")

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter linhas afetadas")
	}
	if affected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
