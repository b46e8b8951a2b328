package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/shop/internal/dal/postgres"
	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id        int64           `db:"id"`
	ProductId int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	CreatedAt time.Time       `db:"created_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ID:        oi.Id,
		ProductID: oi.ProductId,
		Quantity:  oi.Quantity,
		UnitPrice: oi.UnitPrice,
		CreatedAt: oi.CreatedAt,
	}
}

// OrderItemDalFromModel converts service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi orderitem.OrderItem) OrderItemDal {
	return OrderItemDal{
		Id:        oi.ID,
		ProductId: oi.ProductID,
		Quantity:  oi.Quantity,
		UnitPrice: oi.UnitPrice,
		CreatedAt: oi.CreatedAt,
	}
}

// OrderItemRepository represents a Postgres order item repository.
type OrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewOrderItemRepository creates a new Postgres order item repository.
func NewOrderItemRepository(conn postgres.Conn) *OrderItemRepository {
	return &OrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a priced order item and returns it with its generated ID.
func (r *OrderItemRepository) Insert(
	ctx context.Context,
	item orderitem.OrderItem,
) (orderitem.OrderItem, error) {
	dal := OrderItemDalFromModel(item)

	sql, args, err := r.sb.Insert("order_items").
		Columns("product_id", "quantity", "unit_price", "created_at").
		Values(dal.ProductId, dal.Quantity, dal.UnitPrice, pgtype.Timestamptz{Time: dal.CreatedAt, Valid: true}).
		Suffix("RETURNING id, product_id, quantity, unit_price, created_at").
		ToSql()
	if err != nil {
		return orderitem.OrderItem{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanOrderItem(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return orderitem.OrderItem{}, fmt.Errorf("failed to insert order item: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves a single order item.
func (r *OrderItemRepository) GetByID(ctx context.Context, id int64) (orderitem.OrderItem, error) {
	items, err := r.Query(ctx, &orderitem.QueryOrderItemsModel{Ids: []int64{id}})
	if err != nil {
		return orderitem.OrderItem{}, err
	}
	if len(items) == 0 {
		return orderitem.OrderItem{}, errs.NotFound("order item", id)
	}

	return items[0], nil
}

func (r *OrderItemRepository) selectQuery(filter *orderitem.QueryOrderItemsModel) sq.SelectBuilder {
	query := r.sb.
		Select(
			"id",
			"product_id",
			"quantity",
			"unit_price",
			"created_at",
		).
		From("order_items").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.ProductIds) > 0 {
		query = query.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	return query
}

// Query retrieves order items based on filter criteria.
func (r *OrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	sql, args, err := r.selectQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	result := []orderitem.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeleteByID removes an order item. A missing row is reported as not found.
func (r *OrderItemRepository) DeleteByID(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("order_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("order item", id)
	}

	return nil
}

func scanOrderItem(row pgx.Row) (orderitem.OrderItem, error) {
	var dal OrderItemDal
	var createdAt pgtype.Timestamptz

	err := row.Scan(
		&dal.Id,
		&dal.ProductId,
		&dal.Quantity,
		&dal.UnitPrice,
		&createdAt,
	)
	if err != nil {
		return orderitem.OrderItem{}, err
	}

	dal.CreatedAt = createdAt.Time

	return dal.ToModel(), nil
}
