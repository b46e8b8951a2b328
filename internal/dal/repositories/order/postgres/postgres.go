package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/shop/internal/dal/postgres"
	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"id",
	"order_item_ids",
	"shipping_address1",
	"shipping_address2",
	"city",
	"zip",
	"country",
	"phone",
	"status",
	"total_price",
	"user_id",
	"created_at",
	"updated_at",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id               int64           `db:"id"`
	OrderItemIds     []int64         `db:"order_item_ids"`
	ShippingAddress1 string          `db:"shipping_address1"`
	ShippingAddress2 string          `db:"shipping_address2"`
	City             string          `db:"city"`
	Zip              string          `db:"zip"`
	Country          string          `db:"country"`
	Phone            string          `db:"phone"`
	Status           string          `db:"status"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	UserId           int64           `db:"user_id"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.Id, err)
	}

	return &order.Order{
		ID:               o.Id,
		OrderItemIDs:     o.OrderItemIds,
		ShippingAddress1: o.ShippingAddress1,
		ShippingAddress2: o.ShippingAddress2,
		City:             o.City,
		Zip:              o.Zip,
		Country:          o.Country,
		Phone:            o.Phone,
		Status:           status,
		TotalPrice:       o.TotalPrice,
		UserID:           o.UserId,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		OrderItems:       []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

func (o *OrderDal) scanTargets() []any {
	return []any{
		&o.Id,
		&o.OrderItemIds,
		&o.ShippingAddress1,
		&o.ShippingAddress2,
		&o.City,
		&o.Zip,
		&o.Country,
		&o.Phone,
		&o.Status,
		&o.TotalPrice,
		&o.UserId,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}

// OrderRepository represents a Postgres order repository.
type OrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewOrderRepository creates a new Postgres order repository.
func NewOrderRepository(conn postgres.Conn) *OrderRepository {
	return &OrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *OrderRepository) insertQuery(o order.Order) sq.InsertBuilder {
	return r.sb.Insert("orders").
		Columns(orderColumns[1:]...).
		Values(
			o.OrderItemIDs,
			o.ShippingAddress1,
			o.ShippingAddress2,
			o.City,
			o.Zip,
			o.Country,
			o.Phone,
			o.Status.String(),
			o.TotalPrice,
			o.UserID,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix(returning())
}

// Insert inserts an order and returns it with its generated ID.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	sql, args, err := r.insertQuery(o).ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves a single order without its items.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (order.Order, error) {
	sql, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build select query: %w", err)
	}

	o, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, errs.NotFound("order", id)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

func (r *OrderRepository) selectQuery(filter *order.QueryOrdersModel) sq.SelectBuilder {
	query := r.sb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	return query
}

// Query retrieves orders based on filter criteria, newest first.
func (r *OrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	sql, args, err := r.selectQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(dal.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus changes only the status of an order.
func (r *OrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
) (order.Order, error) {
	sql, args, err := r.sb.Update("orders").
		Set("status", status.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build update query: %w", err)
	}

	o, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, errs.NotFound("order", id)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	return o, nil
}

// Delete removes an order and returns the deleted row.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (order.Order, error) {
	sql, args, err := r.sb.Delete("orders").
		Where(sq.Eq{"id": id}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build delete query: %w", err)
	}

	o, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, errs.NotFound("order", id)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to delete order: %w", err)
	}

	return o, nil
}

// Count returns the number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("orders").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// TotalSales sums total_price over all orders. SUM over no rows is NULL,
// which leaves the result invalid.
func (r *OrderRepository) TotalSales(ctx context.Context) (decimal.NullDecimal, error) {
	sql, args, err := r.sb.Select("SUM(total_price)").From("orders").ToSql()
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to build sum query: %w", err)
	}

	var total decimal.NullDecimal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to sum total sales: %w", err)
	}

	return total, nil
}

func (r *OrderRepository) scanOne(row pgx.Row) (order.Order, error) {
	var dal OrderDal
	if err := row.Scan(dal.scanTargets()...); err != nil {
		return order.Order{}, err
	}

	model, err := dal.ToModel()
	if err != nil {
		return order.Order{}, err
	}

	return *model, nil
}

func returning() string {
	return "RETURNING " + strings.Join(orderColumns, ", ")
}
