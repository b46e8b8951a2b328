package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/shop/internal/dal/postgres"
	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/product"
	"github.com/jackc/pgx/v5"
)

// ProductRepository reads product prices from the catalog tables.
type ProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewProductRepository creates a new Postgres product repository.
func NewProductRepository(conn postgres.Conn) *ProductRepository {
	return &ProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindByID returns the product with its current price.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (product.Product, error) {
	sql, args, err := r.sb.Select("id", "name", "price").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var p product.Product
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return product.Product{}, errs.NotFound("product", id)
	}
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}
