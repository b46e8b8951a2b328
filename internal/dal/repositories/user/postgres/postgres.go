package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/shop/internal/dal/postgres"
)

// UserRepository checks user references.
type UserRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewUserRepository creates a new Postgres user repository.
func NewUserRepository(conn postgres.Conn) *UserRepository {
	return &UserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) existsQuery(id int64) sq.SelectBuilder {
	return r.sb.Select().Column(sq.Expr("EXISTS(SELECT 1 FROM users WHERE id = ?)", id))
}

// Exists reports whether a user with the given id exists.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.existsQuery(id).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var found bool
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return found, nil
}
