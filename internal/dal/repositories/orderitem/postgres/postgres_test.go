package postgresrepo

import (
	"testing"

	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQuery_ByIds(t *testing.T) {
	r := NewOrderItemRepository(nil)

	sql, args, err := r.selectQuery(&orderitem.QueryOrderItemsModel{Ids: []int64{4, 8}}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, product_id, quantity, unit_price, created_at FROM order_items WHERE id IN ($1,$2) ORDER BY id ASC",
		sql,
	)
	assert.Equal(t, []any{int64(4), int64(8)}, args)
}
