package postgresrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsQuery(t *testing.T) {
	r := NewUserRepository(nil)

	sql, args, err := r.existsQuery(12).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", sql)
	assert.Equal(t, []any{int64(12)}, args)
}
