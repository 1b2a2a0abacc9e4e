package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/maizepoint-api/pkg/config"
)

func TestMaxConns(t *testing.T) {
	assert.Equal(t, 10, maxConns(config.DBConfig{}))
	assert.Equal(t, 25, maxConns(config.DBConfig{MaxConns: 25}))
}

func TestPaginate(t *testing.T) {
	q, args := paginate("SELECT 1 WHERE a = $1", []any{"x"}, 20, 40)
	assert.Equal(t, "SELECT 1 WHERE a = $1 LIMIT $2 OFFSET $3", q)
	assert.Equal(t, []any{"x", 20, 40}, args)

	q, args = paginate("SELECT 1", nil, 0, 0)
	assert.Equal(t, "SELECT 1", q)
	assert.Empty(t, args)
}
