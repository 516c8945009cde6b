package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("jobs").
		Where(squirrel.Eq{"company_id": "c1", "status": "open"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM jobs WHERE company_id = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{"c1", "open"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("calendars").
		Set("is_active", false).
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE calendars SET is_active = $1 WHERE id = $2", query)
}
