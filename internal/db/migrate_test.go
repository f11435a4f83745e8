package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersionsSorted(t *testing.T) {
	versions, err := MigrationVersions()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_sales.sql", "002_sales_date_index.sql"}, versions)
}

func TestSalesMigrationDefinesStoreColumns(t *testing.T) {
	body, err := migrationFiles.ReadFile("migrations/001_create_sales.sql")
	require.NoError(t, err)
	for _, column := range []string{"date", "month", "time", "items", "total", "pay_mode", "created_at"} {
		assert.Contains(t, string(body), column)
	}
}
