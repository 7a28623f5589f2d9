package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_links (left_id INTEGER NOT NULL, right_id INTEGER NOT NULL, note TEXT, PRIMARY KEY (left_id, right_id))").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_links")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["left_id"].Type)
	assert.Equal(t, "PRI", colMap["left_id"].Key)
	assert.Equal(t, "NO", colMap["left_id"].Null)
	assert.Equal(t, "text", colMap["note"].Type)
	assert.Empty(t, colMap["note"].Key)

	keys, err := PrimaryKey(db, "test_links")
	require.NoError(t, err)
	assert.Equal(t, []string{"left_id", "right_id"}, keys)

	// PRAGMA table_info returns an empty result for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}
