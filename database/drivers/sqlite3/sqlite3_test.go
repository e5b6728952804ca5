package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/eventbacktester/database"
)

func TestConnect(t *testing.T) {
	t.Parallel()
	_, err := Connect("")
	assert.ErrorIs(t, err, database.ErrNoDatabaseProvided)

	inst, err := Connect(filepath.Join(t.TempDir(), "candles.db"))
	require.NoError(t, err)
	require.NoError(t, inst.Ping())
	assert.NotNil(t, inst.GetSQL())
	require.NoError(t, inst.CloseConnection())
}
