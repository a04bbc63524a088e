package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"expensy-server/src/db"
	"expensy-server/src/db/storetest"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &storetest.StoreSuite{
		NewStore: func(t *testing.T) db.Store {
			store, err := Open(context.Background(), filepath.Join(t.TempDir(), "expensy.db"))
			require.NoError(t, err)
			return store
		},
	})
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "expensy.db")

	first, err := Open(context.Background(), path)
	require.NoError(t, err)
	first.Close()

	second, err := Open(context.Background(), path)
	require.NoError(t, err)
	second.Close()
}
