package postgres

import (
	"context"
	"os"
	"testing"

	"expensy-server/src/db"
	"expensy-server/src/db/storetest"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Runs only when EXPENSY_TEST_DATABASE_URL points at a disposable database.
func TestPostgresStoreSuite(t *testing.T) {
	url := os.Getenv("EXPENSY_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("EXPENSY_TEST_DATABASE_URL not set, skipping postgres store tests")
	}

	suite.Run(t, &storetest.StoreSuite{
		NewStore: func(t *testing.T) db.Store {
			ctx := context.Background()
			store, err := Connect(ctx, url)
			require.NoError(t, err)
			_, err = store.pool.Exec(ctx, `TRUNCATE budgets, transactions, users`)
			require.NoError(t, err)
			return store
		},
	})
}

func TestPgx5URL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@localhost:5432/expensy?sslmode=disable",
		db.PgxMigrateURL("postgres://u:p@localhost:5432/expensy?sslmode=disable"))
	require.Equal(t, "pgx5://localhost/expensy", db.PgxMigrateURL("postgresql://localhost/expensy"))
}
