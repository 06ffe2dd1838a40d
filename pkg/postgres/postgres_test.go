package postgres_test

import (
	"testing"

	"github.com/Astemirdum/library-lending/pkg/postgres"
	"github.com/stretchr/testify/require"
)

func TestDB_DSN(t *testing.T) {
	t.Parallel()
	cfg := postgres.DB{
		Host:     "db",
		Port:     5432,
		Username: "library",
		Password: "p@ss word",
		NameDB:   "library",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://library:p%40ss%20word@db:5432/library?sslmode=disable", cfg.DSN())
}
