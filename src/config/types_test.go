package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := PostgresConfig{
		User:     "hmn",
		Password: "pw",
		Hostname: "db.local",
		Port:     5433,
		DbName:   "trees",
	}
	assert.Equal(t, "user=hmn password=pw host=db.local port=5433 dbname=trees", cfg.DSN())
}

func TestLtreeOverride(t *testing.T) {
	assert.False(t, LtreeConfig{}.HasOverride())
	assert.False(t, LtreeConfig{OID: 16385}.HasOverride())
	assert.True(t, LtreeConfig{OID: 16385, ArrayOID: 16390}.HasOverride())
}
