package config

import (
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

var Config = LtreeAppConfig{
	Env:      Dev,
	LogLevel: zerolog.InfoLevel,
	Postgres: PostgresConfig{
		User:     "hmn",
		Password: "password",
		Hostname: "localhost",
		Port:     5432,
		DbName:   "hmn_ltree",
		LogLevel: tracelog.LogLevelWarn,
		MinConn:  2,
		MaxConn:  10,
	},
}

// Lets deployments point at a different database without editing this file.
func init() {
	if v := os.Getenv("HMN_LTREE_DB_USER"); v != "" {
		Config.Postgres.User = v
	}
	if v := os.Getenv("HMN_LTREE_DB_PASSWORD"); v != "" {
		Config.Postgres.Password = v
	}
	if v := os.Getenv("HMN_LTREE_DB_HOST"); v != "" {
		Config.Postgres.Hostname = v
	}
	if v := os.Getenv("HMN_LTREE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			Config.Postgres.Port = port
		}
	}
	if v := os.Getenv("HMN_LTREE_DB_NAME"); v != "" {
		Config.Postgres.DbName = v
	}
}
