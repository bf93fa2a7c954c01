package config

import (
	"fmt"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

type Environment string

const (
	Live Environment = "live"
	Beta             = "beta"
	Dev              = "dev"
)

type LtreeAppConfig struct {
	Env      Environment
	LogLevel zerolog.Level
	Postgres PostgresConfig
	Ltree    LtreeConfig
}

type PostgresConfig struct {
	User     string
	Password string
	Hostname string
	Port     int
	DbName   string
	LogLevel tracelog.LogLevel
	MinConn  int32
	MaxConn  int32
}

func (info PostgresConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s", info.User, info.Password, info.Hostname, info.Port, info.DbName)
}

/*
Overrides for the ltree type identifiers. These are only consulted when the
database's type catalog cannot be read, and only when both are set. The
identifiers depend on how the ltree extension was installed, so leave these
zero unless you know the values for your database.
*/
type LtreeConfig struct {
	OID      uint32
	ArrayOID uint32
}

func (c LtreeConfig) HasOverride() bool {
	return c.OID != 0 && c.ArrayOID != 0
}
