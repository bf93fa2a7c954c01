package db

import (
	"context"
	"regexp"
	"time"

	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/logging"
	"git.handmade.network/hmn/ltree/src/oops"
	"git.handmade.network/hmn/ltree/src/utils"
	zerologadapter "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
)

// This interface should match both a direct pgx connection or a pgx transaction.
type ConnOrTx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)

	// Both raw database connections and transactions in pgx can begin/commit
	// transactions. For database connections it does the obvious thing; for
	// transactions it creates a "pseudo-nested transaction" but conceptually
	// works the same. See the documentation of pgx.Tx.Begin.
	Begin(ctx context.Context) (pgx.Tx, error)
}

/*
Runs against every new connection before it is handed out. This is where
connection-local setup like registering extension types belongs, since pgx
keeps a separate type map per connection.
*/
type AfterConnectFunc func(ctx context.Context, conn *pgx.Conn) error

// Creates a new connection to the database.
// This connection is not safe for concurrent use.
func NewConn(hooks ...AfterConnectFunc) *pgx.Conn {
	return NewConnWithConfig(config.PostgresConfig{}, hooks...)
}

func NewConnWithConfig(cfg config.PostgresConfig, hooks ...AfterConnectFunc) *pgx.Conn {
	ctx := context.Background()
	cfg = overrideDefaultConfig(cfg)

	pgcfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		panic(oops.New(err, "failed to parse database config"))
	}
	pgcfg.Tracer = newTracer(cfg)

	conn, err := pgx.ConnectConfig(ctx, pgcfg)
	if err != nil {
		panic(oops.New(err, "failed to connect to database"))
	}

	if err := runHooks(ctx, conn, hooks); err != nil {
		conn.Close(ctx)
		panic(err)
	}

	return conn
}

// Creates a connection pool for the database.
// The resulting pool is safe for concurrent use.
func NewConnPool(hooks ...AfterConnectFunc) *pgxpool.Pool {
	return NewConnPoolWithConfig(config.PostgresConfig{}, hooks...)
}

func NewConnPoolWithConfig(cfg config.PostgresConfig, hooks ...AfterConnectFunc) *pgxpool.Pool {
	cfg = overrideDefaultConfig(cfg)

	pgcfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		panic(oops.New(err, "failed to parse database config"))
	}

	pgcfg.MinConns = cfg.MinConn
	pgcfg.MaxConns = cfg.MaxConn
	pgcfg.ConnConfig.Tracer = newTracer(cfg)
	if len(hooks) > 0 {
		pgcfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			return runHooks(ctx, conn, hooks)
		}
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), pgcfg)
	if err != nil {
		panic(oops.New(err, "failed to create database connection pool"))
	}

	return conn
}

func runHooks(ctx context.Context, conn *pgx.Conn, hooks []AfterConnectFunc) error {
	for _, hook := range hooks {
		if err := hook(ctx, conn); err != nil {
			return oops.New(err, "failed to set up new database connection")
		}
	}
	return nil
}

func overrideDefaultConfig(cfg config.PostgresConfig) config.PostgresConfig {
	return config.PostgresConfig{
		User:     utils.OrDefault(cfg.User, config.Config.Postgres.User),
		Password: utils.OrDefault(cfg.Password, config.Config.Postgres.Password),
		Hostname: utils.OrDefault(cfg.Hostname, config.Config.Postgres.Hostname),
		Port:     utils.OrDefault(cfg.Port, config.Config.Postgres.Port),
		DbName:   utils.OrDefault(cfg.DbName, config.Config.Postgres.DbName),
		LogLevel: utils.OrDefault(cfg.LogLevel, config.Config.Postgres.LogLevel),
		MinConn:  utils.OrDefault(cfg.MinConn, config.Config.Postgres.MinConn),
		MaxConn:  utils.OrDefault(cfg.MaxConn, config.Config.Postgres.MaxConn),
	}
}

func newTracer(cfg config.PostgresConfig) pgx.QueryTracer {
	return multiTracer{
		&tracelog.TraceLog{
			Logger:   zerologadapter.NewLogger(*logging.GlobalLogger()),
			LogLevel: cfg.LogLevel,
		},
		queryTimingTracer{},
	}
}

type multiTracer []pgx.QueryTracer

var _ pgx.QueryTracer = multiTracer{}

func (mt multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

var reQueryName = regexp.MustCompile("---- (.*)\n")

func GetQueryName(sql string) (string, bool) {
	m := reQueryName.FindStringSubmatch(sql)
	if m != nil {
		return m[1], true
	}
	return "", false
}

type queryTimingKey struct{}

type queryTiming struct {
	name  string
	start time.Time
}

// Logs the name and duration of every query at debug level.
type queryTimingTracer struct{}

var _ pgx.QueryTracer = queryTimingTracer{}

func (pt queryTimingTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	name := "Unknown query"
	if n, ok := GetQueryName(data.SQL); ok {
		name = n
	}
	return context.WithValue(ctx, queryTimingKey{}, queryTiming{name: name, start: time.Now()})
}

func (pt queryTimingTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	timing, ok := ctx.Value(queryTimingKey{}).(queryTiming)
	if !ok {
		return
	}
	logging.Debug().
		Str("query", timing.name).
		Dur("duration", time.Since(timing.start)).
		Bool("failed", data.Err != nil).
		Msg("SQL")
}
