package db

import (
	"context"
	"time"

	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/logging"
	"git.handmade.network/hmn/ltree/src/oops"
	"github.com/jackc/pgx/v5"
	"github.com/jpillora/backoff"
)

/*
Blocks until the database accepts connections, retrying with exponential
backoff. Useful right after starting a database container. Returns an error
only if ctx ends first.
*/
func WaitForDatabase(ctx context.Context, cfg config.PostgresConfig) error {
	cfg = overrideDefaultConfig(cfg)

	boff := backoff.Backoff{
		Min: 250 * time.Millisecond,
		Max: 10 * time.Second,
	}

	for {
		err := ping(ctx, cfg)
		if err == nil {
			return nil
		}

		dur := boff.Duration()
		logging.Warn().
			Err(err).
			Dur("retrying after", dur).
			Msg("database is not ready")

		timer := time.NewTimer(dur)
		select {
		case <-ctx.Done():
			timer.Stop()
			return oops.New(ctx.Err(), "gave up waiting for the database")
		case <-timer.C:
		}
	}
}

func ping(ctx context.Context, cfg config.PostgresConfig) error {
	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	return conn.Ping(ctx)
}
