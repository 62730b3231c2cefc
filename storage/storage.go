// Package storage persists generated grids and play sessions.
// Grids live in Postgres with a Redis cache in front; sessions are
// Redis-only, since they are working state rather than a record.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/Miniuss/DokuGen/dbprep"
)

// keyPrefix namespaces all cache keys written by this package.
const keyPrefix = "dokugen"

// ctx: the context for database calls.  The storage layer is
// synchronous, so there is nothing to inherit.
func ctx() context.Context {
	return context.Background()
}

// A Config holds the connection settings for the cache and the
// database, parsed from the environment.  The defaults match a
// local development setup.
type Config struct {
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost/dokugen?sslmode=disable"`
}

// Connect reads the configuration, makes sure the database schema
// is in place, and opens the cache and database connections.  It
// returns the identifiers of the two endpoints it connected to.
func Connect() (cacheId, databaseId string, err error) {
	var cfg Config
	if err = env.Parse(&cfg); err != nil {
		err = fmt.Errorf("Couldn't parse storage configuration: %v", err)
		return
	}

	// make sure the database is initialized
	if err = dbprep.EnsureSchema(); err != nil {
		err = fmt.Errorf("Couldn't initialize database: %v", err)
		return
	}

	rdMutex.Lock()
	defer rdMutex.Unlock()
	cacheId, err = rdConnect(cfg.RedisURL)
	if err != nil {
		return
	}

	databaseId, err = pgConnect(cfg.DatabaseURL)
	if err != nil {
		return
	}
	return
}

// Close shuts down the cache and database connections.
func Close() {
	rdMutex.Lock()
	defer rdMutex.Unlock()
	pgClose()
	rdClose()
}

/*

cache using Redis

*/

// Redis connection data
var (
	rdc     redis.Conn // open connection, if any
	rdUrl   string     // URL for the open connection
	rdMutex sync.Mutex // prevent concurrent connection use
)

// rdConnect: connect to the given Redis URL.  Returns the
// connection id, if successful, an error otherwise.
func rdConnect(url string) (string, error) {
	conn, err := redis.DialURL(url)
	if err != nil {
		return "", fmt.Errorf("Couldn't connect to cache at %q: %v", url, err)
	}
	rdc, rdUrl = conn, url
	return rdUrl, nil
}

// rdClose: close the current Redis connection.
func rdClose() {
	if rdc != nil {
		rdc.Close()
		rdc = nil
	}
}

// rdExecute: execute the body against the Redis connection, with
// the Redis mutex held.  Meant to be used inside a handler,
// because errors in execution will panic back to package entry
// level.
func rdExecute(body func(tx redis.Conn) error) {
	// wrap the body against runtime and cache failures
	wrapper := func(tx redis.Conn) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
				} else {
					err = fmt.Errorf("Caught panic during rdExecute: %v", r)
				}
			}
		}()
		// Because Redis connections can go away without warning,
		// we ping to make sure the connection is alive, and try
		// to reconnect if not.
		if _, err := tx.Do("PING"); err != nil {
			rdClose()
			_, err = rdConnect(rdUrl)
			if err != nil {
				return fmt.Errorf("Failed to reconnect to cache at %q", rdUrl)
			}
		}
		// connection is good; run the body
		return body(rdc)
	}
	// grab the mutex and execute the body
	rdMutex.Lock()
	defer func(err error) {
		rdMutex.Unlock()
		if err != nil {
			panic(err)
		}
	}(wrapper(rdc))
}

/*

persistence using Postgres

*/

// Postgres connection data
var (
	pgConn *pgx.Conn // open database, if any
	pgUrl  string    // URL for the open connection
)

// pgConnect: open the Postgres database.  Returns the connection
// id, if successful, an error otherwise.
func pgConnect(url string) (string, error) {
	conn, err := pgx.Connect(context.Background(), url)
	if err != nil {
		return "", fmt.Errorf("Couldn't connect to db at %q: %v", url, err)
	}
	pgConn, pgUrl = conn, url
	return pgUrl, nil
}

// pgClose: close the current Postgres connection.
func pgClose() {
	if pgConn != nil {
		pgConn.Close(context.Background())
		pgConn = nil
	}
}

// pgExecute: execute the body inside a single transaction.  Meant
// to be used inside a handler, because errors in execution will
// panic back to the package entry level.  If the body errs out,
// then the transaction is rolled back, otherwise it's committed.
func pgExecute(body func(tx pgx.Tx) error) {
	// wrap the body against runtime and database failures
	wrapper := func(tx pgx.Tx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
				} else {
					err = fmt.Errorf("Caught panic during pgExecute: %v", r)
				}
			}
		}()
		return body(tx)
	}
	// get the transaction
	tx, err := pgConn.Begin(ctx())
	if err != nil {
		panic(fmt.Errorf("Can't open a transaction against database: %v", err))
	}
	// execute the body in the transaction
	defer func(err error) {
		if err != nil {
			tx.Rollback(ctx())
			panic(err)
		}
		tx.Commit(ctx())
	}(wrapper(tx))
}
