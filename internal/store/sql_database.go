package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DB wraps the shared *sql.DB handle together with a driver-specific error
// classifier. Repositories consult the classifier to translate driver
// errors into store sentinels without depending on a concrete driver.
type DB struct {
	*sql.DB
	driver     string
	classifier ErrorClassifier
	logger     *logger.Logger
}

// NewConnectDatabase opens the database selected by cfg.Driver, verifies
// connectivity with a ping, and returns a ready *DB.
//
// Connection pooling is tuned for a small web service; SQLite is driven
// through a single connection because the driver serializes writes anyway.
func NewConnectDatabase(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectDatabase").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	var classifier ErrorClassifier
	switch cfg.Driver {
	case DriverPostgres:
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(4)
		classifier = NewPostgresErrorClassifier()
	case DriverSQLite:
		conn.SetMaxOpenConns(1)
		classifier = NewSQLiteErrorClassifier()
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectDatabase").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectDatabase").Str("driver", cfg.Driver).Msg("connected to database successfully")

	return &DB{
		DB:         conn,
		driver:     cfg.Driver,
		classifier: classifier,
		logger:     log,
	}, nil
}

// Driver returns the database/sql driver name this handle was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// WithinTx begins a transaction, runs fn with a transactional handle, and
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := db.WithinTx(ctx, func(ctx context.Context, tx store.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	err = fn(ctx, tx)
	return err
}

// forUpdateSuffix returns the row-locking clause for the current backend.
// SQLite has no FOR UPDATE; its transactions take a write lock instead, so
// conflicting redeems are still serialized.
func (db *DB) forUpdateSuffix() string {
	if db.driver == DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

// NewStorages connects to the configured database and wires all
// repositories around the shared handle.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (Storages, error) {
	db, err := NewConnectDatabase(ctx, cfg.DB, log)
	if err != nil {
		return Storages{}, err
	}

	return Storages{
		UserRepository:       NewUserRepository(db, log),
		ResetTokenRepository: NewResetTokenRepository(db, log),
		DB:                   db,
	}, nil
}
