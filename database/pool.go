package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck-backend/config"
	"github.com/promptdeck/promptdeck-backend/errs"
)

// Pool is a bounded connection pool with scoped-transaction support. It owns
// a single gorm handle whose underlying sql.DB is capped at MaxConns; a
// weighted semaphore fronts acquisition so that waiting for a free slot is
// bounded and fails fast with a pool-exhausted error instead of queuing
// indefinitely.
//
// Connections are not validated per use; a stale connection surfaces as a
// query failure to the caller, not to the pool.
type Pool struct {
	db             *gorm.DB
	slots          *semaphore.Weighted
	acquireTimeout time.Duration
	logger         zerolog.Logger
	closed         chan struct{}
	closeOnce      sync.Once
}

// Open dials the configured database and wraps it in a Pool. The driver is
// selected by cfg.Type; mysql carries the configured charset in its DSN.
func Open(cfg config.DatabaseConfig, opts ...gorm.Option) (*Pool, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.Charset)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	default:
		return nil, errs.BadRequest(fmt.Sprintf("unsupported DB_TYPE: %s", cfg.Type))
	}

	db, err := gorm.Open(dialector, opts...)
	if err != nil {
		return nil, errs.NewDatabaseError("connect to", "database", err)
	}

	return NewPool(db, cfg)
}

// NewPool wraps an already opened gorm handle in a bounded pool. Callers that
// open the handle themselves (tests, embedded databases) use this directly.
func NewPool(db *gorm.DB, cfg config.DatabaseConfig) (*Pool, error) {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.NewDatabaseError("access", "database handle", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(cfg.MinIdleConns)

	pool := &Pool{
		db:             db,
		slots:          semaphore.NewWeighted(int64(maxConns)),
		acquireTimeout: cfg.AcquireTimeout,
		logger:         log.With().Str("component", "connectionPool").Logger(),
		closed:         make(chan struct{}),
	}

	if cfg.MinIdleConns > 0 {
		pool.prewarm(cfg.MinIdleConns)
	}

	pool.logger.Info().
		Int("maxConns", maxConns).
		Int("minIdleConns", cfg.MinIdleConns).
		Dur("acquireTimeout", pool.acquireTimeout).
		Msg("connection pool initialized")

	return pool, nil
}

// prewarm opens n idle connections so the first requests do not pay the dial
// cost. Failures are logged and ignored; the pool still works without warm
// connections.
func (p *Pool) prewarm(n int) {
	sqlDB, err := p.db.DB()
	if err != nil {
		return
	}

	conns := make([]*sql.Conn, 0, n)
	for i := 0; i < n; i++ {
		conn, err := sqlDB.Conn(context.Background())
		if err != nil {
			p.logger.Warn().Err(err).Msg("failed to pre-warm connection")
			break
		}
		conns = append(conns, conn)
	}
	for _, conn := range conns {
		conn.Close()
	}
}

// Acquire reserves a pool slot, blocking for at most the configured acquire
// timeout. The returned release function must be called exactly once; it
// returns the slot unconditionally, even when the caller's work failed.
func (p *Pool) Acquire(ctx context.Context, operation string) (release func(), err error) {
	select {
	case <-p.closed:
		return nil, errs.NewPoolClosedError(operation)
	default:
	}

	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	if err := p.slots.Acquire(acquireCtx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			p.logger.Warn().Str("operation", operation).Msg("connection acquisition timed out")
			return nil, errs.NewPoolExhaustedError(operation)
		}
		return nil, errs.NewDatabaseError("acquire connection for", operation, err)
	}

	return func() { p.slots.Release(1) }, nil
}

// WithTransaction runs fn inside one transaction on one pooled connection.
// It commits when fn returns nil and rolls back when fn returns an error or
// panics; fn's error is propagated unmodified. The pool slot is released on
// every exit path.
func (p *Pool) WithTransaction(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	release, err := p.Acquire(ctx, operation)
	if err != nil {
		return err
	}
	defer release()

	return p.db.WithContext(ctx).Transaction(fn)
}

// WithConnection runs fn against one pooled connection without opening a
// transaction. Read paths use this so they obey the same bounded-acquire
// rules as mutations.
func (p *Pool) WithConnection(ctx context.Context, operation string, fn func(conn *gorm.DB) error) error {
	release, err := p.Acquire(ctx, operation)
	if err != nil {
		return err
	}
	defer release()

	return fn(p.db.WithContext(ctx))
}

// Ping verifies the underlying database is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts the pool down. In-flight work keeps its slot; new acquisitions
// fail fast with a pool-closed error.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })

	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	p.logger.Info().Msg("closing connection pool")
	return sqlDB.Close()
}
