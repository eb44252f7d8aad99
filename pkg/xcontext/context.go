package xcontext

import (
	"context"
	"net/http"

	"github.com/stayloft-lab/backend/config"
	"github.com/stayloft-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey          struct{}
	transactionKey struct{}
	loggerKey      struct{}
	configsKey     struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
)

// WithDB returns a copy of parent in which the database is available via DB.
func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If a transaction has been opened
// with WithDBTransaction, the transaction is returned instead.
func DB(ctx context.Context) *gorm.DB {
	if tx := currentTransaction(ctx); tx != nil {
		return tx.tx
	}

	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}

	panic("no database in context")
}

type transaction struct {
	tx   *gorm.DB
	done bool
}

func currentTransaction(ctx context.Context) *transaction {
	if tx, ok := ctx.Value(transactionKey{}).(*transaction); ok && !tx.done {
		return tx
	}

	return nil
}

// WithDBTransaction begins a database transaction and returns a context whose
// DB method resolves to that transaction until it is committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, transactionKey{}, &transaction{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the transaction opened by WithDBTransaction.
func WithCommitDBTransaction(ctx context.Context) {
	if tx := currentTransaction(ctx); tx != nil {
		tx.tx.Commit()
		tx.done = true
	}
}

// WithRollbackDBTransaction rollbacks the current transaction. It is a no-op
// after WithCommitDBTransaction, so it is safe to defer.
func WithRollbackDBTransaction(ctx context.Context) {
	if tx := currentTransaction(ctx); tx != nil {
		tx.tx.Rollback()
		tx.done = true
	}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return cfg
	}

	return config.Configs{}
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(httpRequestKey{}).(*http.Request); ok {
		return r
	}

	return nil
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	if w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter); ok {
		return w
	}

	return nil
}
