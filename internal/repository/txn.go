package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TxnRunner executes a unit of work inside a database transaction. The
// runner owns the commit/abort decision: fn returning nil commits,
// anything else aborts. Callers must do post-commit work (cache
// flushes) only after Run returns nil.
type TxnRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

type MongoTxnRunner struct {
	client *mongo.Client
	logger *zap.Logger
}

func NewMongoTxnRunner(client *mongo.Client, logger *zap.Logger) *MongoTxnRunner {
	return &MongoTxnRunner{
		client: client,
		logger: logger.Named("MongoTxnRunner"),
	}
}

func (t *MongoTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		t.logger.Error("Failed to start mongo session", zap.Error(err))
		return err
	}
	defer session.EndSession(ctx)

	// WithTransaction aborts on error and commits on success on every
	// exit path, and tolerates abort being called on an already
	// finished transaction.
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
