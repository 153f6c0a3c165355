package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
)

const (
	txMaxAttempts = 5
	txTimeout     = 15 * time.Second
)

// TxFunc is executed within a Firestore transaction. Returning an error
// aborts the transaction; the error surfaces to the caller wrapped as a
// RepositoryError.
type TxFunc func(ctx context.Context, tx *firestore.Transaction) error

// RunTransaction executes fn in a retried Firestore transaction. A timeout
// is applied unless the caller's context already carries a tighter deadline.
func RunTransaction(ctx context.Context, client *firestore.Client, fn TxFunc) error {
	if client == nil {
		return WrapError("transaction", errors.New("firestore: client is nil"))
	}
	if fn == nil {
		return WrapError("transaction", errors.New("firestore: transaction function is nil"))
	}

	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > txTimeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, txTimeout)
		defer cancel()
	}

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(ctx, tx)
	}, firestore.MaxAttempts(txMaxAttempts))

	return WrapError("transaction", err)
}
