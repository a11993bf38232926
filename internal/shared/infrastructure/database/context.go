package database

import "context"

type txKey struct{}

type txInfo struct {
	tx    Transaction
	owned bool
}

// WithTx stores transaction info in the context. owned marks the unit of
// work that started the transaction and is responsible for finishing it.
func WithTx(ctx context.Context, tx Transaction, owned bool) context.Context {
	return context.WithValue(ctx, txKey{}, txInfo{tx: tx, owned: owned})
}

// TxFromContext extracts the transaction from the context, or nil.
func TxFromContext(ctx context.Context) Transaction {
	info, ok := ctx.Value(txKey{}).(txInfo)
	if !ok || info.tx == nil {
		return nil
	}
	return info.tx
}

// ExecutorFromContext returns the transaction if present, otherwise the
// connection. Repositories use this to transparently join transactions.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return conn
}
