package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

var NoTX Tx

// TransactionManager executes a function within a database transaction,
// passing the underlying transaction handle via `tx`.
//
// Keeps use-case interfaces clean: repositories accept a Tx and detect a
// live transaction implementation-side; nil means the non-transactional
// path. The concrete type is infra-defined (pgx.Tx for Postgres).
//
// Every mutation that touches both a job row and its assignment rows MUST
// run inside one WithTx call so a crash cannot leave an assignment without
// its corresponding job state.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
