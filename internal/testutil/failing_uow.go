package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/shutterflow/internal/db"
)

// FailOnNthExecUoW decorates Inner so that the FailOn-th ExecContext inside
// each transaction returns Err. Counting restarts with every transaction and
// reads pass through, so Inner's own rollback handling is what gets tested.
type FailOnNthExecUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &execFault{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type execFault struct {
	db.DBTX
	n      atomic.Int32
	failOn int32
	err    error
}

func (f *execFault) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.n.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
