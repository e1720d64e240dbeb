package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/classroom-backend/internal/data/db"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// executeWrite runs fn in one transaction and reports the outcome to hooks.
// Errors are returned unchanged so callers can still inspect them.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	err := deps.Runner.InTx(ctx, fn)

	status := "success"
	if err != nil {
		status = "failure"
		if db.IsUniqueViolation(err) {
			status = "conflict"
			deps.Hooks.IncConflict(op)
		}
		deps.Log.Debug("aggregate write failed", "op", op, "status", status, "error", err)
	}
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return err
}
