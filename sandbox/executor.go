package sandbox

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime/debug"

	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
	"github.com/reusee/mailx/scripts"
	"github.com/reusee/mailx/storages"
	"go.starlark.net/starlark"
)

// Opener provides the transaction a script runs in.
type Opener interface {
	Begin(ctx context.Context) (storages.Tx, error)
}

// Outcome is the result of one run. Err is nil on success.
type Outcome struct {
	Err error
	// Message is display-safe; it carries the Starlark backtrace when available.
	Message string
	Script  string
	Globals starlark.StringDict
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

type Executor struct {
	namespace starlark.StringDict
	maxSteps  uint64
	print     func(thread *starlark.Thread, msg string)
	logger    logs.Logger
}

type ExecutorOption func(*Executor)

func WithMaxSteps(n uint64) ExecutorOption {
	return func(e *Executor) {
		e.maxSteps = n
	}
}

func WithPrint(fn func(thread *starlark.Thread, msg string)) ExecutorOption {
	return func(e *Executor) {
		e.print = fn
	}
}

// NewExecutor returns an executor whose scripts see namespace plus the db handle.
// namespace itself is never modified.
func NewExecutor(namespace starlark.StringDict, logger logs.Logger, options ...ExecutorOption) *Executor {
	e := &Executor{
		namespace: namespace,
		logger:    logger,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

type NewExecutorFunc func(namespace starlark.StringDict, options ...ExecutorOption) *Executor

func (Module) NewExecutor(
	maxSteps mailconfigs.MaxSteps,
	logger logs.Logger,
) NewExecutorFunc {
	return func(namespace starlark.StringDict, options ...ExecutorOption) *Executor {
		return NewExecutor(
			namespace,
			logger,
			append([]ExecutorOption{WithMaxSteps(uint64(maxSteps))}, options...)...,
		)
	}
}

// Run executes source to completion in a transaction from opener. The
// transaction is committed if the script finishes and rolled back otherwise.
// Script errors and panics are reported in the Outcome, never raised.
func (e *Executor) Run(ctx context.Context, source string, opener Opener) (outcome Outcome) {
	outcome.Script = source

	tx, err := opener.Begin(ctx)
	if err != nil {
		outcome.Err = err
		outcome.Message = err.Error()
		return
	}

	handle := NewHandle(ctx, tx)
	defer func() {
		handle.Close()
		if p := recover(); p != nil {
			e.logger.ErrorContext(ctx, "script panic",
				"panic", p,
				"stack", string(debug.Stack()),
			)
			outcome.Err = fmt.Errorf("panic: %v", p)
			outcome.Message = outcome.Err.Error()
		}
		if outcome.Err != nil {
			if err := tx.Rollback(); err != nil {
				e.logger.WarnContext(ctx, "rollback", "error", err)
			}
			return
		}
		if err := tx.Commit(); err != nil {
			outcome.Err = fmt.Errorf("commit: %w", err)
			outcome.Message = outcome.Err.Error()
		}
	}()

	namespace := maps.Clone(e.namespace)
	if namespace == nil {
		namespace = make(starlark.StringDict)
	}
	namespace[HandleName] = handle

	thread := &starlark.Thread{
		Name:  "script",
		Print: e.print,
	}
	if e.maxSteps > 0 {
		thread.SetMaxExecutionSteps(e.maxSteps)
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	globals, err := starlark.ExecFileOptions(scripts.FileOptions, thread, scripts.ScriptName, source, namespace)
	outcome.Globals = globals
	if err != nil {
		outcome.Err = err
		outcome.Message = errorMessage(err)
		e.logger.InfoContext(ctx, "script failed",
			"error", err,
		)
	}
	return
}

func errorMessage(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Backtrace()
	}
	return err.Error()
}
