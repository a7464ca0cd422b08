package sandbox

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/reusee/mailx/storages"
	"go.starlark.net/starlark"
)

// HandleName is the only binding the executor adds to a script's namespace.
const HandleName = "db"

var ErrHandleClosed = errors.New("db handle is closed")

// Handle exposes one transaction to a script as the db value.
type Handle struct {
	ctx    context.Context
	tx     storages.Tx
	closed bool
}

var _ starlark.HasAttrs = new(Handle)

func NewHandle(ctx context.Context, tx storages.Tx) *Handle {
	return &Handle{
		ctx: ctx,
		tx:  tx,
	}
}

// Close detaches the handle from its transaction. The transaction itself is
// ended by the executor.
func (h *Handle) Close() {
	h.closed = true
}

func (h *Handle) String() string {
	return "<db>"
}

func (h *Handle) Type() string {
	return "db"
}

func (h *Handle) Freeze() {}

func (h *Handle) Truth() starlark.Bool {
	return starlark.True
}

func (h *Handle) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: db")
}

type handleMethod func(h *Handle, query string, args []any) (starlark.Value, error)

var handleMethods = map[string]handleMethod{
	"query":       (*Handle).query,
	"query_one":   (*Handle).queryOne,
	"query_dicts": (*Handle).queryDicts,
	"columns":     (*Handle).columns,
	"execute":     (*Handle).execute,
}

func (h *Handle) AttrNames() []string {
	return []string{"columns", "execute", "query", "query_dicts", "query_one", "summary"}
}

func (h *Handle) Attr(name string) (starlark.Value, error) {
	if name == "summary" {
		return starlark.NewBuiltin("db.summary", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			if h.closed {
				return nil, ErrHandleClosed
			}
			summary, err := storages.SummaryOf(h.ctx, h.tx)
			if err != nil {
				return nil, err
			}
			return ToValue(summary)
		}), nil
	}

	method, ok := handleMethods[name]
	if !ok {
		return nil, nil
	}
	return starlark.NewBuiltin("db."+name, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("%s: missing sql argument", fn.Name())
		}
		query, ok := starlark.AsString(args[0])
		if !ok {
			return nil, fmt.Errorf("%s: sql must be a string, not %s", fn.Name(), args[0].Type())
		}
		params := make([]any, 0, len(args)-1)
		for i, arg := range args[1:] {
			param, err := FromValue(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", fn.Name(), i+1, err)
			}
			params = append(params, param)
		}
		if h.closed {
			return nil, ErrHandleClosed
		}
		return method(h, query, params)
	}), nil
}

func (h *Handle) scan(query string, args []any, limit int, fn func(columns []string, row []any) error) error {
	rows, err := h.tx.Query(h.ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	n := 0
	for rows.Next() {
		row := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		if err := fn(columns, row); err != nil {
			return err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	return rows.Err()
}

func tupleOf(row []any) (starlark.Tuple, error) {
	tuple := make(starlark.Tuple, len(row))
	for i, col := range row {
		v, err := ToValue(col)
		if err != nil {
			return nil, err
		}
		tuple[i] = v
	}
	return tuple, nil
}

func (h *Handle) query(query string, args []any) (starlark.Value, error) {
	var rows []starlark.Value
	if err := h.scan(query, args, 0, func(_ []string, row []any) error {
		tuple, err := tupleOf(row)
		if err != nil {
			return err
		}
		rows = append(rows, tuple)
		return nil
	}); err != nil {
		return nil, err
	}
	return starlark.NewList(rows), nil
}

func (h *Handle) queryOne(query string, args []any) (starlark.Value, error) {
	var ret starlark.Value = starlark.None
	if err := h.scan(query, args, 1, func(_ []string, row []any) error {
		tuple, err := tupleOf(row)
		if err != nil {
			return err
		}
		ret = tuple
		return nil
	}); err != nil {
		return nil, err
	}
	return ret, nil
}

func (h *Handle) queryDicts(query string, args []any) (starlark.Value, error) {
	var rows []starlark.Value
	if err := h.scan(query, args, 0, func(columns []string, row []any) error {
		d := starlark.NewDict(len(columns))
		for i, col := range row {
			if slices.Contains(storages.ListColumns, columns[i]) {
				col = splitColumn(col)
			}
			v, err := ToValue(col)
			if err != nil {
				return err
			}
			if err := d.SetKey(starlark.String(columns[i]), v); err != nil {
				return err
			}
		}
		rows = append(rows, d)
		return nil
	}); err != nil {
		return nil, err
	}
	return starlark.NewList(rows), nil
}

// splitColumn turns a comma-joined list column into a list. NULL stays None.
func splitColumn(col any) any {
	switch col := col.(type) {
	case string:
		return storages.SplitList(col)
	case []byte:
		return storages.SplitList(string(col))
	}
	return col
}

func (h *Handle) columns(query string, args []any) (starlark.Value, error) {
	rows, err := h.tx.Query(h.ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	return ToValue(columns)
}

func (h *Handle) execute(query string, args []any) (starlark.Value, error) {
	res, err := h.tx.Exec(h.ctx, query, args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt64(n), nil
}
