package render

import (
	"fmt"
	"strings"

	"github.com/reusee/starlarkutil"
	starlarkjson "go.starlark.net/lib/json"
	starlarkmath "go.starlark.net/lib/math"
	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
)

// Namespace returns the builtins scripts use to present results.
// Each call returns a fresh dict.
func (r *Renderer) Namespace() starlark.StringDict {
	return starlark.StringDict{
		"title":    starlarkutil.MakeFunc("title", r.Title),
		"header":   starlarkutil.MakeFunc("header", r.Header),
		"markdown": starlarkutil.MakeFunc("markdown", r.Markdown),
		"info":     starlarkutil.MakeFunc("info", r.Info),
		"success":  starlarkutil.MakeFunc("success", r.Success),
		"warning":  starlarkutil.MakeFunc("warning", r.Warning),
		"error":    starlarkutil.MakeFunc("error", r.Error),
		"code":     starlarkutil.MakeFunc("code", r.Code),
		"write":    starlark.NewBuiltin("write", r.write),
		"metric":   starlark.NewBuiltin("metric", r.metric),
		"table":    starlark.NewBuiltin("table", r.table),
		"json":     starlark.NewBuiltin("json", r.json),
		"time":     starlarktime.Module,
		"math":     starlarkmath.Module,
	}
}

// Print adapts the renderer to starlark's print.
func (r *Renderer) Print(thread *starlark.Thread, msg string) {
	r.Write(msg)
}

func elements(iterable starlark.Iterable) []starlark.Value {
	iter := iterable.Iterate()
	defer iter.Done()
	var ret []starlark.Value
	var v starlark.Value
	for iter.Next(&v) {
		ret = append(ret, v)
	}
	return ret
}

// display renders a value the way a user reads it: strings unquoted,
// None as empty.
func display(v starlark.Value) string {
	switch v := v.(type) {
	case starlark.String:
		return string(v)
	case starlark.NoneType:
		return ""
	}
	return v.String()
}

func (r *Renderer) write(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), nil, kwargs, 0); err != nil {
		return nil, err
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, display(arg))
	}
	r.Write(strings.Join(parts, " "))
	return starlark.None, nil
}

func (r *Renderer) metric(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var label string
	var value starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "label", &label, "value", &value); err != nil {
		return nil, err
	}
	r.Metric(label, display(value))
	return starlark.None, nil
}

func (r *Renderer) table(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var rowsValue starlark.Iterable
	var columnsValue starlark.Value = starlark.None
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "rows", &rowsValue, "columns?", &columnsValue); err != nil {
		return nil, err
	}

	var columns []string
	if columnsValue != starlark.None {
		iterable, ok := columnsValue.(starlark.Iterable)
		if !ok {
			return nil, fmt.Errorf("%s: columns must be a list, not %s", fn.Name(), columnsValue.Type())
		}
		for _, v := range elements(iterable) {
			columns = append(columns, display(v))
		}
	}

	var rows [][]string
	for _, v := range elements(rowsValue) {
		switch row := v.(type) {

		case *starlark.Dict:
			if columns == nil {
				for _, key := range row.Keys() {
					columns = append(columns, display(key))
				}
			}
			cells := make([]string, len(columns))
			for i, column := range columns {
				cell, found, err := row.Get(starlark.String(column))
				if err != nil {
					return nil, err
				}
				if found {
					cells[i] = display(cell)
				}
			}
			rows = append(rows, cells)

		case starlark.Iterable:
			var cells []string
			for _, cell := range elements(row) {
				cells = append(cells, display(cell))
			}
			rows = append(rows, cells)

		default:
			rows = append(rows, []string{display(v)})
		}
	}

	r.Table(columns, rows)
	return starlark.None, nil
}

func (r *Renderer) json(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value); err != nil {
		return nil, err
	}
	encoded, err := starlark.Call(thread, starlarkjson.Module.Members["encode"], starlark.Tuple{value}, nil)
	if err != nil {
		return nil, err
	}
	indented, err := starlark.Call(thread, starlarkjson.Module.Members["indent"], starlark.Tuple{encoded}, []starlark.Tuple{
		{starlark.String("indent"), starlark.String("  ")},
	})
	if err != nil {
		return nil, err
	}
	r.Code(display(indented))
	return starlark.None, nil
}
