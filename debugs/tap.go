package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/mailx/cmds"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/sandbox"
	"github.com/reusee/mailx/scripts"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

var tapFlag = cmds.Switch("-tap")

// Tap opens a Starlark REPL over globals when -tap is given, and does
// nothing otherwise. It returns when the REPL reads EOF.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		if !*tapFlag {
			return
		}
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict, len(globals))
		for _, name := range names {
			value, err := sandbox.ToValue(globals[name])
			if err != nil {
				logger.WarnContext(ctx, "tap: skip global",
					"name", name,
					"error", err,
				)
				continue
			}
			mappings[name] = value
		}

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(scripts.FileOptions, thread, mappings)
	}
}
