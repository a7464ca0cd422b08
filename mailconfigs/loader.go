package mailconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/mailx/configs"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/modes"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"mailx.cue",
	".mailx.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {
	if mode == modes.ModeDevelopment {
		return configs.NewLoader(nil, schema)
	}

	var paths []string
	addDir := func(dir string) {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	// working directory
	if dir, err := os.Getwd(); err == nil {
		addDir(dir)
	}
	// default data dir
	if dir, err := defaultDataDir(); err == nil {
		addDir(dir)
	}
	// user config dir
	if dir, err := os.UserConfigDir(); err == nil {
		addDir(dir)
	}
	// system wide
	addDir("/etc")

	if len(paths) > 0 {
		logger.Info("config files", "paths", paths)
	}

	return configs.NewLoader(paths, schema)
}

// Schema is the CUE schema config files are validated against.
func Schema() string {
	return schema
}
