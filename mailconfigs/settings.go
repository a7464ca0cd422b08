package mailconfigs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/reusee/mailx/cmds"
	"github.com/reusee/mailx/configs"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/modes"
	"github.com/reusee/mailx/vars"
)

var (
	dbPathFlag  = cmds.Var[string]("-db")
	dataDirFlag = cmds.Var[string]("-dir")
)

type DataDir string

func (Module) DataDir(
	loader configs.Loader,
	mode modes.Mode,
	t *testing.T,
	logger logs.Logger,
) DataDir {
	if mode == modes.ModeDevelopment && t != nil {
		return DataDir(t.TempDir())
	}
	dir := vars.FirstNonZero(
		*dataDirFlag,
		configs.First[string](loader, "data_dir"),
	)
	if dir == "" {
		var err error
		dir, err = defaultDataDir()
		if err != nil {
			panic(err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}
	logger.Info("data dir", "path", dir)
	return DataDir(dir)
}

type DBPath string

func (Module) DBPath(
	loader configs.Loader,
	dir DataDir,
) DBPath {
	return vars.FirstNonZero(
		DBPath(*dbPathFlag),
		configs.First[DBPath](loader, "db_path"),
		DBPath(filepath.Join(string(dir), "mailx.db")),
	)
}

// LogPath is the append-only JSONL session log of backend calls.
type LogPath string

func (Module) LogPath(
	loader configs.Loader,
	dir DataDir,
) LogPath {
	return vars.FirstNonZero(
		configs.First[LogPath](loader, "log_path"),
		LogPath(filepath.Join(string(dir), "logs.jsonl")),
	)
}

type UserEmail string

func (Module) UserEmail(
	loader configs.Loader,
	logger logs.Logger,
) UserEmail {
	email := vars.FirstNonZero(
		configs.First[UserEmail](loader, "user_email"),
		UserEmail(os.Getenv("USER_EMAIL")),
	)
	if email == "" {
		logger.Warn("USER_EMAIL is not set; questions about \"me\" cannot be resolved")
	}
	return email
}

// ExcludeTerms are the subject terms filtered out of ordered message queries.
type ExcludeTerms []string

var DefaultExcludeTerms = ExcludeTerms{
	"marketing",
	"newsletter",
	"promotion",
	"offer",
}

// ExcludeTerms is exclude_terms from the first config that sets it, or the
// defaults, followed by extra_exclude_terms from every config file.
func (Module) ExcludeTerms(
	loader configs.Loader,
) ExcludeTerms {
	terms := slices.Clone(DefaultExcludeTerms)
	if set := configs.First[[]string](loader, "exclude_terms"); set != nil {
		terms = ExcludeTerms(set)
	}
	for extra := range configs.All[[]string](loader, "extra_exclude_terms") {
		for _, term := range extra {
			if term != "" && !slices.Contains(terms, term) {
				terms = append(terms, term)
			}
		}
	}
	return terms
}

// MaxSteps bounds the interpreter steps of one script. Zero means unbounded.
type MaxSteps uint64

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(configs.First[uint64](loader, "max_steps"))
}
