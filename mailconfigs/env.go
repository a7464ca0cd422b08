package mailconfigs

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const dataDirEnv = "MAILX_DIR"

func defaultDataDir() (string, error) {
	if dir := os.Getenv(dataDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mailx"), nil
}

// LoadEnv loads .env from the data dir, then from the working directory.
// Variables already set are never overridden, so the first file wins.
func LoadEnv() (loaded []string, err error) {
	var candidates []string
	if dir, err := defaultDataDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	if dir, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
