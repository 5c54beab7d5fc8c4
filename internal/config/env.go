package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// EnvFiles are the .env files tried, in order, at startup
var EnvFiles = []string{".env", "../.env"}

// LoadDotEnv loads the first existing file from paths into the process
// environment. Variables already set are not overwritten, so the real
// environment still wins over the file. It returns the file loaded, or ""
// when none exists.
func LoadDotEnv(paths ...string) (string, error) {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return "", err
	}
	return "", nil
}
