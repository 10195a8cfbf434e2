package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	appDirName = "mealplan"
	dbFileName = "mealplan.db"
)

// EnvDBPath overrides the database location when set.
const EnvDBPath = "MEALPLAN_DB"

// LoadEnv pulls a .env file from the working directory into the process
// environment if one exists. Missing files are fine; real variables win
// over file values.
func LoadEnv() {
	_ = godotenv.Load()
}

func DefaultDBPath() (string, error) {
	if fromEnv := os.Getenv(EnvDBPath); fromEnv != "" {
		return fromEnv, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
