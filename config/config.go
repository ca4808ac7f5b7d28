package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs that used to be ambient state:
// listen port, store file path, and the two static asset directories.
type Config struct {
	Port         string
	DataFile     string
	PublicDir    string
	ProtectedDir string
}

// Load reads configuration from the environment, with a best-effort .env file
// for local development. Defaults match the original deployment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:         "3001",
		DataFile:     "./database.json",
		PublicDir:    "./public",
		ProtectedDir: "./private/protected",
	}

	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if file := os.Getenv("DATA_FILE"); file != "" {
		cfg.DataFile = file
	}
	if dir := os.Getenv("PUBLIC_DIR"); dir != "" {
		cfg.PublicDir = dir
	}
	if dir := os.Getenv("PROTECTED_DIR"); dir != "" {
		cfg.ProtectedDir = dir
	}

	return cfg, nil
}
