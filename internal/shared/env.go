package shared

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded in order; values already present in the environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnv loads environment variables from the given .env files, skipping files that do not exist.
//
// With no arguments [DefaultEnvFiles] are used.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}

	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// DatabaseURL returns the DATABASE_URL connection string from the environment.
func DatabaseURL() string {
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}
