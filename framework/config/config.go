package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct, registered in the
// container by modules.ConfigModule.
type Config struct {
	App      AppConfig
	Log      LogConfig
	Services ServicesConfig
}

type AppConfig struct {
	Name string
	Env  string // local | production | testing
	Mode string // console | web
	Port string
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // FormatJSON | FormatConsole
}

// Log output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ServicesConfig holds settings consumed by the example services.
type ServicesConfig struct {
	MannersLocale string // english | french | spanish
	SequenceCount int
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name: env("APP_NAME", "Autowire"),
			Env:  env("APP_ENV", "local"),
			Mode: env("APP_MODE", "console"),
			Port: env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", FormatConsole),
		},
		Services: ServicesConfig{
			MannersLocale: env("MANNERS_LOCALE", "english"),
			SequenceCount: GetInt("SEQUENCE_COUNT", 10),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// IsWeb reports whether the application should serve HTTP.
func (c *Config) IsWeb() bool { return c.App.Mode == "web" }

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
