package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./higlint.db"
	} `yaml:"database"`

	Validation struct {
		Sources  []string `yaml:"sources"` // ["./scenes"]
		Parallel bool     `yaml:"parallel"`
		Workers  int      `yaml:"workers"`
		FailOn   string   `yaml:"fail_on"` // "error"|"warning"
	} `yaml:"validation"`

	Rules struct {
		Packs             []string `yaml:"packs"`    // extra YAML rule packs
		Disabled          []string `yaml:"disabled"` // rule IDs to skip
		SeverityThreshold string   `yaml:"severity_threshold"`
	} `yaml:"rules"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
		Format string `yaml:"format"`  // "json"|"text"|"html"
	} `yaml:"reporting"`

	Server struct {
		Addr           string   `yaml:"addr"` // ":8080"
		SessionHours   int      `yaml:"session_hours"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./higlint.db"
	c.Validation.Workers = 4
	c.Validation.FailOn = "error"
	c.Rules.SeverityThreshold = "INFO"
	c.Reporting.OutDir = "./reports"
	c.Reporting.Format = "text"
	c.Server.Addr = ":8080"
	c.Server.SessionHours = 12
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("HIGLINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("HIGLINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("HIGLINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("HIGLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HIGLINT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("HIGLINT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Validation.Workers = n
		}
	}
	return c, nil
}
