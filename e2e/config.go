package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// ARCHIVE_ADDR is the base URL of a server loaded with fixtures/example.json
	ArchiveAddr string `envconfig:"ARCHIVE_ADDR"`
	// E2E_DEBUG_BODY dumps full response bodies in the test logs
	DebugBody bool `envconfig:"E2E_DEBUG_BODY" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
