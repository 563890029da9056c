// Package config builds the process configuration exactly once at
// startup. Settings (mode, batch size, paths) come from a TOML file;
// credentials come from the environment, with an optional .env file
// for development. The resulting Config value is validated before any
// component is constructed and then passed by reference into each
// constructor. Nothing in this package is loaded at import time.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// Mode selects the storage backends.
type Mode string

const (
	// ModeRemote uses PostgreSQL for metadata and the dataset hub for
	// blobs. Both require credentials.
	ModeRemote Mode = "remote"

	// ModeLocal uses an embedded SQLite file and the local filesystem.
	// No credentials needed.
	ModeLocal Mode = "local"
)

// Defaults applied when the settings file does not say otherwise.
const (
	DefaultBatchSize = 100
	DefaultPageSize  = 50
	DefaultHubBase   = "https://huggingface.co"
)

// Config is the complete, validated process configuration.
type Config struct {
	// Mode selects remote or local backends.
	Mode Mode

	// BatchSize is the ingestion batch capacity.
	BatchSize int

	// PageSize is the upstream search page size.
	PageSize int

	// DataDir is the root for local-mode state (index file, blobs).
	DataDir string

	// DatabaseURL is the PostgreSQL connection string (remote mode).
	DatabaseURL string

	// HubToken authenticates against the dataset hub (remote mode).
	HubToken string

	// HubRepoID is the dataset repository, "owner/name" (remote mode).
	HubRepoID string

	// HubBaseURL is the dataset hub endpoint. Overridable for tests.
	HubBaseURL string
}

// settingsFile mirrors the TOML settings file layout.
type settingsFile struct {
	Mode      string `toml:"mode"`
	BatchSize int    `toml:"batch_size"`
	PageSize  int    `toml:"page_size"`
	DataDir   string `toml:"data_dir"`
}

// Load builds a Config from the settings file at path (or the default
// location when path is empty) and the environment. Missing settings
// file is fine; missing credentials are caught later by Validate.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Mode:       ModeRemote,
		BatchSize:  DefaultBatchSize,
		PageSize:   DefaultPageSize,
		HubBaseURL: DefaultHubBase,
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".emsal")
		path = filepath.Join(cfg.DataDir, "config.toml")
	} else {
		cfg.DataDir = filepath.Dir(path)
	}

	if data, err := os.ReadFile(path); err == nil {
		var sf settingsFile
		if err := toml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
		}
		applySettings(cfg, sf)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	applyEnv(cfg)
	return cfg, nil
}

func applySettings(cfg *Config, sf settingsFile) {
	if sf.Mode != "" {
		cfg.Mode = Mode(strings.ToLower(sf.Mode))
	}
	if sf.BatchSize > 0 {
		cfg.BatchSize = sf.BatchSize
	}
	if sf.PageSize > 0 {
		cfg.PageSize = sf.PageSize
	}
	if sf.DataDir != "" {
		cfg.DataDir = sf.DataDir
	}
}

func applyEnv(cfg *Config) {
	if mode := os.Getenv("STORAGE_MODE"); mode != "" {
		cfg.Mode = Mode(strings.ToLower(mode))
	}

	// Connection strings get pasted between shells; trim the quoting
	// that tends to come along.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = strings.Trim(strings.TrimSpace(url), `'"`)
	}

	cfg.HubToken = os.Getenv("HUB_TOKEN")
	cfg.HubRepoID = os.Getenv("HUB_REPO_ID")
	if base := os.Getenv("HUB_BASE_URL"); base != "" {
		cfg.HubBaseURL = base
	}
}

// Validate checks the configuration. Local mode always passes; remote
// mode fails fast when any credential is missing, naming all of them.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeLocal:
		return nil
	case ModeRemote:
		// fall through to the credential check
	default:
		return fmt.Errorf("%w: unknown mode %q (want %q or %q)",
			domain.ErrInvalidInput, c.Mode, ModeRemote, ModeLocal)
	}

	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.HubToken == "" {
		missing = append(missing, "HUB_TOKEN")
	}
	if c.HubRepoID == "" {
		missing = append(missing, "HUB_REPO_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// IsMissingCredentials reports whether err is a credential failure.
func IsMissingCredentials(err error) bool {
	return errors.Is(err, domain.ErrMissingCredentials)
}
