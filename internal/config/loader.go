package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "NOMAD_"

	envStoreDSN  = EnvPrefix + "STORE_DSN"
	envStorePath = EnvPrefix + "STORE_DB_PATH"
	envRedisURL  = EnvPrefix + "REDIS_URL"
)

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are ignored; variables that are already set are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}

	return nil
}

// LoadFromFile loads configuration from a file, auto-detecting the format by extension.
// Supported formats: .yaml, .yml, .json, .toml
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return LoadFromYAML(path)
	case ".json":
		return LoadFromJSON(path)
	case ".toml":
		return LoadFromTOML(path)
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return processConfig(&cfg)
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	return processConfig(&cfg)
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	var cfg pkgconfig.Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	return processConfig(&cfg)
}

// applyEnvOverrides replaces secrets and endpoints with values from the environment.
// RPC urls are overridden per domain with NOMAD_RPC_URL_<domain id>.
func applyEnvOverrides(cfg *pkgconfig.Config) {
	if v := os.Getenv(envStoreDSN); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv(envStorePath); v != "" {
		cfg.Store.DB.Path = v
	}
	if v := os.Getenv(envRedisURL); v != "" {
		cfg.Pool.RedisURL = v
	}

	for i := range cfg.Domains {
		if v := os.Getenv(DomainEnvKey(cfg.Domains[i].ID)); v != "" {
			cfg.Domains[i].RPCURL = v
		}
	}
}

// processConfig applies env overrides and defaults, then validates the configuration.
func processConfig(cfg *pkgconfig.Config) (*pkgconfig.Config, error) {
	applyEnvOverrides(cfg)

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DomainEnvKey returns the variable overriding the RPC url of a domain.
func DomainEnvKey(domain uint32) string {
	return EnvPrefix + "RPC_URL_" + strconv.FormatUint(uint64(domain), 10)
}
