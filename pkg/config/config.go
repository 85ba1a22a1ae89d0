package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goran-ethernal/NomadIndexer/internal/common"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"

	PoolBackendMemory = "memory"
	PoolBackendRedis  = "redis"
)

// Config represents the complete configuration of the Nomad indexer.
type Config struct {
	// Domains lists every chain the indexer polls
	Domains []DomainConfig `yaml:"domains" json:"domains" toml:"domains"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`

	// Poller contains settings shared by all domain pollers
	Poller PollerConfig `yaml:"poller" json:"poller" toml:"poller"`

	// Dedup configures the in-memory recent event cache
	Dedup DedupConfig `yaml:"dedup" json:"dedup" toml:"dedup"`

	// Store configures the message store backend
	Store StoreConfig `yaml:"store" json:"store" toml:"store"`

	// Pool configures where out-of-order events wait for their message
	Pool PoolConfig `yaml:"pool" json:"pool" toml:"pool"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`

	// API contains the query API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`
}

// DomainConfig describes one chain and the Nomad contracts deployed on it.
type DomainConfig struct {
	// ID is the Nomad domain identifier
	ID uint32 `yaml:"id" json:"id" toml:"id" validate:"required"`

	// Name is the human readable network name used in logs and metric labels
	Name string `yaml:"name" json:"name" toml:"name" validate:"required"`

	// RPCURL is the JSON-RPC endpoint of the chain
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url" validate:"required,url"`

	// PageSize is the maximum block span of one eth_getLogs call, 0 disables pagination
	PageSize uint64 `yaml:"page_size" json:"page_size" toml:"page_size"`

	// StartBlock is used when no checkpoint exists yet
	StartBlock uint64 `yaml:"start_block" json:"start_block" toml:"start_block"`

	// Finality is the head tag polled up to: finalized, safe or latest (default)
	Finality string `yaml:"finality,omitempty" json:"finality,omitempty" toml:"finality,omitempty" validate:"omitempty,oneof=finalized safe latest"` //nolint:lll

	// Home is the address of the Home contract
	Home string `yaml:"home" json:"home" toml:"home" validate:"required,eth_addr"`

	// BridgeRouter is the address of the BridgeRouter contract, optional
	BridgeRouter string `yaml:"bridge_router,omitempty" json:"bridge_router,omitempty" toml:"bridge_router,omitempty" validate:"omitempty,eth_addr"` //nolint:lll

	// Replicas lists the replicas deployed on this domain, one per remote home
	Replicas []ReplicaConfig `yaml:"replicas,omitempty" json:"replicas,omitempty" toml:"replicas,omitempty" validate:"dive"`

	// RateLimit throttles RPC calls to this domain, optional
	RateLimit *RateLimitConfig `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty" toml:"rate_limit,omitempty"`
}

// ReplicaConfig is a replica contract mirroring the home of Origin.
type ReplicaConfig struct {
	Origin  uint32 `yaml:"origin" json:"origin" toml:"origin" validate:"required"`
	Address string `yaml:"address" json:"address" toml:"address" validate:"required,eth_addr"`
}

// RateLimitConfig expresses a provider budget in compute units per second.
type RateLimitConfig struct {
	// ComputeUnitsPerSecond is the sustained budget, each RPC method has a fixed cost
	ComputeUnitsPerSecond float64 `yaml:"compute_units_per_second" json:"compute_units_per_second" toml:"compute_units_per_second" validate:"gt=0"` //nolint:lll

	// Burst is the bucket size; defaults to the most expensive single call
	Burst int `yaml:"burst" json:"burst" toml:"burst"`
}

// ApplyDefaults sets default values for optional rate limit fields.
func (r *RateLimitConfig) ApplyDefaults() {
	if r.Burst == 0 {
		r.Burst = 75
	}
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the sleep after the first failure, doubled after each further failure
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff caps a single sleep, 0 means uncapped
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 8
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(2 * time.Second)
	}
}

// Validate checks if the retry configuration is valid.
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if r.MaxBackoff.Duration != 0 && r.MaxBackoff.Duration < r.InitialBackoff.Duration {
		return fmt.Errorf("max_backoff must not be lower than initial_backoff")
	}
	return nil
}

// PollerConfig configures the per-domain polling loop.
type PollerConfig struct {
	// Interval is the pause between two indexing cycles
	Interval common.Duration `yaml:"interval" json:"interval" toml:"interval"`

	// TimestampSkew is subtracted from home and bridge-send event timestamps
	TimestampSkew common.Duration `yaml:"timestamp_skew" json:"timestamp_skew" toml:"timestamp_skew"`

	// FailureWindow is the span of the rolling RPC failure counter
	FailureWindow common.Duration `yaml:"failure_window" json:"failure_window" toml:"failure_window"`

	// SkipReceipts disables fetching receipts, gas used is then recorded as zero
	SkipReceipts bool `yaml:"skip_receipts" json:"skip_receipts" toml:"skip_receipts"`

	// SkipReplay disables feeding stored events to the processor on startup
	SkipReplay bool `yaml:"skip_replay" json:"skip_replay" toml:"skip_replay"`
}

// ApplyDefaults sets default values for poller configuration.
func (p *PollerConfig) ApplyDefaults() {
	if p.Interval.Duration == 0 {
		p.Interval = common.NewDuration(5 * time.Second) //nolint:mnd
	}
	if p.FailureWindow.Duration == 0 {
		p.FailureWindow = common.NewDuration(60 * time.Minute) //nolint:mnd
	}
	// TimestampSkew defaults to 0 (zero value)
}

// DedupConfig configures the recent event cache.
type DedupConfig struct {
	// Retention is how long an untouched message hash stays in the cache
	Retention common.Duration `yaml:"retention" json:"retention" toml:"retention"`

	// CleanEvery is the number of lookups between two eviction sweeps
	CleanEvery int `yaml:"clean_every" json:"clean_every" toml:"clean_every"`

	// MaxEntries caps the cached message hashes, the least recently touched is evicted first
	MaxEntries int `yaml:"max_entries" json:"max_entries" toml:"max_entries"`
}

// ApplyDefaults sets default values for the dedup cache.
func (d *DedupConfig) ApplyDefaults() {
	if d.Retention.Duration == 0 {
		d.Retention = common.NewDuration(2 * time.Hour) //nolint:mnd
	}
	if d.CleanEvery == 0 {
		d.CleanEvery = 20
	}
	if d.MaxEntries == 0 {
		d.MaxEntries = 100_000
	}
}

// StoreConfig selects and configures the message store backend.
type StoreConfig struct {
	// Driver is "sqlite" or "postgres"
	Driver string `yaml:"driver" json:"driver" toml:"driver"`

	// DB is the SQLite configuration, used with the sqlite driver
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// DSN is the PostgreSQL connection string, used with the postgres driver
	DSN string `yaml:"dsn,omitempty" json:"dsn,omitempty" toml:"dsn,omitempty"`

	// UpdateConcurrency caps simultaneous message updates
	UpdateConcurrency int `yaml:"update_concurrency" json:"update_concurrency" toml:"update_concurrency"`
}

// ApplyDefaults sets default values for the store configuration.
func (s *StoreConfig) ApplyDefaults() {
	if s.Driver == "" {
		s.Driver = StoreDriverSQLite
	}
	if s.UpdateConcurrency == 0 {
		s.UpdateConcurrency = 10
	}
	s.DB.ApplyDefaults()
}

// Validate checks if the store configuration is valid.
func (s *StoreConfig) Validate() error {
	if s.UpdateConcurrency < 1 {
		return fmt.Errorf("update_concurrency must be at least 1")
	}

	switch s.Driver {
	case StoreDriverSQLite:
		if s.DB.Path == "" {
			return fmt.Errorf("db.path is required for the sqlite driver")
		}
		return s.DB.Validate()
	case StoreDriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("driver must be one of: sqlite, postgres")
	}

	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
}

// Validate checks the SQLite pragmas.
func (d *DatabaseConfig) Validate() error {
	if !slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("db.journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}
	if !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("db.synchronous must be one of: FULL, NORMAL, OFF")
	}
	return nil
}

// PoolConfig configures the pending event pool.
type PoolConfig struct {
	// Backend is "memory" or "redis"
	Backend string `yaml:"backend" json:"backend" toml:"backend"`

	// RedisURL is the redis connection URL, used with the redis backend
	RedisURL string `yaml:"redis_url,omitempty" json:"redis_url,omitempty" toml:"redis_url,omitempty"`

	// KeyPrefix namespaces the redis keys
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix" toml:"key_prefix"`

	// Retention is how long a parked event waits for its message before it is dropped
	Retention common.Duration `yaml:"retention" json:"retention" toml:"retention"`

	// MaxEntries caps the parked keys per event kind of the memory backend
	MaxEntries int `yaml:"max_entries" json:"max_entries" toml:"max_entries"`
}

// ApplyDefaults sets default values for the pool configuration.
func (p *PoolConfig) ApplyDefaults() {
	if p.Backend == "" {
		p.Backend = PoolBackendMemory
	}
	if p.KeyPrefix == "" {
		p.KeyPrefix = "nomad"
	}
	if p.Retention.Duration == 0 {
		p.Retention = common.NewDuration(24 * time.Hour) //nolint:mnd
	}
	if p.MaxEntries == 0 {
		p.MaxEntries = 100_000
	}
}

// Validate checks if the pool configuration is valid.
func (p *PoolConfig) Validate() error {
	switch p.Backend {
	case PoolBackendMemory:
	case PoolBackendRedis:
		if p.RedisURL == "" {
			return fmt.Errorf("redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("backend must be one of: memory, redis")
	}
	if p.Retention.Duration < 0 {
		return fmt.Errorf("retention must not be negative")
	}
	if p.MaxEntries < 0 {
		return fmt.Errorf("max_entries must not be negative")
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components: orchestrator, poller, processor, store, rpc, dedup, pool, api, metrics
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return "info"
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return l.GetDefaultLevel()
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil || l.DefaultLevel == "" {
		return "info"
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" || m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// APIConfig configures the read-only query API.
type APIConfig struct {
	Enabled       bool            `yaml:"enabled" json:"enabled" toml:"enabled"`
	ListenAddress string          `yaml:"listen_address" json:"listen_address" toml:"listen_address"`
	ReadTimeout   common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout  common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout   common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`
	CORS          CORSConfig      `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for the API configuration.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	if c.Retry == nil {
		c.Retry = &RetryConfig{}
	}
	c.Retry.ApplyDefaults()

	for i := range c.Domains {
		if c.Domains[i].RateLimit != nil {
			c.Domains[i].RateLimit.ApplyDefaults()
		}
	}

	c.Poller.ApplyDefaults()
	c.Dedup.ApplyDefaults()
	c.Store.ApplyDefaults()
	c.Pool.ApplyDefaults()

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}

	if c.API != nil {
		c.API.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Domains) == 0 {
		return fmt.Errorf("at least one domain must be configured")
	}

	validate := validator.New()
	seen := make(map[uint32]struct{}, len(c.Domains))
	for i, d := range c.Domains {
		if err := validate.Struct(d); err != nil {
			return fmt.Errorf("domains[%d] (%s): %w", i, d.Name, err)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("domains[%d] (%s): duplicate domain id %d", i, d.Name, d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	for i, d := range c.Domains {
		for j, r := range d.Replicas {
			if _, known := seen[r.Origin]; !known {
				return fmt.Errorf("domains[%d] (%s), replicas[%d]: origin %d is not a configured domain", i, d.Name, j, r.Origin)
			}
			if r.Origin == d.ID {
				return fmt.Errorf("domains[%d] (%s), replicas[%d]: a replica cannot mirror its own domain", i, d.Name, j)
			}
		}
	}

	if c.Retry != nil {
		if err := c.Retry.Validate(); err != nil {
			return fmt.Errorf("retry: %w", err)
		}
	}

	if c.Dedup.CleanEvery < 1 {
		return fmt.Errorf("dedup.clean_every must be at least 1")
	}
	if c.Dedup.MaxEntries < 1 {
		return fmt.Errorf("dedup.max_entries must be at least 1")
	}

	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}

// Domain returns the configuration of the given domain id.
func (c *Config) Domain(id uint32) (DomainConfig, bool) {
	for _, d := range c.Domains {
		if d.ID == id {
			return d, true
		}
	}
	return DomainConfig{}, false
}
