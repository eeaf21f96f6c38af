package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DiscordConfig holds Discord connection configuration
type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

// LastFMConfig holds Last.fm API configuration
type LastFMConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	APISecret         string        `mapstructure:"api_secret"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxRetryElapsed   time.Duration `mapstructure:"max_retry_elapsed"`
}

// IndexerConfig holds indexing service configuration
type IndexerConfig struct {
	// MemberExpiry is how long a member snapshot stays fresh
	MemberExpiry time.Duration `mapstructure:"member_expiry"`
	// GuildCooldown is how long after a full index the next re-index window opens
	GuildCooldown time.Duration `mapstructure:"guild_cooldown"`
	// ReentryWindow is how long index requests are rejected after a run starts
	ReentryWindow time.Duration `mapstructure:"reentry_window"`
	// TopArtistLimit caps how many artists a member snapshot keeps
	TopArtistLimit int `mapstructure:"top_artist_limit"`
	// PoolSize bounds the crawl's concurrent scrobble-service requests
	PoolSize int `mapstructure:"pool_size"`
	// CrawlTimeout bounds one detached guild crawl
	CrawlTimeout time.Duration `mapstructure:"crawl_timeout"`
}

// WhoKnowsConfig holds aggregation service configuration
type WhoKnowsConfig struct {
	RequesterStaleAfter time.Duration `mapstructure:"requester_stale_after"`
}

// CooldownConfig holds per-user command cooldown configuration
type CooldownConfig struct {
	PerUser       time.Duration `mapstructure:"per_user"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// BotConfig holds configuration for the bot binary
type BotConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Discord    DiscordConfig  `mapstructure:"discord"`
	LastFM     LastFMConfig   `mapstructure:"lastfm"`
	Indexer    IndexerConfig  `mapstructure:"indexer"`
	WhoKnows   WhoKnowsConfig `mapstructure:"whoknows"`
	Cooldown   CooldownConfig `mapstructure:"cooldown"`
}

// LoadBotConfig loads configuration for the bot binary
func LoadBotConfig(configFile string, envPath string) (*BotConfig, error) {
	v := configureViper("bot", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("lastfm.requests_per_second", 4)
	v.SetDefault("lastfm.burst", 1)
	v.SetDefault("lastfm.max_retry_elapsed", "1m")
	v.SetDefault("indexer.member_expiry", "120h")
	v.SetDefault("indexer.guild_cooldown", "24h")
	v.SetDefault("indexer.reentry_window", "3m")
	v.SetDefault("indexer.top_artist_limit", 2000)
	v.SetDefault("indexer.pool_size", 2)
	v.SetDefault("indexer.crawl_timeout", "30m")
	v.SetDefault("whoknows.requester_stale_after", "24h")
	v.SetDefault("cooldown.per_user", "5s")
	v.SetDefault("cooldown.sweep_interval", "10m")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config BotConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// configureViper builds a viper instance with env and config-file lookup
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("CROWNBEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Discord
		"discord.token",
		// Last.fm
		"lastfm.api_key",
		"lastfm.api_secret",
		"lastfm.requests_per_second",
		"lastfm.burst",
		"lastfm.max_retry_elapsed",
		// Indexer
		"indexer.member_expiry",
		"indexer.guild_cooldown",
		"indexer.reentry_window",
		"indexer.top_artist_limit",
		"indexer.pool_size",
		"indexer.crawl_timeout",
		// WhoKnows
		"whoknows.requester_stale_after",
		// Cooldown
		"cooldown.per_user",
		"cooldown.sweep_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env files from the given path, later files overriding earlier ones
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate)
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
