package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Share     ShareConfig     `mapstructure:"share"`
	Company   CompanyConfig   `mapstructure:"company"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// JWTConfig holds the shared secret of the hosted auth service. Tokens are
// issued there; this service only validates them.
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	AdminRole      string        `mapstructure:"admin_role"`
}

type RateLimitConfig struct {
	SharedPerMinute int `mapstructure:"shared_per_minute"`
	APIPerMinute    int `mapstructure:"api_per_minute"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type ShareConfig struct {
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// CompanyConfig is the fallback used on documents when the general settings
// row has not been saved yet.
type CompanyConfig struct {
	Name     string `mapstructure:"name"`
	Currency string `mapstructure:"currency"`
	Locale   string `mapstructure:"locale"`
}

type GeneratorConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.url", "file:nexus.db")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.access_token_ttl", time.Hour)
	v.SetDefault("jwt.admin_role", "admin")

	v.SetDefault("rate_limit.shared_per_minute", 60)
	v.SetDefault("rate_limit.api_per_minute", 600)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("share.public_base_url", "http://localhost:8080")

	v.SetDefault("company.name", "Agency")
	v.SetDefault("company.currency", "$")
	v.SetDefault("company.locale", "en")

	v.SetDefault("generator.timeout", 60*time.Second)
}

// Load reads path (when it exists) and overlays environment variables, e.g.
// DATABASE_URL overrides database.url. A .env file in the working directory
// is loaded first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("jwt.secret must be provided")
	}
	config.Share.PublicBaseURL = strings.TrimRight(config.Share.PublicBaseURL, "/")

	return &config, nil
}
