package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Store    string `env:"STORE,     default=mongo"`

	Auth      AuthConfig
	Items     ItemsConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Bootstrap BootstrapConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type ItemsConfig struct {
	DefaultLimit int `env:"ITEMS_DEFAULT_LIMIT, default=10"`
	MaxLimit     int `env:"ITEMS_MAX_LIMIT,     default=100"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// BootstrapConfig seeds the first admin account. Seeding is skipped unless
// Email and Password are both set.
type BootstrapConfig struct {
	Name     string `env:"BOOTSTRAP_ADMIN_NAME, default=Administrator"`
	Email    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	Password string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

func (b BootstrapConfig) Enabled() bool {
	return b.Email != "" && b.Password != ""
}

// IsDevelopment reports whether the process runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE must be %q or %q, got %q", StoreMongo, StoreMemory, c.Store)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Items.DefaultLimit < 1 || c.Items.MaxLimit < c.Items.DefaultLimit {
		return fmt.Errorf("ITEMS_DEFAULT_LIMIT must be in [1, ITEMS_MAX_LIMIT], got %d/%d", c.Items.DefaultLimit, c.Items.MaxLimit)
	}
	return nil
}
