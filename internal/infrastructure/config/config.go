package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// API holds the configuration of the supplier-management API service.
type API struct {
	Port      string `env:"PORT,       default=5000"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo MongoConfig
}

// Portal holds the configuration of the portal gateway.
type Portal struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIBaseURL is the single upstream base address every domain call
	// shares, e.g. http://localhost:5000/api.
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:5000/api"`

	SessionCookie string        `env:"SESSION_COOKIE, default=portal_sid"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	PollInterval  time.Duration `env:"POLL_INTERVAL,  default=30s"`

	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=supplier_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// LoadAPI reads the API service configuration from environment variables.
func LoadAPI() *API {
	var cfg API
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// LoadPortal reads the portal gateway configuration from environment variables.
func LoadPortal() *Portal {
	var cfg Portal
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
