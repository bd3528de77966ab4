package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Outbox   OutboxConfig
	AuthSvc  AuthServiceConfig
	Internal InternalConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER,   default=hr-workforce"`
	Audience string        `env:"JWT_AUDIENCE, default=hr-platform"`
	TokenTTL time.Duration `env:"JWT_TOKEN_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hr_workforce"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type OutboxConfig struct {
	PollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL, default=2s"`
	BatchSize    int           `env:"OUTBOX_BATCH_SIZE,    default=50"`
	Retention    time.Duration `env:"OUTBOX_RETENTION,     default=168h"`
}

type AuthServiceConfig struct {
	BaseURL      string        `env:"AUTH_SERVICE_URL,     default=http://localhost:8081"`
	ServiceName  string        `env:"AUTH_SERVICE_NAME,    default=hr-workforce"`
	ServiceToken string        `env:"AUTH_SERVICE_TOKEN"`
	Timeout      time.Duration `env:"AUTH_SERVICE_TIMEOUT, default=5s"`
}

type InternalConfig struct {
	// ServiceTokens is the allow-list for inbound service-to-service calls,
	// formatted as "name:token,name2:token2".
	ServiceTokens map[string]string `env:"INTERNAL_SERVICE_TOKENS"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
