package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Storage struct {
		Driver     string `env:"STORAGE_DRIVER" env-default:"memory"`
		QuotaBytes int    `env:"STORAGE_QUOTA_BYTES" env-default:"5242880"`
	}
	Mirror struct {
		PollInterval time.Duration `env:"MIRROR_POLL_INTERVAL" env-default:"3s"`
		FeedLimit    int           `env:"MIRROR_FEED_LIMIT" env-default:"20"`
	}
	Chain struct {
		RPCURL           string        `env:"CHAIN_RPC_URL" env-default:"https://testnet-rpc.iopn.tech"`
		ChainID          int64         `env:"CHAIN_ID" env-default:"984"`
		PrivateKey       string        `env:"CHAIN_PRIVATE_KEY"`
		PostContract     string        `env:"CHAIN_POST_CONTRACT"`
		IdentityContract string        `env:"CHAIN_IDENTITY_CONTRACT"`
		ConfirmTimeout   time.Duration `env:"CHAIN_CONFIRM_TIMEOUT" env-default:"2m"`
	}
	Gateway struct {
		RateWindow      time.Duration `env:"GATEWAY_RATE_WINDOW" env-default:"30s"`
		RateMax         int           `env:"GATEWAY_RATE_MAX" env-default:"10"`
		FallbackBalance string        `env:"GATEWAY_FALLBACK_BALANCE" env-default:"0.00"`
		UpstreamRPS     float64       `env:"GATEWAY_UPSTREAM_RPS" env-default:"20"`
	}
	Handle struct {
		Debounce time.Duration `env:"HANDLE_DEBOUNCE" env-default:"300ms"`
		Suffix   string        `env:"HANDLE_SUFFIX" env-default:".opn"`
	}
	Invite struct {
		Codes []string `env:"INVITE_CODES" env-separator:"," env-default:"VIBE-001,VIBE-002,VIBE-003,VIBE-004,VIBE-005"`
	}
	Telegram struct {
		Token string `env:"TELEGRAM_TOKEN"`
	}
}

// GetDSN returns the postgres connection URL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
