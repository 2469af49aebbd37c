package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ServerConfig is read from the environment.
type ServerConfig struct {
	Port          string        `envconfig:"API_PORT" default:"8080"`
	Env           string        `envconfig:"API_ENV" default:"development"`
	StaticDir     string        `envconfig:"STATIC_DIR" default:"./web/dist"`
	HistoryFile   string        `envconfig:"HISTORY_FILE" default:"./data/btc_history.csv"`
	LivePrice     bool          `envconfig:"LIVE_PRICE" default:"true"`
	PriceSymbol   string        `envconfig:"PRICE_SYMBOL" default:"BTCUSDT"`
	PriceCacheTTL time.Duration `envconfig:"PRICE_CACHE_TTL" default:"1m"`
	// RedisAddr switches the price cache from memory to Redis when set.
	RedisAddr string `envconfig:"REDIS_ADDR"`
}

func LoadServer() (*ServerConfig, error) {
	var c ServerConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *ServerConfig) Production() bool {
	return c.Env == "production"
}
