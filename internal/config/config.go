// README: Config loader (viper) with env overrides for HTTP, pricing, sinks, and the seed network.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "DISPATCH"

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PricingConfig struct {
	PerUnit        float64 `mapstructure:"per_unit"`
	CommissionRate float64 `mapstructure:"commission_rate"`
	Currency       string  `mapstructure:"currency"`
}

type RebalanceConfig struct {
	Keep int   `mapstructure:"keep"`
	Seed int64 `mapstructure:"seed"`
}

type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	Channel string `mapstructure:"channel"`
}

type DBConfig struct {
	DSN     string `mapstructure:"dsn"`
	Migrate bool   `mapstructure:"migrate"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type RoadSeed struct {
	From     string  `mapstructure:"from"`
	To       string  `mapstructure:"to"`
	Distance float64 `mapstructure:"distance"`
}

type DriverSeed struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Location string `mapstructure:"location"`
}

// SeedConfig is the network and fleet loaded at startup.
type SeedConfig struct {
	Locations []string     `mapstructure:"locations"`
	Roads     []RoadSeed   `mapstructure:"roads"`
	Drivers   []DriverSeed `mapstructure:"drivers"`
}

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Rebalance RebalanceConfig `mapstructure:"rebalance"`
	Redis     RedisConfig     `mapstructure:"redis"`
	DB        DBConfig        `mapstructure:"db"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("pricing.per_unit", 10.0)
	v.SetDefault("pricing.commission_rate", 0.30)
	v.SetDefault("pricing.currency", "INR")
	v.SetDefault("rebalance.keep", 2)
	v.SetDefault("rebalance.seed", 1)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.channel", "dispatch:rides")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.migrate", true)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "dispatch.rides")
}

// Load reads defaults, then the config file, then DISPATCH_* env vars.
// An empty path looks for an optional dispatch.{yaml,json} in the working directory.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("dispatch")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Kafka.Brokers = compact(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("config: http.addr is required")
	}
	if c.Rebalance.Keep < 1 {
		return fmt.Errorf("config: rebalance.keep must be >= 1, got %d", c.Rebalance.Keep)
	}
	return nil
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
