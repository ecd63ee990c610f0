package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	SeedFile  string
	SeedLimit int

	PostgresDSN      string
	PostgresMaxConns int
	Migrate          bool

	KafkaBrokers   string
	KafkaTopic     string
	KafkaGroup     string
	KafkaDrainIdle time.Duration

	IBGEBaseURL string

	LogLevel  string
	LogFormat string
}

const DefaultIBGEBaseURL = "https://servicodados.ibge.gov.br/api/v1/localidades"

var ErrNoSource = errors.New("set SEED_FILE, POSTGRES_DSN or KAFKA_BROKERS")

// Load reads .env (if present), then config.yaml from the working directory
// (if present), then the environment. Environment wins.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config

	cfg.HTTPAddr = getString(v, "HTTP_ADDR", ":8081")
	cfg.CORSOrigins = splitCSV(getString(v, "CORS_ORIGINS", "*"))

	cfg.SeedFile = getString(v, "SEED_FILE", "")
	cfg.SeedLimit = getInt(v, "SEED_LIMIT", 1000)

	cfg.PostgresDSN = getString(v, "POSTGRES_DSN", "")
	cfg.PostgresMaxConns = getInt(v, "POSTGRES_MAX_CONNS", 20)
	cfg.Migrate = getBool(v, "MIGRATE", false)

	cfg.KafkaBrokers = getString(v, "KAFKA_BROKERS", "")
	cfg.KafkaTopic = getString(v, "KAFKA_TOPIC", "orders")
	cfg.KafkaGroup = getString(v, "KAFKA_GROUP", "orders-insights")
	cfg.KafkaDrainIdle = time.Duration(getInt(v, "KAFKA_DRAIN_IDLE_MS", 2000)) * time.Millisecond

	cfg.IBGEBaseURL = strings.TrimRight(getString(v, "IBGE_BASE_URL", DefaultIBGEBaseURL), "/")

	cfg.LogLevel = getString(v, "LOG_LEVEL", "info")
	cfg.LogFormat = getString(v, "LOG_FORMAT", "json")

	if cfg.SeedFile == "" && cfg.PostgresDSN == "" && cfg.KafkaBrokers == "" {
		return Config{}, ErrNoSource
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
