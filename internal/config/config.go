package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envStrictDecode = "TXLEDGER_STRICT_DECODE"
	envEnforceLocks = "TXLEDGER_ENFORCE_LOCKS"
	envKafkaBrokers = "TXLEDGER_KAFKA_BROKERS"
	envKafkaTopic   = "TXLEDGER_KAFKA_TOPIC"

	defaultKafkaTopic = "account_locked"
)

// Config holds the runtime settings of the replay run.
type Config struct {
	// StrictDecode aborts the run on the first row that cannot be decoded.
	// When false, bad rows are logged and skipped.
	StrictDecode bool

	// EnforceLocks rejects deposits, withdrawals and disputes against a
	// locked account. The default keeps the permissive behavior where the
	// lock is recorded but never checked.
	EnforceLocks bool

	// KafkaBrokers enables event publishing when non-empty.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from the environment, loading a .env file first if
// one is present (Docker friendly).
func Load() (Config, error) {
	// A missing .env is not an error; explicit env vars still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	strict, err := boolEnv(envStrictDecode, true)
	if err != nil {
		return Config{}, err
	}

	enforce, err := boolEnv(envEnforceLocks, false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		StrictDecode: strict,
		EnforceLocks: enforce,
		KafkaTopic:   defaultKafkaTopic,
	}

	if brokers := os.Getenv(envKafkaBrokers); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	if topic := os.Getenv(envKafkaTopic); topic != "" {
		cfg.KafkaTopic = topic
	}

	return cfg, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q: %w", key, raw, err)
	}
	return value, nil
}
