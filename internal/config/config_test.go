package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.StrictDecode)
	assert.False(t, cfg.EnforceLocks)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "account_locked", cfg.KafkaTopic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(envStrictDecode, "false")
	t.Setenv(envEnforceLocks, "true")
	t.Setenv(envKafkaBrokers, "broker-1:9092, broker-2:9092,")
	t.Setenv(envKafkaTopic, "ledger.locks")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.StrictDecode)
	assert.True(t, cfg.EnforceLocks)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "ledger.locks", cfg.KafkaTopic)
}

func TestLoad_MalformedBoolIsAnError(t *testing.T) {
	t.Setenv(envStrictDecode, "definitely")

	_, err := Load()
	assert.Error(t, err)
}
