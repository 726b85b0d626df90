package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "STORE_DRIVER", "SEED_SAMPLE_DATA", "SEED_FAKE_USERS", "KAFKA_ENABLED", "KAFKA_BROKERS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.True(t, cfg.SeedSampleData)
	require.Zero(t, cfg.SeedFakeUsers)
	require.False(t, cfg.KafkaEnabled)
	require.Equal(t, []string{"localhost:9094"}, cfg.KafkaBrokers)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("SEED_FAKE_USERS", "12")
	t.Setenv("KAFKA_ENABLED", "1")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverMemory, cfg.StoreDriver)
	require.Equal(t, 12, cfg.SeedFakeUsers)
	require.True(t, cfg.KafkaEnabled)
	require.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mysql")
	_, err := Load()
	require.ErrorContains(t, err, "STORE_DRIVER")

	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SEED_FAKE_USERS", "-1")
	_, err = Load()
	require.ErrorContains(t, err, "SEED_FAKE_USERS")
}

func TestParseEnv_DoesNotOverride(t *testing.T) {
	t.Setenv("CFG_TEST_KEEP", "set")
	t.Setenv("CFG_TEST_NEW", "")
	require.NoError(t, os.Unsetenv("CFG_TEST_NEW"))

	src := "\ufeff# comment\nexport CFG_TEST_NEW=\"from file\"\nCFG_TEST_KEEP=file\nnot a pair\n"
	require.NoError(t, parseEnv(strings.NewReader(src)))

	require.Equal(t, "from file", os.Getenv("CFG_TEST_NEW"))
	require.Equal(t, "set", os.Getenv("CFG_TEST_KEEP"))
}

func TestEnv(t *testing.T) {
	t.Setenv("CFG_TEST_ENV", "")
	require.Equal(t, "fallback", Env("CFG_TEST_ENV", "fallback"))
	t.Setenv("CFG_TEST_ENV", "value")
	require.Equal(t, "value", Env("CFG_TEST_ENV", "fallback"))
}
