package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatflowers/bankgate/pkg/types"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
env: prod
server:
  port: 9000
redis:
  addr: redis:6379
  key_prefix: "notify:"
  ttl: 72h
store:
  timeout: 1500ms
verification:
  signing_mode: sha256_secret_suffix
  time_zone: Asia/Ho_Chi_Minh
partners:
  - code: VNB
    secret: s3cret
  - code: ACB
    secret: other
kafka:
  brokers: ["kafka:9092"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestNew_ReadsFileAndDefaults(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", writeConfig(t, sampleConfig))

	c, err := New()
	require.NoError(t, err)

	require.Equal(t, EnvProd, c.Env)
	require.Equal(t, 9000, c.Server.Port)
	require.Equal(t, "0.0.0.0", c.Server.Host)
	require.Equal(t, "redis:6379", c.Redis.Addr)
	require.Equal(t, "notify:", c.Redis.KeyPrefix)
	require.Equal(t, 72*time.Hour, c.Redis.TTL)
	require.Equal(t, 1500*time.Millisecond, c.Store.Timeout)
	require.Equal(t, types.SigningModeSecretSuffix, c.Verification.SigningMode)
	require.Len(t, c.Partners, 2)
	require.Equal(t, "VNB", c.Partners[0].Code)
	require.Equal(t, "s3cret", c.Partners[0].Secret)
	require.True(t, c.Kafka.Enabled())
	require.Equal(t, 20, c.Database.MaxOpenConns)
	require.Equal(t, "payment.verified", c.Kafka.Topic)

	loc, err := c.Location()
	require.NoError(t, err)
	require.Equal(t, "Asia/Ho_Chi_Minh", loc.String())
}

func TestNew_DefaultSigningModeIsHMAC(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", writeConfig(t, "env: dev\n"))

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, types.SigningModeHMAC, c.Verification.SigningMode)
	require.False(t, c.Kafka.Enabled())
	require.Equal(t, time.Local, func() *time.Location { l, _ := c.Location(); return l }())
}

func TestNew_RejectsUnknownSigningMode(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", writeConfig(t, "verification:\n  signing_mode: md5\n"))

	_, err := New()
	require.Error(t, err)
	require.Contains(t, err.Error(), "signing_mode")
}

func TestNew_MissingExplicitFile(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := New()
	require.Error(t, err)
}
