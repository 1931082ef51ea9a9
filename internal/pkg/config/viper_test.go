package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: otpauth
  debug: true
  server:
    cors: "http://localhost:3000, ,http://example.com"
database:
  pool:
    max_conns: 12
jwt:
  ttl_minutes: 15
  audiences:
    - web
    - mobile
http:
  read_timeout_seconds: 7
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "otpauth", cfg.GetString("app.name"))
	assert.True(t, cfg.GetBool("app.debug"))
	assert.Equal(t, int32(12), cfg.GetInt32("database.pool.max_conns"))
	assert.Equal(t, 15*time.Minute, cfg.GetMinute("jwt.ttl_minutes"))
	assert.Equal(t, 7*time.Second, cfg.GetSecond("http.read_timeout_seconds"))
	assert.Equal(t, []string{"http://localhost:3000", "http://example.com"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, []string{"web", "mobile"}, cfg.GetArray("jwt.audiences"))
	assert.Empty(t, cfg.GetArray("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_EmptyType(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sample))
	assert.ErrorIs(t, err, ErrConfigTypeRequired)
}

func TestNewViper(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o600))

	cfg, err := NewViper(file)
	require.NoError(t, err)
	assert.Equal(t, "otpauth", cfg.GetString("app.name"))

	_, err = NewViper(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}
