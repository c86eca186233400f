package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9000
database:
  uri: mongodb://localhost:27017
  name: muroom_test
jwt:
  secret: s3cret
client:
  url: http://localhost:3000
email:
  provider: ses
  aws_region: ap-northeast-2
  from_email: noreply@muroom.com
  reply_to: noreply@muroom.com
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg := LoadConfigFrom(path)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "muroom_test", cfg.Database.Name)
	require.Equal(t, "s3cret", cfg.JWT.Secret)
	require.Equal(t, "ses", cfg.Email.Provider)
	require.Equal(t, "http://localhost:3000", cfg.Client.URL)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt:\n  secret: s\n"), 0o600))

	cfg := LoadConfigFrom(path)
	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "muroom", cfg.Database.Name)
	require.Equal(t, "smtp", cfg.Email.Provider)
}

func TestLoadConfigMissingFilePanics(t *testing.T) {
	require.Panics(t, func() {
		LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
