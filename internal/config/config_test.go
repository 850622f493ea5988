package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_File(t *testing.T) {
	dir := writeConfig(t, `
server:
  address: ":9090"
database:
  driver: mongo
  uri: mongodb://db:27017
  name: catalog
s3:
  bucket_name: media
  url_expiry: 5m
jwt:
  secret: s3cret
catalog:
  categories: [Legs, Back]
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.Equal(t, "media", cfg.S3.BucketName)
	assert.Equal(t, 5*time.Minute, cfg.S3.URLExpiry)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, []string{"Legs", "Back"}, cfg.Catalog.Categories)
}

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.S3.URLExpiry)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: postgres
`)
	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.driver")
	assert.Contains(t, err.Error(), "jwt.secret")
}
