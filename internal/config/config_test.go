package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Mode)
	assert.Equal(t, 30, cfg.Estimates.RetentionDays)
	assert.Equal(t, 30*24*time.Hour, cfg.Estimates.RetentionDuration())
	assert.Equal(t, "0 0 * * * *", cfg.Jobs.EstimatePurgeCron)
	assert.Equal(t, 2*time.Minute, cfg.Jobs.EstimatePurgeTimeoutDuration())
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTLDuration())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Contains(t, cfg.RateLimit.WhitelistPaths, "/health")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("ESTIMATES_RETENTIONDAYS", "7")
	t.Setenv("ADMIN_API_KEY", "key-from-env")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7, cfg.Estimates.RetentionDays)
	assert.Equal(t, "key-from-env", cfg.Auth.APIKey)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "calc", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=calc sslmode=require", d.ConnectionString())
}

type mapSource map[string]string

func (m mapSource) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	v, ok := m[secretName]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func TestApplySecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Host = "localhost"

	err := config.ApplySecrets(context.Background(), cfg, mapSource{
		"CONCRETE-DB-PASSWORD":      "pw",
		"admin-api-key":             "api",
		"jwt-signing-key":           "signing",
		"storage-connection-string": "conn",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "api", cfg.Auth.APIKey)
	assert.Equal(t, "signing", cfg.Auth.JWTSecret)
	assert.Equal(t, "conn", cfg.Storage.CloudConnectionString)
}

func TestApplySecrets_RequiresSigningKey(t *testing.T) {
	err := config.ApplySecrets(context.Background(), &config.Config{}, mapSource{})
	assert.Error(t, err)
}
