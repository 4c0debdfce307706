package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.ClaimsPath)
	assert.Empty(t, cfg.LaborForcePath)
	assert.Empty(t, cfg.Period)
	assert.Empty(t, cfg.GeoJSONPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, time.Duration(0), cfg.RunInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CLAIMS_PATH", "data/claims.csv")
	t.Setenv("LABOR_FORCE_PATH", "data/laus.xlsx")
	t.Setenv("LABOR_FORCE_PERIOD", "2020-03")
	t.Setenv("COUNTY_GEOJSON_PATH", "data/counties.geojson")
	t.Setenv("OUTPUT_DIR", "artifacts")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("RUN_INTERVAL", "1h")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/claims.csv", cfg.ClaimsPath)
	assert.Equal(t, "data/laus.xlsx", cfg.LaborForcePath)
	assert.Equal(t, "2020-03", cfg.Period)
	assert.Equal(t, "data/counties.geojson", cfg.GeoJSONPath)
	assert.Equal(t, "artifacts", cfg.OutputDir)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_NegativeInterval(t *testing.T) {
	t.Setenv("RUN_INTERVAL", "-5m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RUN_INTERVAL")
}

func TestValidate(t *testing.T) {
	cfg := &Config{OutputDir: "out"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claims path")

	cfg.ClaimsPath = "claims.csv"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labor-force path")

	cfg.LaborForcePath = "laus.xlsx"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period")

	cfg.Period = "2020-03"
	assert.NoError(t, cfg.Validate())
}
