package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Len(t, cfg.Datasets, 2)
	primary, ok := cfg.Primary()
	require.True(t, ok)
	assert.Equal(t, "sunrise", primary.Name)
	assert.Equal(t, "Sunrise Area", primary.DisplayName())

	ctx, ok := cfg.Context()
	require.True(t, ok)
	assert.Equal(t, "rebecca-ridge", ctx.Name)

	assert.Equal(t, "Sold", cfg.Filters.SoldStatus)
	assert.Equal(t, 1100.0, cfg.Filters.MinSqft)
	assert.Equal(t, 1900.0, cfg.Filters.MaxSqft)
	assert.Equal(t, 2020, cfg.Filters.MaxYearBuilt)
	assert.Equal(t, []string{"15807 131st"}, cfg.Filters.ExcludeAddresses)

	assert.Equal(t, 1576.0, cfg.Pricing.SubjectSqft)
	assert.Equal(t, "median", cfg.Pricing.PSFBasis)
	assert.Equal(t, 18, cfg.Pricing.BroadMonths)

	assert.Len(t, cfg.Memo.Adjustments, 10)
	assert.Equal(t, 62500.0, cfg.Memo.TotalPremium())
	assert.Equal(t, "top", cfg.Memo.PSFBasis)

	assert.Equal(t, 2.5, cfg.Proceeds.ListingAgentPct)
	assert.Equal(t, ":8501", cfg.Server.Addr)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mls.yaml")
	body := `
datasets:
  - name: west
    path: west.txt
    role: primary
filters:
  min_sqft: 900
  exclude_addresses: []
pricing:
  subject_sqft: 2000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Datasets, 1)
	assert.Equal(t, "west", cfg.Datasets[0].Name)
	assert.Equal(t, 900.0, cfg.Filters.MinSqft)
	assert.Equal(t, 1900.0, cfg.Filters.MaxSqft)
	assert.Empty(t, cfg.Filters.ExcludeAddresses)
	assert.Equal(t, 2000.0, cfg.Pricing.SubjectSqft)

	_, ok := cfg.Context()
	assert.False(t, ok)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MLS_FILTERS_MAX_YEAR_BUILT", "2015")
	t.Setenv("MLS_SERVER_ADDR", ":9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2015, cfg.Filters.MaxYearBuilt)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Filters.MinSqft = 2000
	cfg.Filters.MaxSqft = 1000
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownBasis(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Pricing.PSFBasis = "average"
	assert.Error(t, cfg.Validate())
}

func TestDatasetLookup(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	d, ok := cfg.Dataset("rebecca-ridge")
	require.True(t, ok)
	assert.Equal(t, RoleContext, d.Role)

	_, ok = cfg.Dataset("missing")
	assert.False(t, ok)
}
