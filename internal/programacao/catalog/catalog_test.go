package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Len(t, c.BranchByTaxID, 6)
	assert.Len(t, c.UnitPriceByBranch, 6)
	assert.Len(t, c.RegionByBranch, 6)

	b, ok := c.Branch("15.245.792/0004-84")
	assert.True(t, ok)
	assert.Equal(t, "SMX FOR", b)

	r, ok := c.Region("SMX SSZ")
	assert.True(t, ok)
	assert.Equal(t, "SUDESTE", r)

	assert.Equal(t, 1500.0, c.UnitPrice("SMX MTZ"))
	assert.Equal(t, 0.0, c.UnitPrice("SMX XXX"))
	assert.Equal(t, []int{2023, 2024}, c.SortedYears())
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.UnitPriceByBranch["SMX MTZ"] = 1
	assert.Equal(t, 1500.0, Default().UnitPrice("SMX MTZ"))
}

func TestBranch_Unmapped(t *testing.T) {
	_, ok := Default().Branch("00.000.000/0000-00")
	assert.False(t, ok)
}

func TestLoad_OverridesTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `unit_price_by_branch:
  SMX MTZ: 1600
  SMX FOR: 900.5
years: [2025, 2024, 2024]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, c.UnitPrice("SMX MTZ"))
	assert.Equal(t, 900.5, c.UnitPrice("SMX FOR"))
	assert.Equal(t, 0.0, c.UnitPrice("SMX SUA"))
	assert.Len(t, c.BranchByTaxID, 6, "tables absent from the file keep defaults")
	assert.Equal(t, []int{2024, 2025}, c.SortedYears())
}

func TestLoad_RejectsNegativePrice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unit_price_by_branch:\n  SMX MTZ: -1\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("years: [2024"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/catalog.yaml")
	assert.Error(t, err)
}
