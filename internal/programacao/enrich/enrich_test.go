package enrich

import (
	"testing"

	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"15.245.792/0001-31", "15.245.792/0005-65", "99.999.999/0001-99", "NaN"}, series.String, types.ColCarrierTaxID),
		series.New([]string{"1", "2", "3", "4"}, series.String, types.ColScheduleID),
	)

	out := Enrich(df, catalog.Default())
	require.NoError(t, out.Error())

	branch := out.Col(types.ColBranch)
	region := out.Col(types.ColRegion)
	assert.Equal(t, "SMX MTZ", branch.Elem(0).String())
	assert.Equal(t, "SUL", region.Elem(0).String())
	assert.Equal(t, "SMX SUA", branch.Elem(1).String())
	assert.Equal(t, "NORDESTE", region.Elem(1).String())

	for _, i := range []int{2, 3} {
		assert.True(t, branch.Elem(i).IsNA(), "row %d branch", i)
		assert.True(t, region.Elem(i).IsNA(), "row %d region", i)
	}

	assert.Equal(t, df.Col(types.ColCarrierTaxID).Records(), out.Col(types.ColCarrierTaxID).Records(), "source column untouched")
	assert.NotContains(t, df.Names(), types.ColBranch, "input frame is not mutated")
}

func TestEnrich_MissingTaxColumn(t *testing.T) {
	df := dataframe.New(series.New([]string{"1", "2"}, series.String, types.ColScheduleID))

	out := Enrich(df, catalog.Default())
	require.NoError(t, out.Error())
	assert.True(t, out.Col(types.ColBranch).Elem(0).IsNA())
	assert.True(t, out.Col(types.ColRegion).Elem(1).IsNA())
}

func TestRegions_BranchWithoutRegion(t *testing.T) {
	c := catalog.Default()
	c.BranchByTaxID["11.111.111/0001-11"] = "SMX NEW"

	branches := Branches([]string{"11.111.111/0001-11"}, c)
	assert.Equal(t, []string{"SMX NEW"}, branches)
	assert.Equal(t, []string{""}, Regions(branches, c))
}
