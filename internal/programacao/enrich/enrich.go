// Package enrich derives the branch and region columns from the carrier tax id.
package enrich

import (
	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/farxc/sil_dashboard/internal/programacao/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const null = "NaN"

// Branches maps tax ids to branch codes; unmapped ids yield "".
func Branches(taxIDs []string, c *catalog.Catalog) []string {
	out := make([]string, len(taxIDs))
	for i, id := range taxIDs {
		if b, ok := c.Branch(id); ok {
			out[i] = b
		}
	}
	return out
}

// Regions maps branch codes to regions; unmapped branches yield "".
func Regions(branches []string, c *catalog.Catalog) []string {
	out := make([]string, len(branches))
	for i, b := range branches {
		if r, ok := c.Region(b); ok {
			out[i] = r
		}
	}
	return out
}

func toSeries(values []string, name string) series.Series {
	cells := make([]string, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = null
			continue
		}
		cells[i] = v
	}
	return series.New(cells, series.String, name)
}

// Enrich returns a copy of df with the Filial and Região columns attached.
// A frame without the tax id column gets all-null derived columns.
func Enrich(df dataframe.DataFrame, c *catalog.Catalog) dataframe.DataFrame {
	branches := Branches(utils.ColumnValues(&df, types.ColCarrierTaxID), c)
	regions := Regions(branches, c)

	return df.
		Mutate(toSeries(branches, types.ColBranch)).
		Mutate(toSeries(regions, types.ColRegion))
}
