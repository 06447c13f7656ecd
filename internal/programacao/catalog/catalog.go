// Package catalog holds the static reference tables used to derive branch and
// region columns and to price schedules.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is read-only once built. Callers receive their own copy from Default
// or Load and pass it explicitly to the pipeline.
type Catalog struct {
	BranchByTaxID     map[string]string  `yaml:"branch_by_tax_id" json:"branch_by_tax_id"`
	UnitPriceByBranch map[string]float64 `yaml:"unit_price_by_branch" json:"unit_price_by_branch"`
	RegionByBranch    map[string]string  `yaml:"region_by_branch" json:"region_by_branch"`
	Years             []int              `yaml:"years" json:"years"`
}

var ErrInvalidCatalog = errors.New("invalid catalog")

// Default returns the SIL Log-In carrier tables.
func Default() *Catalog {
	return &Catalog{
		BranchByTaxID: map[string]string{
			"15.245.792/0001-31": "SMX MTZ",
			"15.245.792/0004-84": "SMX FOR",
			"15.245.792/0005-65": "SMX SUA",
			"15.245.792/0006-46": "SMX SSZ",
			"15.245.792/0003-01": "SMX CWB",
			"15.245.792/0007-27": "SMX CXJ",
		},
		UnitPriceByBranch: map[string]float64{
			"SMX MTZ": 1500.00,
			"SMX FOR": 850.00,
			"SMX SUA": 900.00,
			"SMX SSZ": 1250.00,
			"SMX CWB": 1500.00,
			"SMX CXJ": 1500.00,
		},
		RegionByBranch: map[string]string{
			"SMX MTZ": "SUL",
			"SMX FOR": "NORDESTE",
			"SMX SUA": "NORDESTE",
			"SMX SSZ": "SUDESTE",
			"SMX CWB": "SUL",
			"SMX CXJ": "SUL",
		},
		Years: []int{2023, 2024},
	}
}

// Load reads a YAML catalog. Tables left out of the file keep their default
// values.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var raw Catalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := Default()
	if raw.BranchByTaxID != nil {
		c.BranchByTaxID = raw.BranchByTaxID
	}
	if raw.UnitPriceByBranch != nil {
		c.UnitPriceByBranch = raw.UnitPriceByBranch
	}
	if raw.RegionByBranch != nil {
		c.RegionByBranch = raw.RegionByBranch
	}
	if raw.Years != nil {
		c.Years = raw.Years
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Validate() error {
	for taxID, branch := range c.BranchByTaxID {
		if strings.TrimSpace(taxID) == "" || strings.TrimSpace(branch) == "" {
			return fmt.Errorf("%w: empty entry in branch_by_tax_id", ErrInvalidCatalog)
		}
	}
	for branch, price := range c.UnitPriceByBranch {
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return fmt.Errorf("%w: unit price for %q must be a non-negative number", ErrInvalidCatalog, branch)
		}
	}
	for branch, region := range c.RegionByBranch {
		if strings.TrimSpace(branch) == "" || strings.TrimSpace(region) == "" {
			return fmt.Errorf("%w: empty entry in region_by_branch", ErrInvalidCatalog)
		}
	}
	if len(c.Years) == 0 {
		return fmt.Errorf("%w: at least one year is required", ErrInvalidCatalog)
	}
	for _, y := range c.Years {
		if y < 1 || y > 9999 {
			return fmt.Errorf("%w: year %d out of range", ErrInvalidCatalog, y)
		}
	}
	return nil
}

// Branch returns the branch code for a carrier tax id.
func (c *Catalog) Branch(taxID string) (string, bool) {
	b, ok := c.BranchByTaxID[strings.TrimSpace(taxID)]
	return b, ok
}

// Region returns the region for a branch code.
func (c *Catalog) Region(branch string) (string, bool) {
	r, ok := c.RegionByBranch[branch]
	return r, ok
}

// UnitPrice returns the unit price for a branch, 0 when unmapped.
func (c *Catalog) UnitPrice(branch string) float64 {
	return c.UnitPriceByBranch[branch]
}

// SortedYears returns the known years in ascending order.
func (c *Catalog) SortedYears() []int {
	years := slices.Clone(c.Years)
	slices.Sort(years)
	return slices.Compact(years)
}
