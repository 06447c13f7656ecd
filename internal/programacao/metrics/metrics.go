// Package metrics computes the dashboard KPIs and chart series from a filtered
// schedule set. Everything here is pure: an empty input gives zero values.
package metrics

import (
	"sort"

	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

type KPIs struct {
	TotalSchedules     int     `json:"total_schedules"`
	CancelledSchedules int     `json:"cancelled_schedules"`
	ServedSchedules    int     `json:"served_schedules"`
	LateSchedules      int     `json:"late_schedules"`
	BillingTotal       float64 `json:"billing_total"`
	BillingCancelled   float64 `json:"billing_cancelled"`
	BillingServed      float64 `json:"billing_served"`
	Penalty            float64 `json:"penalty"`
}

// WithID drops rows whose schedule id is null.
func WithID(rows []types.Schedule) []types.Schedule {
	return lo.Filter(rows, func(r types.Schedule, _ int) bool { return r.HasID() })
}

func cancelled(rows []types.Schedule) []types.Schedule {
	return lo.Filter(rows, func(r types.Schedule, _ int) bool { return r.IsCancelled() })
}

func notCancelled(rows []types.Schedule) []types.Schedule {
	return lo.Filter(rows, func(r types.Schedule, _ int) bool { return !r.IsCancelled() })
}

// DistinctIDs counts distinct non-null schedule ids.
func DistinctIDs(rows []types.Schedule) int {
	ids := lo.FilterMap(rows, func(r types.Schedule, _ int) (string, bool) {
		return r.ScheduleID, r.HasID()
	})
	return len(lo.Uniq(ids))
}

// RowBilling sums one unit price per row; unmapped branches count as 0.
func RowBilling(rows []types.Schedule, c *catalog.Catalog) float64 {
	prices := lo.Map(rows, func(r types.Schedule, _ int) float64 { return c.UnitPrice(r.Branch) })
	return floats.Sum(prices)
}

// Billing prices rows per row when every branch is selected, or as
// distinct schedules times the branch price when a single branch is.
func Billing(rows []types.Schedule, branch string, c *catalog.Catalog) float64 {
	if filter.IsAll(branch) {
		return RowBilling(rows, c)
	}
	return float64(DistinctIDs(rows)) * c.UnitPrice(branch)
}

// Compute derives the KPI tiles for the fully filtered rows.
func Compute(rows []types.Schedule, branch string, c *catalog.Catalog) KPIs {
	clean := WithID(rows)
	cancelledRows := cancelled(clean)
	servedRows := notCancelled(clean)
	lateRows := lo.Filter(servedRows, func(r types.Schedule, _ int) bool { return r.IsLate() })

	k := KPIs{
		TotalSchedules:     DistinctIDs(clean),
		CancelledSchedules: DistinctIDs(cancelledRows),
		ServedSchedules:    DistinctIDs(servedRows),
		LateSchedules:      DistinctIDs(lateRows),
		BillingTotal:       Billing(clean, branch, c),
		BillingCancelled:   Billing(cancelledRows, branch, c),
	}
	k.BillingServed = k.BillingTotal - k.BillingCancelled
	k.Penalty = k.BillingServed * types.PenaltyRate
	return k
}

type MonthlyBilling struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Total     float64 `json:"total"`
	Cancelled float64 `json:"cancelled"`
	Served    float64 `json:"served"`
}

// Monthly prices every month of years against rows, which should be the
// branch-filtered set. Amounts are per-row unit price sums.
func Monthly(rows []types.Schedule, years []int, c *catalog.Catalog) []MonthlyBilling {
	clean := WithID(rows)
	out := make([]MonthlyBilling, 0, len(years)*12)
	for _, y := range years {
		for m := 1; m <= 12; m++ {
			inMonth := filter.ByWindow(clean, filter.MonthWindow(y, m))
			total := RowBilling(inMonth, c)
			canc := RowBilling(cancelled(inMonth), c)
			out = append(out, MonthlyBilling{
				Year:      y,
				Month:     m,
				MonthName: types.MonthNames[m-1],
				Total:     total,
				Cancelled: canc,
				Served:    total - canc,
			})
		}
	}
	return out
}

// MonthlyYears returns the years a monthly breakdown covers for sel.
func MonthlyYears(sel filter.Selection, c *catalog.Catalog) []int {
	if sel.Year != 0 {
		return []int{sel.Year}
	}
	return c.SortedYears()
}

type BranchShare struct {
	Branch     string  `json:"branch"`
	Billing    float64 `json:"billing"`
	Percentage float64 `json:"percentage"`
}

// ShareByBranch groups rows by branch and reports each branch's share of the
// summed unit prices. Rows without a branch are left out.
func ShareByBranch(rows []types.Schedule, c *catalog.Catalog) []BranchShare {
	groups := lo.GroupBy(
		lo.Filter(WithID(rows), func(r types.Schedule, _ int) bool { return r.Branch != "" }),
		func(r types.Schedule) string { return r.Branch },
	)

	branches := lo.Keys(groups)
	sort.Strings(branches)

	out := make([]BranchShare, 0, len(branches))
	for _, b := range branches {
		out = append(out, BranchShare{Branch: b, Billing: RowBilling(groups[b], c)})
	}

	total := floats.Sum(lo.Map(out, func(s BranchShare, _ int) float64 { return s.Billing }))
	if total > 0 {
		for i := range out {
			out[i].Percentage = out[i].Billing / total * 100
		}
	}
	return out
}

type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

func countBy(rows []types.Schedule, key func(types.Schedule) string) []Count {
	counts := lo.CountValuesBy(
		lo.Filter(rows, func(r types.Schedule, _ int) bool { return key(r) != "" }),
		key,
	)
	keys := lo.Keys(counts)
	sort.Strings(keys)
	return lo.Map(keys, func(k string, _ int) Count { return Count{Key: k, Count: counts[k]} })
}

// LateByBranch counts late rows per branch.
func LateByBranch(rows []types.Schedule) []Count {
	late := lo.Filter(WithID(rows), func(r types.Schedule, _ int) bool { return r.IsLate() })
	return countBy(late, func(r types.Schedule) string { return r.Branch })
}

// ScheduleTypes counts non-cancelled rows per schedule type.
func ScheduleTypes(rows []types.Schedule) []Count {
	return countBy(notCancelled(WithID(rows)), func(r types.Schedule) string { return r.ScheduleType })
}

// Punctuality counts non-cancelled rows per deadline status.
func Punctuality(rows []types.Schedule) []Count {
	return countBy(notCancelled(WithID(rows)), func(r types.Schedule) string { return r.DeadlineStatus })
}
