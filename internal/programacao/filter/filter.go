// Package filter narrows the schedule set by region, then branch, then a date
// window. Every stage returns a subset of its input.
package filter

import (
	"fmt"
	"time"

	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/samber/lo"
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies in the window. A null (zero) time never does.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

func YearWindow(year int) Window {
	return Window{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
	}
}

// MonthWindow spans the first instant of the month to one second before the
// next one.
func MonthWindow(year, month int) Window {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Second)}
}

// SpanWindow is [min, max] of the non-null forecasts in rows. ok is false when
// no row has a forecast.
func SpanWindow(rows []types.Schedule) (w Window, ok bool) {
	for _, r := range rows {
		if !r.HasForecast() {
			continue
		}
		t := r.ServiceStartForecast
		if !ok {
			w = Window{Start: t, End: t}
			ok = true
			continue
		}
		if t.Before(w.Start) {
			w.Start = t
		}
		if t.After(w.End) {
			w.End = t
		}
	}
	return w, ok
}

func distinctNonEmpty(rows []types.Schedule, key func(types.Schedule) string) []string {
	values := lo.FilterMap(rows, func(r types.Schedule, _ int) (string, bool) {
		v := key(r)
		return v, v != ""
	})
	return append([]string{All}, lo.Uniq(values)...)
}

// RegionOptions lists All plus the regions observed in rows, first seen first.
func RegionOptions(rows []types.Schedule) []string {
	return distinctNonEmpty(rows, func(r types.Schedule) string { return r.Region })
}

// BranchOptions lists All plus the branches observed in rows. Callers pass the
// region-filtered rows so the options follow the region choice.
func BranchOptions(rows []types.Schedule) []string {
	return distinctNonEmpty(rows, func(r types.Schedule) string { return r.Branch })
}

func ByRegion(rows []types.Schedule, region string) []types.Schedule {
	if IsAll(region) {
		return rows
	}
	return lo.Filter(rows, func(r types.Schedule, _ int) bool { return r.Region == region })
}

func ByBranch(rows []types.Schedule, branch string) []types.Schedule {
	if IsAll(branch) {
		return rows
	}
	return lo.Filter(rows, func(r types.Schedule, _ int) bool { return r.Branch == branch })
}

func ByWindow(rows []types.Schedule, w Window) []types.Schedule {
	return lo.Filter(rows, func(r types.Schedule, _ int) bool { return w.Contains(r.ServiceStartForecast) })
}

// ResolveWindow picks the date window for sel. Year mode with All years spans
// the forecasts of rows.
func ResolveWindow(sel Selection, rows []types.Schedule) (Window, error) {
	switch sel.Mode {
	case ModeMonth:
		if sel.Year == 0 || sel.Month == 0 {
			return Window{}, fmt.Errorf("%w: month mode needs a specific year and month", ErrInvalidSelection)
		}
		return MonthWindow(sel.Year, sel.Month), nil
	case ModeYear, "":
		if sel.Year != 0 {
			return YearWindow(sel.Year), nil
		}
		w, _ := SpanWindow(rows)
		return w, nil
	default:
		return Window{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidSelection, sel.Mode)
	}
}

// Result keeps the output of every stage so charts can pick the stage they
// aggregate over.
type Result struct {
	Selection      Selection
	RegionOptions  []string
	BranchOptions  []string
	RegionFiltered []types.Schedule
	BranchFiltered []types.Schedule
	Rows           []types.Schedule
	// Window is nil when the date stage was skipped.
	Window *Window
}

// Apply runs region -> branch -> date over rows. When hasDateColumn is false
// the date stage passes rows through.
func Apply(rows []types.Schedule, sel Selection, hasDateColumn bool) (Result, error) {
	if err := sel.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Selection: sel}
	res.RegionOptions = RegionOptions(rows)
	res.RegionFiltered = ByRegion(rows, sel.Region)
	res.BranchOptions = BranchOptions(res.RegionFiltered)
	res.BranchFiltered = ByBranch(res.RegionFiltered, sel.Branch)

	if !hasDateColumn {
		res.Rows = res.BranchFiltered
		return res, nil
	}

	w, err := ResolveWindow(sel, res.BranchFiltered)
	if err != nil {
		return Result{}, err
	}
	res.Window = &w
	res.Rows = ByWindow(res.BranchFiltered, w)
	return res, nil
}
