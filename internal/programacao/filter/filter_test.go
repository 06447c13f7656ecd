package filter

import (
	"testing"
	"time"

	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func fixture() []types.Schedule {
	return []types.Schedule{
		{ScheduleID: "1", Branch: "SMX MTZ", Region: "SUL", ServiceStartForecast: at("2023-11-10 08:00:00")},
		{ScheduleID: "2", Branch: "SMX FOR", Region: "NORDESTE", ServiceStartForecast: at("2024-03-01 00:00:00")},
		{ScheduleID: "3", Branch: "SMX SUA", Region: "NORDESTE", ServiceStartForecast: at("2024-03-31 23:59:59")},
		{ScheduleID: "4", Branch: "SMX CWB", Region: "SUL", ServiceStartForecast: at("2024-04-01 00:00:00")},
		{ScheduleID: "5", Branch: "", Region: ""},
		{ScheduleID: "6", Branch: "SMX MTZ", Region: "SUL"},
	}
}

func ids(rows []types.Schedule) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ScheduleID
	}
	return out
}

func TestMonthWindow_March2024(t *testing.T) {
	w := MonthWindow(2024, 3)
	assert.Equal(t, at("2024-03-01 00:00:00"), w.Start)
	assert.Equal(t, at("2024-03-31 23:59:59"), w.End)

	assert.True(t, w.Contains(at("2024-03-31 23:59:59")))
	assert.False(t, w.Contains(at("2024-04-01 00:00:00")))
	assert.False(t, w.Contains(time.Time{}), "null never lies in a window")
}

func TestMonthWindow_February(t *testing.T) {
	assert.Equal(t, at("2024-02-29 23:59:59"), MonthWindow(2024, 2).End)
	assert.Equal(t, at("2023-02-28 23:59:59"), MonthWindow(2023, 2).End)
	assert.Equal(t, at("2024-12-31 23:59:59"), MonthWindow(2024, 12).End)
}

func TestYearWindow(t *testing.T) {
	w := YearWindow(2023)
	assert.Equal(t, at("2023-01-01 00:00:00"), w.Start)
	assert.Equal(t, at("2023-12-31 23:59:59"), w.End)
}

func TestSpanWindow(t *testing.T) {
	w, ok := SpanWindow(fixture())
	require.True(t, ok)
	assert.Equal(t, at("2023-11-10 08:00:00"), w.Start)
	assert.Equal(t, at("2024-04-01 00:00:00"), w.End)

	_, ok = SpanWindow([]types.Schedule{{ScheduleID: "x"}})
	assert.False(t, ok)
}

func TestOptions(t *testing.T) {
	rows := fixture()
	assert.Equal(t, []string{All, "SUL", "NORDESTE"}, RegionOptions(rows))

	nordeste := ByRegion(rows, "NORDESTE")
	assert.Equal(t, []string{All, "SMX FOR", "SMX SUA"}, BranchOptions(nordeste))
	assert.Equal(t, []string{All, "SMX MTZ", "SMX FOR", "SMX SUA", "SMX CWB"}, BranchOptions(rows))
}

func TestNullBranchOnlyMatchesAll(t *testing.T) {
	rows := fixture()
	assert.Contains(t, ids(ByRegion(rows, All)), "5")
	assert.Contains(t, ids(ByBranch(rows, All)), "5")
	for _, region := range []string{"SUL", "NORDESTE", "SUDESTE"} {
		assert.NotContains(t, ids(ByRegion(rows, region)), "5")
	}
	for _, branch := range []string{"SMX MTZ", "SMX FOR"} {
		assert.NotContains(t, ids(ByBranch(rows, branch)), "5")
	}
}

func TestApply_MonthMode(t *testing.T) {
	sel := Selection{Region: All, Branch: All, Mode: ModeMonth, Year: 2024, Month: 3}
	res, err := Apply(fixture(), sel, true)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"2", "3"}, ids(res.Rows)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, res.Window)
	assert.Equal(t, MonthWindow(2024, 3), *res.Window)
}

func TestApply_YearAllSpansBranchFilteredRows(t *testing.T) {
	sel := Selection{Region: "SUL", Branch: All, Mode: ModeYear}
	res, err := Apply(fixture(), sel, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "4", "6"}, ids(res.BranchFiltered))
	assert.Equal(t, []string{"1", "4"}, ids(res.Rows), "rows without forecast are dropped by the date stage")
	assert.Equal(t, at("2023-11-10 08:00:00"), res.Window.Start)
	assert.Equal(t, at("2024-04-01 00:00:00"), res.Window.End)
	assert.Equal(t, []string{All, "SMX MTZ", "SMX CWB"}, res.BranchOptions)
}

func TestApply_SpecificYearAndBranch(t *testing.T) {
	sel := Selection{Region: All, Branch: "SMX MTZ", Mode: ModeYear, Year: 2023}
	res, err := Apply(fixture(), sel, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(res.Rows))
}

func TestApply_WithoutDateColumn(t *testing.T) {
	sel := Selection{Region: All, Branch: All, Mode: ModeMonth, Year: 2024, Month: 3}
	res, err := Apply(fixture(), sel, false)
	require.NoError(t, err)
	assert.Nil(t, res.Window)
	assert.Len(t, res.Rows, len(fixture()))
}

func TestApply_Monotonic(t *testing.T) {
	rows := fixture()
	selections := []Selection{
		DefaultSelection(),
		{Region: "SUL", Branch: All, Mode: ModeYear, Year: 2024},
		{Region: "NORDESTE", Branch: "SMX SUA", Mode: ModeMonth, Year: 2024, Month: 3},
		{Region: "SUDESTE", Branch: All, Mode: ModeYear},
		{Region: All, Branch: "SMX CWB", Mode: ModeMonth, Year: 2023, Month: 1},
	}
	for _, sel := range selections {
		res, err := Apply(rows, sel, true)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.RegionFiltered), len(rows))
		assert.LessOrEqual(t, len(res.BranchFiltered), len(res.RegionFiltered))
		assert.LessOrEqual(t, len(res.Rows), len(res.BranchFiltered))
		for _, r := range res.Rows {
			assert.Contains(t, rows, r, "stages never invent or mutate rows")
		}
	}
}

func TestApply_MonthModeNeedsYearAndMonth(t *testing.T) {
	_, err := Apply(fixture(), Selection{Region: All, Branch: All, Mode: ModeMonth, Month: 3}, true)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestApply_EmptyInput(t *testing.T) {
	res, err := Apply(nil, DefaultSelection(), true)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, []string{All}, res.RegionOptions)
}
