package programacao

import (
	"context"
	"errors"
	"testing"

	"github.com/farxc/sil_dashboard/internal/logger"
	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/files"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/farxc/sil_dashboard/internal/programacao/metrics"
	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/farxc/sil_dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScenario(t *testing.T) *Dataset {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.csv", testutil.ExportCSV(
		testutil.Row{ID: "1", Status: "AGENDADA", Deadline: types.DeadlineOnTime, Forecast: "05/03/2024 08:00:00", TaxID: testutil.TaxMTZ, Type: "Coleta"},
		testutil.Row{ID: "2", Status: types.StatusCancelled, Deadline: types.DeadlineLate, Forecast: "06/03/2024 08:00:00", TaxID: testutil.TaxMTZ, Type: "Coleta"},
	))
	testutil.WriteLatin1File(t, dir, "b.csv", testutil.ExportCSV(
		testutil.Row{ID: "3", Status: "AGENDADA", Deadline: types.DeadlineLate, Forecast: "10/04/2024 14:30:00", TaxID: testutil.TaxFOR, Type: "Entrega"},
	))

	ds, _, err := Load(context.Background(), dir, catalog.Default(), logger.NewNop())
	require.NoError(t, err)
	return ds
}

func TestLoad(t *testing.T) {
	ds := loadScenario(t)

	assert.NotEmpty(t, ds.LoadID)
	assert.Len(t, ds.Files, 2)
	assert.Empty(t, ds.Skipped)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, "SMX MTZ", ds.Records[0].Branch)
	assert.Equal(t, "SUL", ds.Records[0].Region)
	assert.Equal(t, "NORDESTE", ds.Records[2].Region)
	assert.ElementsMatch(t, types.RequiredColumns, ds.Columns)

	sum := ds.Summary()
	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, ds.LoadID, sum.LoadID)
}

func TestLoad_NoData(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "empty.csv", testutil.ExportCSV())

	ds, res, err := Load(context.Background(), dir, catalog.Default(), logger.NewNop())
	assert.Nil(t, ds)
	assert.True(t, errors.Is(err, files.ErrNoData))
	require.Len(t, res.Skipped, 1)
	assert.NotEmpty(t, SkippedFiles(res.Skipped)[0].Reason)
}

func TestBuildDashboard_Default(t *testing.T) {
	ds := loadScenario(t)
	c := catalog.Default()

	d, err := BuildDashboard(ds, filter.DefaultSelection(), c)
	require.NoError(t, err)

	assert.Equal(t, 3, d.KPIs.TotalSchedules)
	assert.Equal(t, 1, d.KPIs.CancelledSchedules)
	assert.Equal(t, 3850.0, d.KPIs.BillingTotal)
	assert.Equal(t, 2350.0, d.KPIs.BillingServed)
	assert.InDelta(t, 47.0, d.KPIs.Penalty, 1e-9)

	assert.Equal(t, []string{filter.All, "SUL", "NORDESTE"}, d.Filters.Regions)
	assert.Equal(t, []string{filter.All, "SMX MTZ", "SMX FOR"}, d.Filters.Branches)
	assert.Equal(t, []string{filter.All, "2023", "2024"}, d.Filters.Years)
	require.NotNil(t, d.Filters.Window)

	assert.Len(t, d.Monthly, 24)
	assert.Len(t, d.BranchShare, 2)
	assert.Equal(t, []metrics.Count{{Key: "SMX FOR", Count: 1}, {Key: "SMX MTZ", Count: 1}}, d.LateByBranch)
	assert.Empty(t, d.Warnings)
	assert.Empty(t, d.Notices)
}

func TestBuildDashboard_MonthAndBranch(t *testing.T) {
	ds := loadScenario(t)
	sel, err := filter.ParseSelection("SUL", "SMX MTZ", "month", "2024", "Março")
	require.NoError(t, err)

	d, err := BuildDashboard(ds, sel, catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, 2, d.KPIs.TotalSchedules)
	assert.Equal(t, 3000.0, d.KPIs.BillingTotal)
	assert.Equal(t, 1500.0, d.KPIs.BillingServed)
	assert.Nil(t, d.Monthly)
	assert.Nil(t, d.BranchShare)
	assert.Equal(t, []string{filter.All, "SMX MTZ"}, d.Filters.Branches)
}

func TestBuildDashboard_EmptySelectionCarriesNotices(t *testing.T) {
	ds := loadScenario(t)
	sel, err := filter.ParseSelection("All", "All", "month", "2023", "1")
	require.NoError(t, err)

	d, err := BuildDashboard(ds, sel, catalog.Default())
	require.NoError(t, err)

	assert.Zero(t, d.KPIs.TotalSchedules)
	widgets := make([]string, 0, len(d.Notices))
	for _, n := range d.Notices {
		widgets = append(widgets, n.Widget)
	}
	assert.ElementsMatch(t, []string{WidgetKPIs, WidgetBranchShare, WidgetScheduleTypes, WidgetPunctuality, WidgetLateByBranch}, widgets)
}

func TestBuildDashboard_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "partial.csv", testutil.CSV(
		[]string{types.ColScheduleID, types.ColStatus, types.ColCarrierTaxID},
		[][]string{{"1", "AGENDADA", testutil.TaxSSZ}},
	))
	ds, _, err := Load(context.Background(), dir, catalog.Default(), logger.NewNop())
	require.NoError(t, err)

	d, err := BuildDashboard(ds, filter.DefaultSelection(), catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, 1, d.KPIs.TotalSchedules)
	assert.Equal(t, 1250.0, d.KPIs.BillingTotal)
	assert.Nil(t, d.Filters.Window)
	assert.Nil(t, d.Monthly)
	assert.Nil(t, d.ScheduleTypes)
	assert.Nil(t, d.Punctuality)

	widgets := make([]string, 0, len(d.Warnings))
	for _, w := range d.Warnings {
		widgets = append(widgets, w.Widget)
	}
	assert.ElementsMatch(t, []string{WidgetDateFilter, WidgetScheduleTypes, WidgetPunctuality, WidgetLateByBranch}, widgets)
	assert.Contains(t, WarningTexts(d.Warnings)[0], "não foi encontrada")
}

func TestBuildDashboard_LaterFileLacksIDAndType(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.csv", testutil.ExportCSV(
		testutil.Row{ID: "1001", Status: "AGENDADA", Deadline: types.DeadlineOnTime, Forecast: "05/03/2024 08:00:00", TaxID: testutil.TaxMTZ, Type: "Coleta"},
	))
	testutil.WriteFile(t, dir, "b.csv", testutil.CSV(
		[]string{types.ColStatus, types.ColDeadlineStatus, types.ColServiceStartForecast, types.ColCarrierTaxID},
		[][]string{
			{"AGENDADA", types.DeadlineLate, "10/04/2024 14:30:00", testutil.TaxFOR},
			{types.StatusCancelled, types.DeadlineLate, "11/04/2024 09:00:00", testutil.TaxFOR},
		},
	))
	ds, _, err := Load(context.Background(), dir, catalog.Default(), logger.NewNop())
	require.NoError(t, err)
	require.Len(t, ds.Records, 3)
	assert.Empty(t, ds.Records[1].ScheduleID)
	assert.Empty(t, ds.Records[2].ScheduleType)

	d, err := BuildDashboard(ds, filter.DefaultSelection(), catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, 1, d.KPIs.TotalSchedules)
	assert.Zero(t, d.KPIs.CancelledSchedules)
	assert.Zero(t, d.KPIs.LateSchedules)
	assert.Equal(t, 1500.0, d.KPIs.BillingTotal)
	assert.Equal(t, 1500.0, d.KPIs.BillingServed)
	assert.InDelta(t, 30.0, d.KPIs.Penalty, 1e-9)

	assert.Equal(t, []metrics.Count{{Key: "Coleta", Count: 1}}, d.ScheduleTypes)
	assert.Equal(t, []metrics.Count{{Key: types.DeadlineOnTime, Count: 1}}, d.Punctuality)
	assert.Empty(t, d.LateByBranch)

	var monthly float64
	for _, m := range d.Monthly {
		monthly += m.Total
	}
	assert.Equal(t, 1500.0, monthly)
	assert.Empty(t, d.Warnings)
}

func TestBuildDashboard_InvalidSelection(t *testing.T) {
	ds := loadScenario(t)
	_, err := BuildDashboard(ds, filter.Selection{Mode: filter.ModeMonth, Year: 2024}, catalog.Default())
	assert.True(t, errors.Is(err, filter.ErrInvalidSelection))
}
