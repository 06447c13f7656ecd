package programacao

import (
	"fmt"

	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/farxc/sil_dashboard/internal/programacao/metrics"
	"github.com/farxc/sil_dashboard/internal/programacao/types"
)

// Widgets that may carry a warning or notice.
const (
	WidgetKPIs          = "kpis"
	WidgetDateFilter    = "date_filter"
	WidgetBranches      = "branches"
	WidgetMonthly       = "monthly_billing"
	WidgetBranchShare   = "branch_share"
	WidgetLateByBranch  = "late_by_branch"
	WidgetScheduleTypes = "schedule_types"
	WidgetPunctuality   = "punctuality"
)

// Message is a warning or an informational notice attached to a widget.
type Message struct {
	Widget string `json:"widget"`
	Text   string `json:"text"`
}

type Filters struct {
	Regions  []string       `json:"regions"`
	Branches []string       `json:"branches"`
	Years    []string       `json:"years"`
	Months   []string       `json:"months"`
	Window   *filter.Window `json:"window,omitempty"`
}

// Dashboard is everything computed for one selection. Chart series are nil
// when the chart does not apply to the selection or has no data.
type Dashboard struct {
	LoadID        string                   `json:"load_id"`
	Selection     filter.Selection         `json:"selection"`
	Filters       Filters                  `json:"filters"`
	KPIs          metrics.KPIs             `json:"kpis"`
	Monthly       []metrics.MonthlyBilling `json:"monthly_billing,omitempty"`
	BranchShare   []metrics.BranchShare    `json:"branch_share,omitempty"`
	LateByBranch  []metrics.Count          `json:"late_by_branch,omitempty"`
	ScheduleTypes []metrics.Count          `json:"schedule_types,omitempty"`
	Punctuality   []metrics.Count          `json:"punctuality,omitempty"`
	Warnings      []Message                `json:"warnings"`
	Notices       []Message                `json:"notices"`
}

func missingColumn(col string) string {
	return fmt.Sprintf("A coluna '%s' não foi encontrada no dataframe.", col)
}

const (
	noticeNoBilling = "Não há dados disponíveis para as transportadoras selecionadas neste período."
	noticeNoLate    = "Não há programações atrasadas para as transportadoras selecionadas neste período."
	noticeNoRows    = "Não há programações para a seleção atual."
)

// BuildDashboard filters ds by sel and computes every widget. It only fails
// when sel is invalid.
func BuildDashboard(ds *Dataset, sel filter.Selection, c *catalog.Catalog) (*Dashboard, error) {
	hasDate := ds.HasColumn(types.ColServiceStartForecast)
	res, err := filter.Apply(ds.Records, sel, hasDate)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		LoadID:    ds.LoadID,
		Selection: sel,
		Filters: Filters{
			Regions:  res.RegionOptions,
			Branches: res.BranchOptions,
			Years:    filter.YearOptions(c.SortedYears()),
			Months:   filter.MonthOptions(),
			Window:   res.Window,
		},
		Warnings: []Message{},
		Notices:  []Message{},
	}
	warn := func(widget, text string) { d.Warnings = append(d.Warnings, Message{Widget: widget, Text: text}) }
	notice := func(widget, text string) { d.Notices = append(d.Notices, Message{Widget: widget, Text: text}) }

	if !ds.HasColumn(types.ColScheduleID) {
		warn(WidgetKPIs, missingColumn(types.ColScheduleID))
	}
	if !ds.HasColumn(types.ColCarrierTaxID) {
		warn(WidgetBranches, missingColumn(types.ColCarrierTaxID))
	}
	if !hasDate {
		warn(WidgetDateFilter, missingColumn(types.ColServiceStartForecast))
	}

	d.KPIs = metrics.Compute(res.Rows, sel.Branch, c)
	if d.KPIs.TotalSchedules == 0 {
		notice(WidgetKPIs, noticeNoRows)
	}

	if sel.Mode != filter.ModeMonth && hasDate {
		d.Monthly = metrics.Monthly(res.BranchFiltered, metrics.MonthlyYears(sel, c), c)
	}

	if sel.AllBranches() {
		d.BranchShare = metrics.ShareByBranch(res.Rows, c)
		if len(d.BranchShare) == 0 {
			notice(WidgetBranchShare, noticeNoBilling)
		}
	}

	if ds.HasColumn(types.ColScheduleType) {
		d.ScheduleTypes = metrics.ScheduleTypes(res.Rows)
		if len(d.ScheduleTypes) == 0 {
			notice(WidgetScheduleTypes, noticeNoRows)
		}
	} else {
		warn(WidgetScheduleTypes, missingColumn(types.ColScheduleType))
	}

	if ds.HasColumn(types.ColDeadlineStatus) {
		d.Punctuality = metrics.Punctuality(res.Rows)
		if len(d.Punctuality) == 0 {
			notice(WidgetPunctuality, noticeNoRows)
		}
		d.LateByBranch = metrics.LateByBranch(res.Rows)
		if len(d.LateByBranch) == 0 {
			notice(WidgetLateByBranch, noticeNoLate)
		}
	} else {
		warn(WidgetPunctuality, missingColumn(types.ColDeadlineStatus))
		warn(WidgetLateByBranch, missingColumn(types.ColDeadlineStatus))
	}

	return d, nil
}

// WarningTexts flattens messages for the API response envelope.
func WarningTexts(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Widget + ": " + m.Text
	}
	return out
}
