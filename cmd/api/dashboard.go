package main

import (
	"errors"
	"net/http"

	"github.com/farxc/sil_dashboard/internal/programacao"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/farxc/sil_dashboard/internal/response"
)

type GetDashboardResponse = response.APIResponse[*programacao.Dashboard]

// buildDashboard resolves the query selection against the current dataset,
// answering the request itself when that fails.
func (app *application) buildDashboard(w http.ResponseWriter, r *http.Request) (*programacao.Dashboard, bool) {
	ds := app.dataset.Load()
	if ds == nil {
		writeJSONError(w, http.StatusServiceUnavailable, programacao.ErrNoDataset.Error()+": no CSV file could be read from "+app.config.dataDir)
		return nil, false
	}

	sel, err := selectionFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	d, err := programacao.BuildDashboard(ds, sel, app.catalog)
	if err != nil {
		if errors.Is(err, filter.ErrInvalidSelection) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to build dashboard: "+err.Error())
		return nil, false
	}
	return d, true
}

func writeDashboardPart[T any](w http.ResponseWriter, d *programacao.Dashboard, message string, data T, widgets ...string) {
	resp := &response.APIResponse[T]{
		Success:  true,
		Message:  message,
		Data:     data,
		Warnings: messagesFor(d.Warnings, widgets...),
		Notices:  messagesFor(d.Notices, widgets...),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get dashboard
// @Description	Computes every KPI and chart series for the selection.
// @Tags			Dashboard
// @Produce		json
// @Param			region	query		string					false	"Region or All"
// @Param			branch	query		string					false	"Branch or All"
// @Param			mode	query		string					false	"year or month"	default(year)
// @Param			year	query		string					false	"Year or All"
// @Param			month	query		string					false	"Month number or Portuguese name"
// @Success		200		{object}	GetDashboardResponse
// @Failure		400		{object}	response.ErrorResponse	"Invalid selection"
// @Failure		503		{object}	response.ErrorResponse	"No dataset loaded"
// @Router			/dashboard [get]
func (app *application) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully computed dashboard", d)
}

// @Summary		Get filter options
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[programacao.Filters]
// @Router			/dashboard/filters [get]
func (app *application) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully retrieved filter options", d.Filters, programacao.WidgetDateFilter)
}

// @Summary		Get KPI tiles
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[metrics.KPIs]
// @Router			/dashboard/kpis [get]
func (app *application) handleGetKPIs(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully computed KPIs", d.KPIs,
		programacao.WidgetKPIs, programacao.WidgetBranches, programacao.WidgetDateFilter)
}

// @Summary		Get monthly billing
// @Description	Served and cancelled billing per month. Empty in month mode.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]metrics.MonthlyBilling]
// @Router			/dashboard/billing/monthly [get]
func (app *application) handleGetMonthlyBilling(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully computed monthly billing", d.Monthly,
		programacao.WidgetMonthly, programacao.WidgetDateFilter)
}

// @Summary		Get billing share per branch
// @Description	Only computed when every branch is selected.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]metrics.BranchShare]
// @Router			/dashboard/branches/share [get]
func (app *application) handleGetBranchShare(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully computed branch share", d.BranchShare, programacao.WidgetBranchShare)
}

// @Summary		Get late schedules per branch
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]metrics.Count]
// @Router			/dashboard/branches/late [get]
func (app *application) handleGetLateByBranch(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully computed late schedules per branch", d.LateByBranch, programacao.WidgetLateByBranch)
}

// @Summary		Get schedule type counts
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]metrics.Count]
// @Router			/dashboard/schedule-types [get]
func (app *application) handleGetScheduleTypes(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully computed schedule types", d.ScheduleTypes, programacao.WidgetScheduleTypes)
}

// @Summary		Get punctuality counts
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]metrics.Count]
// @Router			/dashboard/punctuality [get]
func (app *application) handleGetPunctuality(w http.ResponseWriter, r *http.Request) {
	d, ok := app.buildDashboard(w, r)
	if !ok {
		return
	}
	writeDashboardPart(w, d, "Successfully computed punctuality", d.Punctuality, programacao.WidgetPunctuality)
}
