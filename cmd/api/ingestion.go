package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/farxc/sil_dashboard/internal/programacao"
	"github.com/farxc/sil_dashboard/internal/programacao/files"
	"github.com/farxc/sil_dashboard/internal/response"
	"github.com/farxc/sil_dashboard/internal/store"
	"github.com/samber/lo"
)

type GetIngestionHistoryResponse = response.APIResponse[[]store.IngestionHistory]
type CreateIngestionResponse = response.APIResponse[*store.IngestionHistory]
type GetCurrentIngestionResponse = response.APIResponse[programacao.Summary]

// reload re-reads the data directory, swaps the current dataset and records
// the attempt. A directory with no loadable file clears the dataset.
func (app *application) reload(ctx context.Context, trigger string) (*store.IngestionHistory, error) {
	const component = "Ingestion"

	app.reloadMu.Lock()
	defer app.reloadMu.Unlock()

	ds, res, err := programacao.Load(ctx, app.config.dataDir, app.catalog, app.logger)

	history := &store.IngestionHistory{
		DataDir:      app.config.dataDir,
		TriggerType:  trigger,
		FilesLoaded:  len(res.Files),
		SkippedFiles: lo.Map(res.Skipped, func(e files.FileError, _ int) string { return e.Error() }),
	}

	switch {
	case err != nil:
		history.Status = store.StatusFailure
		history.ErrorMessage = err.Error()
		if errors.Is(err, files.ErrNoData) {
			app.dataset.Store(nil)
		}
		app.logger.Error(component, "Reload failed: trigger=%s dir=%s error=%v", trigger, app.config.dataDir, err)
	default:
		history.LoadID = ds.LoadID
		history.RowsLoaded = len(ds.Records)
		history.Status = store.StatusSuccess
		if len(ds.Skipped) > 0 {
			history.Status = store.StatusPartial
		}
		app.dataset.Store(ds)
		app.logger.Info(component, "Dataset swapped: trigger=%s load_id=%s status=%s", trigger, ds.LoadID, history.Status)
	}

	if herr := app.store.IngestionHistory.InsertIngestionHistory(ctx, history); herr != nil {
		app.logger.Error(component, "Failed to record ingestion history: error=%v", herr)
	}
	return history, err
}

// @Summary		Get current ingestion
// @Description	Summary of the dataset currently served.
// @Tags			Ingestion
// @Produce		json
// @Success		200	{object}	GetCurrentIngestionResponse
// @Failure		503	{object}	response.ErrorResponse	"No dataset loaded"
// @Router			/ingestion/current [get]
func (app *application) handleGetCurrentIngestion(w http.ResponseWriter, r *http.Request) {
	ds := app.dataset.Load()
	if ds == nil {
		writeJSONError(w, http.StatusServiceUnavailable, programacao.ErrNoDataset.Error())
		return
	}

	response := &GetCurrentIngestionResponse{
		Success: true,
		Data:    ds.Summary(),
		Message: "Successfully retrieved current dataset",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get ingestion history
// @Description	Get a list of the latest ingestion records.
// @Tags			Ingestion
// @Produce		json
// @Param			limit	query		int							false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetIngestionHistoryResponse	"Successfully retrieved latest ingestion records"
// @Failure		500		{object}	response.ErrorResponse		"Failed to get ingestion history"
// @Router			/ingestion/history [get]
func (app *application) handleGetIngestionHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.URL.Query().Get("limit"), store.DefaultHistoryLimit)

	ctx := r.Context()
	data, err := app.store.IngestionHistory.GetLatest(ctx, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get ingestion history: "+err.Error())
		return
	}

	response := &GetIngestionHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest ingestion records",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Reload the data directory
// @Description	Re-reads every CSV file and swaps the served dataset.
// @Tags			Ingestion
// @Produce		json
// @Success		201	{object}	CreateIngestionResponse
// @Failure		422	{object}	CreateIngestionResponse	"No CSV file could be loaded"
// @Failure		500	{object}	response.ErrorResponse	"Reload failed"
// @Router			/ingestion [post]
func (app *application) handleCreateIngestion(w http.ResponseWriter, r *http.Request) {
	history, err := app.reload(r.Context(), store.TriggerTypeManual)
	if err != nil && !errors.Is(err, files.ErrNoData) {
		writeJSONError(w, http.StatusInternalServerError, "failed to reload dataset: "+err.Error())
		return
	}

	status := http.StatusCreated
	response := &CreateIngestionResponse{
		Success:  err == nil,
		Data:     history,
		Message:  "Dataset reloaded",
		Warnings: history.SkippedFiles,
	}
	if err != nil {
		status = http.StatusUnprocessableEntity
		response.Message = err.Error()
	}

	if err := writeJSON(w, status, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
