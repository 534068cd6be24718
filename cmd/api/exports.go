// File: cmd/api/exports.go
// Description: passenger manifest export to Google Sheets

package main

import (
	"fmt"
	"net/http"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/sheets"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

const msgSheetsUnavailable = "Google Sheets is not configured"

// exportPassengersHandler writes a flight's manifest to the configured
// spreadsheet and records the attempt in the export history.
func (app *app) exportPassengersHandler(w http.ResponseWriter, r *http.Request) {
	if app.sheets == nil {
		app.serviceUnavailableResponse(w, r, msgSheetsUnavailable)
		return
	}

	flight, ok := app.readFlight(w, r)
	if !ok {
		return
	}

	var exportPayload struct {
		SheetName string `json:"sheet_name"`
	}
	if r.ContentLength != 0 {
		if err := app.readJSON(w, r, &exportPayload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	v := validator.New()
	v.Check(len(exportPayload.SheetName) <= 100, "sheet_name", "no debe superar 100 caracteres")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user := app.contextGetUser(r)

	export := &data.ExportHistory{
		UserID:        user.ID,
		FlightID:      flight.ID,
		SpreadsheetID: app.config.sheets.spreadsheetID,
		SheetName:     exportPayload.SheetName,
		Status:        data.ExportPending,
	}
	if export.SheetName == "" {
		export.SheetName = sheets.ManifestSheetName(flight)
	}

	if err := app.models.Exports.Insert(export); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	passengers, err := app.models.Reservations.GetPassengers(flight.ID)
	if err != nil {
		app.failExport(export, fmt.Errorf("fetch passengers: %w", err))
		app.serverErrorResponse(w, r, err)
		return
	}

	exportedBy := fmt.Sprintf("%s (%s)", user.FullName(), user.Email)
	rows, err := app.sheets.ExportManifest(r.Context(), export.SheetName, flight, passengers, exportedBy)
	if err != nil {
		app.failExport(export, err)
		app.serverErrorResponse(w, r, err)
		return
	}

	export.Complete(rows)
	if err := app.models.Exports.Update(export); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"export":  export,
		"message": fmt.Sprintf("%d reservas exportadas a la hoja '%s'", rows, export.SheetName),
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// failExport stores the failure; a second failure is only logged.
func (app *app) failExport(export *data.ExportHistory, cause error) {
	export.Fail(cause)
	if err := app.models.Exports.Update(export); err != nil {
		app.logger.Error("failed to record export failure", "export_id", export.ID, "error", err)
	}
}

// listExportHistoryHandler lists past manifest exports.
func (app *app) listExportHistoryHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	v := validator.New()

	filter := data.ExportFilter{
		Filter:   app.readFilters(query, "-created_at", 20, data.ExportSortSafeList, v),
		FlightID: int64(app.getSingleIntQueryParameter(query, "flight_id", 0, v)),
		Status:   app.getSingleQueryParameter(query, "status", ""),
	}
	if filter.Status != "" {
		v.Check(v.Permitted(filter.Status, data.ExportPending, data.ExportCompleted, data.ExportFailed), "status", "estado inválido")
	}
	if data.ValidateFilters(v, filter.Filter); !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	exports, metadata, err := app.models.Exports.GetAll(filter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"exports": exports, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// getSheetsInfoHandler describes the configured spreadsheet.
func (app *app) getSheetsInfoHandler(w http.ResponseWriter, r *http.Request) {
	if app.sheets == nil {
		app.serviceUnavailableResponse(w, r, msgSheetsUnavailable)
		return
	}

	info, err := app.sheets.SpreadsheetInfo(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"sheets_info": info}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
