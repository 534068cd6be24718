// File: internal/data/exports.go
package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

// Export states.
const (
	ExportPending   = "pending"
	ExportCompleted = "completed"
	ExportFailed    = "failed"
)

// ExportHistory records one manifest export to a spreadsheet.
type ExportHistory struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	FlightID      int64     `json:"flight_id"`
	SpreadsheetID string    `json:"spreadsheet_id"`
	SheetName     string    `json:"sheet_name"`
	RowCount      int64     `json:"row_count"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExportHistoryModel wraps a sql.DB connection pool.
type ExportHistoryModel struct {
	DB *sql.DB
}

// ExportFilter narrows the export history listing. Zero values match
// everything.
type ExportFilter struct {
	Filter   Filter
	FlightID int64
	Status   string
}

// ExportSortSafeList holds the accepted values of the sort parameter.
var ExportSortSafeList = []string{"id", "created_at", "-id", "-created_at"}

// ----------------------------------------------------------------------
//
//	Methods
//
// ----------------------------------------------------------------------

// Fail marks the export as failed with the cause.
func (e *ExportHistory) Fail(cause error) {
	e.Status = ExportFailed
	e.ErrorMessage = cause.Error()
}

// Complete marks the export as done with rows written.
func (e *ExportHistory) Complete(rows int) {
	e.Status = ExportCompleted
	e.RowCount = int64(rows)
	e.ErrorMessage = ""
}

// Insert stores a new export record.
func (m *ExportHistoryModel) Insert(export *ExportHistory) error {
	query := `
		INSERT INTO export_history (user_id, flight_id, spreadsheet_id, sheet_name, row_count, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	ctx, cancel := getContext()
	defer cancel()

	return m.DB.QueryRowContext(ctx, query,
		export.UserID,
		export.FlightID,
		export.SpreadsheetID,
		export.SheetName,
		export.RowCount,
		export.Status,
		export.ErrorMessage,
	).Scan(&export.ID, &export.CreatedAt)
}

// Update writes the outcome of an export.
func (m *ExportHistoryModel) Update(export *ExportHistory) error {
	query := `
		UPDATE export_history
		SET status = $1, error_message = $2, row_count = $3
		WHERE id = $4`

	ctx, cancel := getContext()
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, export.Status, export.ErrorMessage, export.RowCount, export.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Get retrieves an export record by ID.
func (m *ExportHistoryModel) Get(id int64) (*ExportHistory, error) {
	query := `
		SELECT id, user_id, flight_id, spreadsheet_id, sheet_name, row_count, status, error_message, created_at
		FROM export_history
		WHERE id = $1`

	ctx, cancel := getContext()
	defer cancel()

	export := &ExportHistory{}
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&export.ID,
		&export.UserID,
		&export.FlightID,
		&export.SpreadsheetID,
		&export.SheetName,
		&export.RowCount,
		&export.Status,
		&export.ErrorMessage,
		&export.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return export, nil
}

// GetAll lists export records matching filter.
func (m *ExportHistoryModel) GetAll(filter ExportFilter) ([]*ExportHistory, MetaData, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), id, user_id, flight_id, spreadsheet_id, sheet_name, row_count, status, error_message, created_at
		FROM export_history
		WHERE (flight_id = $1 OR $1 = 0)
		  AND (status = $2 OR $2 = '')
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`, filter.Filter.SortColumn(), filter.Filter.SortDirection())

	ctx, cancel := getContext()
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query,
		filter.FlightID,
		filter.Status,
		filter.Filter.Limit(),
		filter.Filter.Offset(),
	)
	if err != nil {
		return nil, MetaData{}, err
	}
	defer rows.Close()

	exports := []*ExportHistory{}
	totalRecords := int64(0)

	for rows.Next() {
		export := &ExportHistory{}
		if err := rows.Scan(
			&totalRecords,
			&export.ID,
			&export.UserID,
			&export.FlightID,
			&export.SpreadsheetID,
			&export.SheetName,
			&export.RowCount,
			&export.Status,
			&export.ErrorMessage,
			&export.CreatedAt,
		); err != nil {
			return nil, MetaData{}, err
		}
		exports = append(exports, export)
	}
	if err := rows.Err(); err != nil {
		return nil, MetaData{}, err
	}

	return exports, CalculateMetaData(totalRecords, filter.Filter.Page, filter.Filter.PageSize), nil
}
