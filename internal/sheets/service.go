// File: internal/sheets/service.go
package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
)

// Backend is the subset of Client the Service needs.
type Backend interface {
	EnsureSheet(ctx context.Context, name string) (int64, error)
	Replace(ctx context.Context, name string, rows [][]any) error
	BoldHeader(ctx context.Context, sheetID int64, columns int) error
	Info(ctx context.Context) (*Info, error)
}

// Info describes the configured spreadsheet.
type Info struct {
	SpreadsheetID string   `json:"spreadsheet_id"`
	Title         string   `json:"spreadsheet_title"`
	Sheets        []string `json:"sheets"`
}

// Service writes passenger manifests to a spreadsheet.
type Service struct {
	backend Backend
	now     func() time.Time
}

func NewService(backend Backend) *Service {
	return &Service{
		backend: backend,
		now:     time.Now,
	}
}

// ExportManifest replaces the contents of sheetName with the manifest of
// flight and returns the number of passenger rows written.
func (s *Service) ExportManifest(ctx context.Context, sheetName string, flight *data.Flight, passengers []*data.Passenger, exportedBy string) (int, error) {
	sheetID, err := s.backend.EnsureSheet(ctx, sheetName)
	if err != nil {
		return 0, err
	}

	rows := FormatManifestData(flight, passengers, exportedBy, s.now())
	if err := s.backend.Replace(ctx, sheetName, rows); err != nil {
		return 0, err
	}
	if err := s.backend.BoldHeader(ctx, sheetID, len(ManifestHeader)); err != nil {
		return 0, err
	}

	return len(passengers), nil
}

// SpreadsheetInfo returns the spreadsheet title and its sheets.
func (s *Service) SpreadsheetInfo(ctx context.Context) (*Info, error) {
	return s.backend.Info(ctx)
}

// ManifestSheetName names the sheet of a flight's manifest, for example
// "Pasajeros_AV-801_2025-11-15".
func ManifestSheetName(flight *data.Flight) string {
	return fmt.Sprintf("Pasajeros_%s_%s", flight.Code, flight.Date)
}
