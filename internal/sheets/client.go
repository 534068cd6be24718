// File: internal/sheets/client.go
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client talks to one spreadsheet through the Google Sheets API.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

// Config holds configuration for the Google Sheets client
type Config struct {
	ServiceAccountKeyPath string
	SpreadsheetID         string
}

// NewClient authenticates with the service account key at
// cfg.ServiceAccountKeyPath.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	credentials, err := os.ReadFile(cfg.ServiceAccountKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sheets: read service account key: %w", err)
	}
	return NewClientFromJSON(ctx, credentials, cfg.SpreadsheetID)
}

// NewClientFromJSON authenticates with an in-memory service account key.
func NewClientFromJSON(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*Client, error) {
	if err := ValidateCredentials(credentialsJSON); err != nil {
		return nil, err
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse service account key: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// GetSpreadsheet retrieves spreadsheet metadata
func (c *Client) GetSpreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: retrieve spreadsheet: %w", err)
	}
	return spreadsheet, nil
}

// sheetByName returns the sheet titled name, or nil.
func (c *Client) sheetByName(ctx context.Context, name string) (*sheets.Sheet, error) {
	spreadsheet, err := c.GetSpreadsheet(ctx)
	if err != nil {
		return nil, err
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == name {
			return sheet, nil
		}
	}
	return nil, nil
}

// EnsureSheet returns the ID of the sheet titled name, creating it when
// missing.
func (c *Client) EnsureSheet(ctx context.Context, name string) (int64, error) {
	existing, err := c.sheetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.Properties.SheetId, nil
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: create sheet %q: %w", name, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("sheets: create sheet %q: empty reply", name)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// Replace clears the sheet and writes rows from A1.
func (c *Client) Replace(ctx context.Context, name string, rows [][]any) error {
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, name, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %q: %w", name, err)
	}

	_, err = c.service.Spreadsheets.Values.Update(
		c.spreadsheetID,
		name+"!A1",
		&sheets.ValueRange{Values: rows},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: write %q: %w", name, err)
	}
	return nil
}

// BoldHeader shades and bolds the first row of sheetID across columns.
func (c *Client) BoldHeader(ctx context.Context, sheetID int64, columns int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(columns),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: &sheets.Color{Red: 0.85, Green: 0.9, Blue: 1},
						TextFormat:      &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		}},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: format header: %w", err)
	}
	return nil
}

// Info summarises the spreadsheet.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	spreadsheet, err := c.GetSpreadsheet(ctx)
	if err != nil {
		return nil, err
	}

	info := &Info{
		SpreadsheetID: spreadsheet.SpreadsheetId,
		Sheets:        make([]string, 0, len(spreadsheet.Sheets)),
	}
	if spreadsheet.Properties != nil {
		info.Title = spreadsheet.Properties.Title
	}
	for _, sheet := range spreadsheet.Sheets {
		info.Sheets = append(info.Sheets, sheet.Properties.Title)
	}
	return info, nil
}

// ValidateCredentials checks that credentialsJSON is a service account key.
func ValidateCredentials(credentialsJSON []byte) error {
	var creds map[string]any
	if err := json.Unmarshal(credentialsJSON, &creds); err != nil {
		return fmt.Errorf("sheets: invalid credentials JSON: %w", err)
	}

	for _, field := range []string{"type", "project_id", "private_key_id", "private_key", "client_email"} {
		if _, ok := creds[field]; !ok {
			return fmt.Errorf("sheets: credentials missing %s", field)
		}
	}

	if creds["type"] != "service_account" {
		return fmt.Errorf("sheets: expected a service_account key, got %v", creds["type"])
	}
	return nil
}
