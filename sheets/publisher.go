// Package sheets publishes finished runs as a shared Google Sheet.
// The engine itself never writes output files; this is the tabulation
// collaborator it hands records to.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Zavian3/truck-listings-scrapper/models"
	"github.com/Zavian3/truck-listings-scrapper/progress"
)

type Publisher struct {
	sheets *sheets.Service
	drive  *drive.Service
	rep    progress.Reporter
}

const scope = "sheets"

// NewPublisher authenticates against the Sheets and Drive APIs with a
// service-account credentials file. Missing credentials are a setup
// failure: the caller should abort before any extraction starts.
func NewPublisher(ctx context.Context, credentialsFile string, rep progress.Reporter) (*Publisher, error) {
	sheetsSvc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	return &Publisher{sheets: sheetsSvc, drive: driveSvc, rep: rep}, nil
}

// Publish creates a spreadsheet named title, uploads the records with
// a header row, formats the header and shares the sheet with anyone
// holding the link. It returns the shareable URL and the spreadsheet
// id. Formatting and sharing failures downgrade to warnings; only the
// create and upload steps are fatal.
func (p *Publisher) Publish(ctx context.Context, title string, records []models.ListingRecord) (string, string, error) {
	if len(records) == 0 {
		return "", "", fmt.Errorf("no records to publish")
	}

	ss, err := p.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("create spreadsheet: %w", err)
	}
	progress.Infof(p.rep, scope, "created spreadsheet %q", title)

	values := make([][]any, 0, len(records)+1)
	header := make([]any, 0, len(models.Columns()))
	for _, col := range models.Columns() {
		header = append(header, col)
	}
	values = append(values, header)
	for _, rec := range records {
		row := make([]any, 0, len(header))
		for _, cell := range rec.Row() {
			row = append(row, cell)
		}
		values = append(values, row)
	}

	_, err = p.sheets.Spreadsheets.Values.
		Update(ss.SpreadsheetId, "A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("upload rows: %w", err)
	}
	progress.Successf(p.rep, scope, "uploaded %d rows", len(values))

	if err := p.formatHeader(ctx, ss); err != nil {
		progress.Warnf(p.rep, scope, "header formatting failed: %v", err)
	}
	if err := p.shareWithAnyone(ctx, ss.SpreadsheetId); err != nil {
		progress.Warnf(p.rep, scope, "sharing failed, check permissions manually: %v", err)
	} else {
		progress.Successf(p.rep, scope, "sheet is editable by anyone with the link")
	}

	return ss.SpreadsheetUrl, ss.SpreadsheetId, nil
}

func (p *Publisher) formatHeader(ctx context.Context, ss *sheets.Spreadsheet) error {
	if len(ss.Sheets) == 0 {
		return fmt.Errorf("spreadsheet has no sheets")
	}
	grey := &sheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9}
	_, err := p.sheets.Spreadsheets.BatchUpdate(ss.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       ss.Sheets[0].Properties.SheetId,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor:     grey,
						TextFormat:          &sheets.TextFormat{Bold: true},
						HorizontalAlignment: "CENTER",
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
			},
		}},
	}).Context(ctx).Do()
	return err
}

func (p *Publisher) shareWithAnyone(ctx context.Context, spreadsheetID string) error {
	_, err := p.drive.Permissions.Create(spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "writer",
	}).Context(ctx).Do()
	return err
}
