package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/volaille/internal/config"
	"github.com/mamadbah2/volaille/internal/domain/models"
)

const snapshotRange = "Snapshots!A:H"

// Repository defines the spreadsheet export supported by the Google Sheets
// adapter. The spreadsheet is the bookkeeper's working copy of the daily
// figures, not a source of truth.
type Repository interface {
	AppendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSnapshot appends one daily snapshot as a spreadsheet row.
func (r *GoogleSheetRepository) AppendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	values := []interface{}{
		snapshot.Date.Format("2006-01-02"),
		snapshot.FarmID,
		snapshot.EggsCollected,
		snapshot.FeedCost,
		snapshot.MedicineCost,
		snapshot.Revenue,
		snapshot.Expenses,
		snapshot.Profit,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row: %w", err)
	}

	r.logger.Debug("snapshot row appended to sheet",
		zap.String("farm_id", snapshot.FarmID),
		zap.String("date", snapshot.Date.Format("2006-01-02")))
	return nil
}
