// Package sheets stores the table in a Google Sheets worksheet: one header
// row followed by one row per entry.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"didilikeit/config"
	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/errors"
	"didilikeit/internal/infra/tablestore"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

// Store is a TableStore backed by one worksheet.
type Store struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *slog.Logger
}

// New builds a Sheets client from the configured service account file.
func New(ctx context.Context, cfg *config.SheetsConfig, logger *slog.Logger, opts ...option.ClientOption) (*Store, error) {
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sheets client")
	}

	return &Store{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}, nil
}

// ReadAll fetches every populated cell of the worksheet.
func (s *Store) ReadAll(ctx context.Context) (*entity.Snapshot, error) {
	rows, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return entity.NewSnapshot(rows), nil
}

// ReplaceAll overwrites the worksheet with the header plus rows in a single
// update. Cells of the previous table beyond the new one are written blank in
// the same call, so there is no moment where the worksheet is empty. The
// version check and the write are two calls; a concurrent writer can still
// slip in between them.
func (s *Store) ReplaceAll(ctx context.Context, rows []*entity.LogEntry, ifVersion string) error {
	previous, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	if ifVersion != "" && entity.Fingerprint(tablestore.Decode(previous)) != ifVersion {
		return repository.ErrVersionMismatch
	}

	values := overwrite(tablestore.Encode(rows), previous)

	if _, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, s.sheetRange(), &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do(); err != nil {
		return s.storeError("update", err)
	}

	s.logger.Debug("Replaced worksheet", slog.String("sheet", s.sheetName), slog.Int("rows", len(rows)))

	return nil
}

func (s *Store) read(ctx context.Context) ([]*entity.LogEntry, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return tablestore.Decode(records), nil
}

func (s *Store) fetch(ctx context.Context) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetRange()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.storeError("read", err)
	}

	records := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		records[i] = make([]string, len(row))
		for j, cell := range row {
			records[i][j] = fmt.Sprint(cell)
		}
	}

	return records, nil
}

// overwrite pads records with blank cells to cover every cell of previous.
func overwrite(records, previous [][]string) [][]any {
	height := max(len(records), len(previous))
	width := 0
	for _, record := range records {
		width = max(width, len(record))
	}
	for _, record := range previous {
		width = max(width, len(record))
	}

	values := make([][]any, height)
	for i := range values {
		values[i] = make([]any, width)
		for j := range values[i] {
			values[i][j] = ""
		}
		if i < len(records) {
			for j, cell := range records[i] {
				values[i][j] = cell
			}
		}
	}

	return values
}

func (s *Store) sheetRange() string {
	return "'" + s.sheetName + "'"
}

func (s *Store) storeError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		s.logger.Error("Spreadsheet or worksheet not found", slog.String("spreadsheet_id", s.spreadsheetID), slog.String("sheet", s.sheetName))
	}

	return repository.NewStoreError("sheets "+op, err)
}
