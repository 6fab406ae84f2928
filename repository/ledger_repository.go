package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"registration-service/apperrors"
	"registration-service/models"
	"registration-service/storage"
)

const (
	// WorkbookName is the well-known blob holding the whole ledger.
	WorkbookName = "physics-mock-test-registrations.xlsx"

	// ContentTypeXLSX is set on every workbook upload and download.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Registrations"

	headerColor = "1E3A8A"
	minColWidth = 10
)

type column struct {
	header string
	width  float64
}

var columns = []column{
	{"Registration Date", 20},
	{"Payment ID", 30},
	{"Student Name", 25},
	{"Email", 30},
	{"Mobile", 15},
	{"Parent Mobile", 15},
	{"Stream", 15},
	{"School", 30},
	{"City", 15},
	{"Exam Mode", 12},
	{"How you get to know about us", 35},
	{"Amount Paid", 12},
	{"Status", 10},
}

// LedgerRepository is the durable append-only registration table.
type LedgerRepository interface {
	Append(ctx context.Context, rec *models.Registration) error
	Download(ctx context.Context) ([]byte, error)
}

// ExcelLedgerRepository materializes the ledger as a single xlsx blob.
// Every Append re-fetches (or creates) the whole workbook, adds one row
// and overwrites the blob; no partial copy is held across requests.
// Concurrent appends against the same prior version are a known
// lost-update hazard: the second upload overwrites the first.
type ExcelLedgerRepository struct {
	blobs  storage.BlobStore
	logger *zap.Logger
}

// NewExcelLedgerRepository builds a repository over blobs. A nil store
// puts the ledger in degradation mode: appends build a single-call
// in-process workbook and skip the persist.
func NewExcelLedgerRepository(blobs storage.BlobStore, logger *zap.Logger) *ExcelLedgerRepository {
	return &ExcelLedgerRepository{blobs: blobs, logger: logger}
}

func (r *ExcelLedgerRepository) Append(ctx context.Context, rec *models.Registration) error {
	f, err := r.openOrCreate(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return apperrors.Persistence("Failed to save registration", fmt.Errorf("ledger sheet %q unreadable: %w", sheetName, err))
	}

	cell, _ := excelize.CoordinatesToCellName(1, len(rows)+1)
	row := rowValues(rec)
	if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
		return apperrors.Persistence("Failed to save registration", err)
	}

	r.autoFitColumns(f)

	if r.blobs == nil {
		r.logger.Warn("storage not configured, registration kept in memory only",
			zap.String("payment_id", rec.PaymentID))
		return nil
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return apperrors.Persistence("Failed to save registration", err)
	}
	if err := r.blobs.Upload(ctx, WorkbookName, buf.Bytes(), ContentTypeXLSX); err != nil {
		return apperrors.Persistence("Failed to save registration", err)
	}
	return nil
}

// Download returns the serialized workbook for export.
func (r *ExcelLedgerRepository) Download(ctx context.Context) ([]byte, error) {
	if r.blobs == nil {
		return nil, apperrors.ErrStorageUnavailable
	}

	exists, err := r.blobs.Exists(ctx, WorkbookName)
	if err != nil {
		return nil, apperrors.Persistence("Failed to download registrations", err)
	}
	if !exists {
		return nil, apperrors.ErrLedgerNotFound
	}

	data, err := r.blobs.Download(ctx, WorkbookName)
	if err != nil {
		return nil, apperrors.Persistence("Failed to download registrations", err)
	}
	return data, nil
}

func (r *ExcelLedgerRepository) openOrCreate(ctx context.Context) (*excelize.File, error) {
	if r.blobs == nil {
		return newWorkbook()
	}

	exists, err := r.blobs.Exists(ctx, WorkbookName)
	if err != nil {
		return nil, apperrors.Persistence("Failed to save registration", err)
	}
	if !exists {
		return newWorkbook()
	}

	data, err := r.blobs.Download(ctx, WorkbookName)
	if err != nil {
		return nil, apperrors.Persistence("Failed to save registration", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Persistence("Failed to save registration", fmt.Errorf("ledger workbook corrupt: %w", err))
	}
	return f, nil
}

func newWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, apperrors.Persistence("Failed to save registration", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col.header
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, apperrors.Persistence("Failed to save registration", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}

	for i, col := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, name, name, col.width)
	}
	return f, nil
}

func rowValues(rec *models.Registration) []interface{} {
	return []interface{}{
		rec.Date,
		rec.PaymentID,
		rec.FullName,
		rec.Email,
		rec.Phone,
		rec.ParentPhone,
		rec.Stream,
		rec.School,
		rec.City,
		rec.ExamMode,
		rec.ReferralSource,
		rec.Amount,
		rec.Status,
	}
}

// autoFitColumns recomputes each width as longest cell plus padding,
// floored at minColWidth.
func (r *ExcelLedgerRepository) autoFitColumns(f *excelize.File) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return
	}

	for i, col := range columns {
		maxLen := len(col.header)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > maxLen {
				maxLen = len(row[i])
			}
		}
		width := float64(maxLen + 2)
		if maxLen < minColWidth {
			width = minColWidth
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, name, name, width)
	}
}

// DataRowCount reports the number of data rows (header excluded) in a
// serialized workbook.
func DataRowCount(data []byte) (int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return len(rows) - 1, nil
}
