package ingest

import (
	"io"
	"path/filepath"
	"plantflow/models"
	"strings"

	"github.com/xuri/excelize/v2"
)

const allowedExt = ".xlsx"

// Sheet is the first worksheet of an uploaded workbook.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// ValidateFilename accepts only .xlsx uploads.
func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" || strings.ToLower(filepath.Ext(name)) != allowedExt {
		return newValidationError(MsgInvalidFile)
	}
	return nil
}

// ReadSheet loads the first worksheet. Cells are read raw so dates arrive as
// serial numbers and amounts without display formatting. Fully blank rows are
// dropped.
func ReadSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, newValidationError(MsgUnreadable)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, newValidationError(MsgEmptySheet)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, newValidationError(MsgUnreadable)
	}

	sheet := &Sheet{Name: sheets[0]}
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if sheet.Headers == nil {
			sheet.Headers = trimTrailingBlank(row)
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// Options tunes header validation.
type Options struct {
	StrictHeaders bool
}

// Result is a validated, mapped sheet ready for insertion.
type Result struct {
	Records  []models.ShipmentRecord
	Headers  HeaderMap
	Report   MapReport
	DataRows int
}

// Parse reads, validates and maps a workbook. Every failure is a
// *ValidationError and nothing has been written when it is returned.
func Parse(r io.Reader, opts Options) (*Result, error) {
	sheet, err := ReadSheet(r)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, newValidationError(MsgEmptySheet)
	}

	validate := ValidateHeaders
	if opts.StrictHeaders {
		validate = ValidateTemplate
	}
	headers, err := validate(sheet.Headers)
	if err != nil {
		return nil, err
	}

	records, report := BuildRecords(NormalizeRows(headers, sheet.Rows))
	if len(records) == 0 {
		return nil, newValidationError(MsgNoValidRows)
	}

	return &Result{
		Records:  records,
		Headers:  headers,
		Report:   report,
		DataRows: len(sheet.Rows),
	}, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailingBlank(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
