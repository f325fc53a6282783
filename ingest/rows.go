package ingest

import (
	"fmt"
	"math"
	"plantflow/models"
	"strings"
)

const totalSentinel = "TOTAL"

// Row holds the cells of one sheet row keyed by canonical field key.
type Row map[string]any

func (r Row) str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// NormalizeRows re-keys raw sheet rows through the header map. Cells beyond a
// short row are simply absent.
func NormalizeRows(m HeaderMap, raw [][]string) []Row {
	rows := make([]Row, 0, len(raw))
	for _, cells := range raw {
		row := make(Row, len(m.Columns))
		for idx, key := range m.Columns {
			if idx < len(cells) {
				row[key] = cells[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// MapReport summarizes how much of a sheet was skipped or defaulted.
type MapReport struct {
	SkippedRows   int
	DefaultedDate int
	DefaultedNum  int
}

// IsDataRow reports whether a row carries a real plant (not blank, not the
// totals line spreadsheets usually end with).
func IsDataRow(r Row) bool {
	plant := strings.ToUpper(r.str(KeyPlant))
	return plant != "" && plant != totalSentinel
}

// BuildRecords filters out non-data rows and turns the rest into shipment
// records in sheet order. BatchID is left for the store to assign.
func BuildRecords(rows []Row) ([]models.ShipmentRecord, MapReport) {
	var report MapReport
	records := make([]models.ShipmentRecord, 0, len(rows))

	date := func(r Row, key string) string {
		v, ok := r[key]
		if !ok {
			return ""
		}
		res := ParseDate(v)
		if res.Fallback && res.Value != "" {
			report.DefaultedDate++
		}
		return res.Value
	}
	num := func(r Row, key string) float64 {
		v, ok := r[key]
		if !ok {
			return 0
		}
		res := ParseAmount(v)
		if res.Fallback && r.str(key) != "" {
			report.DefaultedNum++
		}
		if res.Value < 0 || math.IsNaN(res.Value) || math.IsInf(res.Value, 0) {
			report.DefaultedNum++
			return 0
		}
		return res.Value
	}

	for _, r := range rows {
		if !IsDataRow(r) {
			report.SkippedRows++
			continue
		}
		records = append(records, models.ShipmentRecord{
			Plant:          r.str(KeyPlant),
			Location:       r.str(KeyLocation),
			PgiNo:          r.str(KeyPgiNo),
			PgiDate:        date(r, KeyPgiDate),
			InvoiceNo:      r.str(KeyInvoiceNo),
			InvoiceDate:    date(r, KeyInvoiceDate),
			NcCc:           strings.ToUpper(r.str(KeyNcCc)),
			Mode:           r.str(KeyMode),
			CaseCount:      int(num(r, KeyCaseCount)),
			Weight:         num(r, KeyWeight),
			Volume:         num(r, KeyVolume),
			Amount:         num(r, KeyAmount),
			PreferredMode:  r.str(KeyPreferredMode),
			PreferredEdd:   date(r, KeyPreferredEdd),
			DispatchRemark: r.str(KeyDispatchRemark),
			EodData:        r.str(KeyEodData),
			Remark:         r.str(KeyRemark),
			IsReady:        false,
		})
	}
	return records, report
}
