package ingest

import (
	"bytes"
	"plantflow/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Shipments"

// WriteRecords renders records as a workbook using TemplateHeaders, so the
// file can be uploaded again unchanged.
func WriteRecords(records []models.ShipmentRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(TemplateHeaders))
	for i, h := range TemplateHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.Plant, r.Location, r.PgiNo, r.PgiDate, r.InvoiceNo, r.InvoiceDate,
			r.NcCc, r.Mode, r.CaseCount, r.Weight, r.Volume, r.Amount,
			r.PreferredMode, r.PreferredEdd, r.DispatchRemark, r.EodData, r.Remark,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
