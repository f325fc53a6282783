package models

import "time"

type ShipmentRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	BatchID        uint      `json:"batch_id" gorm:"index;not null"`
	Plant          string    `json:"plant" gorm:"type:varchar(64);index"`
	Location       string    `json:"location"`
	PgiNo          string    `json:"pgi_no"`
	PgiDate        string    `json:"pgi_date" gorm:"type:varchar(32)"`
	InvoiceNo      string    `json:"invoice_no"`
	InvoiceDate    string    `json:"invoice_date" gorm:"type:varchar(32)"`
	NcCc           string    `json:"nc_cc" gorm:"type:varchar(8)"`
	Mode           string    `json:"mode"`
	CaseCount      int       `json:"case_count"`
	Weight         float64   `json:"weight"`
	Volume         float64   `json:"volume"`
	Amount         float64   `json:"amount"`
	PreferredMode  string    `json:"preferred_mode"`
	PreferredEdd   string    `json:"preferred_edd" gorm:"type:varchar(32)"`
	DispatchRemark string    `json:"dispatch_remark"`
	EodData        string    `json:"eod_data"`
	Remark         string    `json:"remark" gorm:"type:text"`
	IsReady        bool      `json:"is_ready" gorm:"default:false;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ShipmentRecord) TableName() string {
	return "shipments"
}
