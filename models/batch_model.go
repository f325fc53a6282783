package models

import "time"

// UploadBatch groups the shipments uploaded on one calendar day.
type UploadBatch struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UploadDate string    `json:"upload_date" gorm:"type:varchar(10);uniqueIndex;not null"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Records []ShipmentRecord `json:"-" gorm:"foreignKey:BatchID;references:ID;constraint:OnDelete:CASCADE"`
}

func (UploadBatch) TableName() string {
	return "upload_batches"
}
