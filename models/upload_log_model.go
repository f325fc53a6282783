package models

import (
	"plantflow/controllers/idgen"
	"plantflow/types"
	"time"

	"gorm.io/gorm"
)

const (
	UploadStatusSuccess  = "success"
	UploadStatusRejected = "rejected"
	UploadStatusFailed   = "failed"
)

// UploadLog keeps one row per upload attempt, accepted or not.
type UploadLog struct {
	ID         types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Filename   string            `json:"filename"`
	Status     string            `json:"status" gorm:"type:varchar(16);index"`
	BatchID    uint              `json:"batch_id"`
	UploadDate string            `json:"upload_date" gorm:"type:varchar(10)"`
	RowCount   int               `json:"row_count"`
	Message    string            `json:"message"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (u *UploadLog) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == 0 {
		u.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
