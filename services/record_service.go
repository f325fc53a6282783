package services

import (
	"context"
	"errors"
	"plantflow/models"
	"plantflow/repositories"
	"strings"

	"github.com/go-playground/validator"
)

type DashboardStats struct {
	Total         int `json:"total"`
	InProcess     int `json:"inProcess"`
	Ready         int `json:"ready"`
	TotalRows     int `json:"totalRows"`
	InProcessRows int `json:"inProcessRows"`
	ReadyRows     int `json:"readyRows"`
}

type RecordsView struct {
	Batch         *models.UploadBatch     `json:"batch"`
	InProcessList []models.ShipmentRecord `json:"in_process_list"`
	ReadyList     []models.ShipmentRecord `json:"ready_list"`
	Stats         DashboardStats          `json:"stats"`
}

// SplitByStatus separates records into in-process and ready, keeping order.
func SplitByStatus(records []models.ShipmentRecord) (inProcess, ready []models.ShipmentRecord) {
	inProcess = []models.ShipmentRecord{}
	ready = []models.ShipmentRecord{}
	for _, r := range records {
		if r.IsReady {
			ready = append(ready, r)
		} else {
			inProcess = append(inProcess, r)
		}
	}
	return inProcess, ready
}

func sumCases(records []models.ShipmentRecord) int {
	total := 0
	for _, r := range records {
		total += r.CaseCount
	}
	return total
}

// ComputeStats sums case counts and rows per status.
func ComputeStats(inProcess, ready []models.ShipmentRecord) DashboardStats {
	return DashboardStats{
		Total:         sumCases(inProcess) + sumCases(ready),
		InProcess:     sumCases(inProcess),
		Ready:         sumCases(ready),
		TotalRows:     len(inProcess) + len(ready),
		InProcessRows: len(inProcess),
		ReadyRows:     len(ready),
	}
}

// RecordPatch lists the fields a dashboard user may change. Nil fields are
// left untouched.
type RecordPatch struct {
	IsReady        *bool    `json:"is_ready"`
	Remark         *string  `json:"remark" validate:"omitempty,max=4000"`
	DispatchRemark *string  `json:"dispatch_remark" validate:"omitempty,max=255"`
	NcCc           *string  `json:"nc_cc" validate:"omitempty,oneof=YES NO"`
	Mode           *string  `json:"mode" validate:"omitempty,max=64"`
	PreferredMode  *string  `json:"preferred_mode" validate:"omitempty,max=64"`
	PreferredEdd   *string  `json:"preferred_edd" validate:"omitempty,max=32"`
	Location       *string  `json:"location" validate:"omitempty,max=255"`
	CaseCount      *int     `json:"case_count" validate:"omitempty,min=0"`
	Weight         *float64 `json:"weight" validate:"omitempty,min=0"`
	Volume         *float64 `json:"volume" validate:"omitempty,min=0"`
	Amount         *float64 `json:"amount" validate:"omitempty,min=0"`
}

// Fields returns the column updates for the fields present in the patch.
func (p RecordPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.IsReady != nil {
		fields["is_ready"] = *p.IsReady
	}
	strs := map[string]*string{
		"remark":          p.Remark,
		"dispatch_remark": p.DispatchRemark,
		"nc_cc":           p.NcCc,
		"mode":            p.Mode,
		"preferred_mode":  p.PreferredMode,
		"preferred_edd":   p.PreferredEdd,
		"location":        p.Location,
	}
	for col, v := range strs {
		if v != nil {
			fields[col] = *v
		}
	}
	if p.CaseCount != nil {
		fields["case_count"] = *p.CaseCount
	}
	nums := map[string]*float64{"weight": p.Weight, "volume": p.Volume, "amount": p.Amount}
	for col, v := range nums {
		if v != nil {
			fields[col] = *v
		}
	}
	return fields
}

type RecordService struct {
	batches  repositories.BatchReader
	records  repositories.RecordStore
	board    BoardCache
	validate *validator.Validate
}

func NewRecordService(batches repositories.BatchReader, records repositories.RecordStore, board BoardCache) *RecordService {
	return &RecordService{
		batches:  batches,
		records:  records,
		board:    orNoop(board),
		validate: validator.New(),
	}
}

// resolveBatch returns the requested batch, or the latest one when batchID is
// 0. A missing batch is (nil, nil).
func resolveBatch(ctx context.Context, batches repositories.BatchReader, batchID uint) (*models.UploadBatch, error) {
	var (
		batch *models.UploadBatch
		err   error
	)
	if batchID != 0 {
		batch, err = batches.FindBatch(ctx, batchID)
	} else {
		batch, err = batches.LatestBatch(ctx)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Message: MsgFetchFailed, Err: err}
	}
	return batch, nil
}

// Records returns the dashboard view of a batch (latest when batchID is 0).
// An unknown batch yields an empty view rather than an error.
func (s *RecordService) Records(ctx context.Context, batchID uint) (*RecordsView, error) {
	view := &RecordsView{
		InProcessList: []models.ShipmentRecord{},
		ReadyList:     []models.ShipmentRecord{},
	}

	batch, err := resolveBatch(ctx, s.batches, batchID)
	if err != nil || batch == nil {
		return view, err
	}

	records, err := s.records.RecordsByBatch(ctx, batch.ID)
	if err != nil {
		return nil, storeErr(MsgFetchFailed, err)
	}

	view.Batch = batch
	view.InProcessList, view.ReadyList = SplitByStatus(records)
	view.Stats = ComputeStats(view.InProcessList, view.ReadyList)
	return view, nil
}

// Update applies the present fields of patch to one record. Concurrent
// updates are last-write-wins.
func (s *RecordService) Update(ctx context.Context, id uint, patch RecordPatch) (*models.ShipmentRecord, error) {
	if patch.NcCc != nil {
		v := strings.ToUpper(strings.TrimSpace(*patch.NcCc))
		patch.NcCc = &v
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, &InputError{Message: err.Error()}
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, &InputError{Message: "No updatable fields supplied."}
	}

	record, err := s.records.UpdateRecord(ctx, id, fields)
	if err != nil {
		return nil, storeErr(MsgUpdateFailed, err)
	}

	s.board.Invalidate(ctx, BoardKey(0), BoardKey(record.BatchID))
	return record, nil
}

func (s *RecordService) Delete(ctx context.Context, id uint) error {
	record, err := s.records.FindRecord(ctx, id)
	if err != nil {
		return storeErr(MsgDeleteFailed, err)
	}
	if err := s.records.DeleteRecord(ctx, id); err != nil {
		return storeErr(MsgDeleteFailed, err)
	}
	s.board.Invalidate(ctx, BoardKey(0), BoardKey(record.BatchID))
	return nil
}
