package services

import (
	"context"
	"encoding/json"
	"log"
	"plantflow/models"
	"plantflow/repositories"
	"plantflow/utils"
	"strings"
	"time"
)

type HistoryEntry struct {
	UploadDate string  `json:"upload_date"`
	Mode       string  `json:"mode"`
	Weight     float64 `json:"weight"`
	Amount     float64 `json:"amount"`
	InvoiceNo  string  `json:"invoice_no"`
	EodData    string  `json:"eod_data"`
	CaseCount  int     `json:"case_count"`
	Volume     float64 `json:"volume"`
	Location   string  `json:"location"`
	IsReady    bool    `json:"is_ready"`
}

type HistorySummary struct {
	TotalWeight float64 `json:"totalWeight"`
	TotalAmount float64 `json:"totalAmount"`
	TotalVolume float64 `json:"totalVolume"`
	DaysPresent int     `json:"daysPresent"`
}

type PlantHistory struct {
	Plant   string          `json:"plant"`
	History []HistoryEntry  `json:"history"`
	Summary *HistorySummary `json:"summary"`
}

type BoardEntry struct {
	ID       uint   `json:"id"`
	Plant    string `json:"plant"`
	Location string `json:"location"`
	IsReady  bool   `json:"isReady"`
}

type BoardSummary struct {
	Total   int `json:"total"`
	Ready   int `json:"ready"`
	Pending int `json:"pending"`
}

// PlantStatus is the read-only TV board payload.
type PlantStatus struct {
	Entries []BoardEntry        `json:"entries"`
	Batch   *models.UploadBatch `json:"batch"`
	Summary BoardSummary        `json:"summary"`
}

type PlantConfig struct {
	HistoryDays int
	Location    *time.Location
	BoardTTL    time.Duration
}

type PlantService struct {
	batches repositories.BatchReader
	records repositories.RecordStore
	board   BoardCache
	cfg     PlantConfig
	now     utils.Clock
}

func NewPlantService(batches repositories.BatchReader, records repositories.RecordStore, board BoardCache, cfg PlantConfig) *PlantService {
	if cfg.HistoryDays < 1 {
		cfg.HistoryDays = 7
	}
	if cfg.Location == nil {
		cfg.Location = utils.IST
	}
	return &PlantService{
		batches: batches,
		records: records,
		board:   orNoop(board),
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *PlantService) WithClock(c utils.Clock) *PlantService {
	s.now = c
	return s
}

// History lists a plant's records across the batches of the last HistoryDays
// days, newest batch first, with totals.
func (s *PlantService) History(ctx context.Context, plant string) (*PlantHistory, error) {
	plant = strings.TrimSpace(plant)
	if plant == "" {
		return nil, &InputError{Message: "Plant parameter is required."}
	}

	out := &PlantHistory{Plant: plant, History: []HistoryEntry{}}

	cutoff := utils.DaysBefore(s.now(), s.cfg.Location, s.cfg.HistoryDays)
	batches, err := s.batches.BatchesSince(ctx, cutoff)
	if err != nil {
		return nil, storeErr("Failed to fetch history.", err)
	}
	if len(batches) == 0 {
		return out, nil
	}

	dates := make(map[uint]string, len(batches))
	ids := make([]uint, 0, len(batches))
	for _, b := range batches {
		dates[b.ID] = b.UploadDate
		ids = append(ids, b.ID)
	}

	records, err := s.records.RecordsForPlant(ctx, plant, ids)
	if err != nil {
		return nil, storeErr("Failed to fetch history.", err)
	}

	summary := &HistorySummary{}
	days := map[string]bool{}
	for _, r := range records {
		entry := HistoryEntry{
			UploadDate: dates[r.BatchID],
			Mode:       r.Mode,
			Weight:     r.Weight,
			Amount:     r.Amount,
			InvoiceNo:  r.InvoiceNo,
			EodData:    r.EodData,
			CaseCount:  r.CaseCount,
			Volume:     r.Volume,
			Location:   r.Location,
			IsReady:    r.IsReady,
		}
		out.History = append(out.History, entry)
		summary.TotalWeight += r.Weight
		summary.TotalAmount += r.Amount
		summary.TotalVolume += r.Volume
		days[entry.UploadDate] = true
	}
	summary.DaysPresent = len(days)
	out.Summary = summary
	return out, nil
}

// Status builds the TV board for a batch (latest when batchID is 0). Results
// are cached for BoardTTL when a cache is configured.
func (s *PlantService) Status(ctx context.Context, batchID uint) (*PlantStatus, error) {
	key := BoardKey(batchID)
	if data, ok := s.board.Get(ctx, key); ok {
		var cached PlantStatus
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	status := &PlantStatus{Entries: []BoardEntry{}}
	batch, err := resolveBatch(ctx, s.batches, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return status, nil
	}

	records, err := s.records.BoardByBatch(ctx, batch.ID)
	if err != nil {
		return nil, storeErr(MsgFetchFailed, err)
	}

	status.Batch = batch
	for _, r := range records {
		status.Entries = append(status.Entries, BoardEntry{
			ID:       r.ID,
			Plant:    r.Plant,
			Location: r.Location,
			IsReady:  r.IsReady,
		})
		if r.IsReady {
			status.Summary.Ready++
		}
	}
	status.Summary.Total = len(status.Entries)
	status.Summary.Pending = status.Summary.Total - status.Summary.Ready

	if s.cfg.BoardTTL > 0 {
		if data, err := json.Marshal(status); err == nil {
			s.board.Set(ctx, key, data)
		} else {
			log.Printf("[Board] Failed to encode board: %v", err)
		}
	}
	return status, nil
}
