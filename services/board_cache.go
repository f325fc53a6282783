package services

import (
	"context"
	"strconv"
)

// BoardCache stores rendered TV board payloads. Implementations must tolerate
// being unavailable: Get misses and Set/Invalidate do nothing.
type BoardCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
	Invalidate(ctx context.Context, keys ...string)
}

// BoardKey names the cached board of a batch; 0 means "latest batch".
func BoardKey(batchID uint) string {
	if batchID == 0 {
		return "plant-status:latest"
	}
	return "plant-status:" + strconv.FormatUint(uint64(batchID), 10)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noopCache) Set(context.Context, string, []byte)        {}
func (noopCache) Invalidate(context.Context, ...string)      {}

func orNoop(c BoardCache) BoardCache {
	if c == nil {
		return noopCache{}
	}
	return c
}
