package idgen

import (
	"sync"
	"testing"
)

func TestGenerateIDIsUnique(t *testing.T) {
	if err := Init(3); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestInitRejectsOutOfRangeNode(t *testing.T) {
	if err := Init(5000); err == nil {
		t.Fatal("expected error for node id above the snowflake limit")
	}
}

func TestGenerateIDConcurrentWithInit(t *testing.T) {
	var wg sync.WaitGroup
	ids := make(chan int64, 400)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ids <- GenerateID()
			}
		}()
	}
	if err := Init(4); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		if id == 0 {
			t.Fatal("got zero id")
		}
	}
}
