package idgen

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_UniqueAndValid(t *testing.T) {
	gen := NewUUID()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.NextID()
			mu.Lock()
			defer mu.Unlock()
			seen[id] = true
		}()
	}
	wg.Wait()

	if len(seen) != 50 {
		t.Fatalf("Expected 50 unique IDs, got %d", len(seen))
	}
	for id := range seen {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("ID %q is not a UUID: %v", id, err)
		}
	}
}

func TestGeneratorFunc(t *testing.T) {
	gen := GeneratorFunc(func() string { return "fixed" })
	if got := gen.NextID(); got != "fixed" {
		t.Errorf("Expected 'fixed', got %q", got)
	}
}
