package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestAppendReturnsSequentialRefs(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i, want := range []string{"mem:1", "mem:2", "mem:3"} {
		ref, err := s.Append(ctx, core.Transaction{ID: int64(i + 1), Amount: core.Money{Cents: 100}})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if ref != want {
			t.Errorf("Append() ref = %q, want %q", ref, want)
		}
	}

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("Items() = %d entries, want 3", len(items))
	}
	if items[0].ID != 1 || items[2].ID != 3 {
		t.Errorf("Items() order = %v", items)
	}
}
