package cart

import (
	"context"
	"testing"
)

func TestMemoryStoreAddKeepsInsertionOrder(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	for _, id := range []uint{3, 1, 2} {
		if _, err := store.Add(ctx, "sid", Line{ItemID: id, Quantity: 1, RestaurantID: 7}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	lines, err := store.Get(ctx, "sid")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	want := []uint{3, 1, 2}
	for i, id := range want {
		if lines[i].ItemID != id {
			t.Fatalf("line %d expected item %d, got %d", i, id, lines[i].ItemID)
		}
	}
}

func TestMemoryStoreAddMergesDuplicateItem(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	if _, err := store.Add(ctx, "sid", Line{ItemID: 1, Quantity: 2}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	lines, err := store.Add(ctx, "sid", Line{ItemID: 1, Quantity: 3})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
}

func TestMemoryStoreCoercesInvalidQuantity(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	lines, err := store.Add(ctx, "sid", Line{ItemID: 1, Quantity: -4})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if lines[0].Quantity != 1 {
		t.Fatalf("expected quantity coerced to 1, got %d", lines[0].Quantity)
	}

	lines, err = store.UpdateQuantity(ctx, "sid", 1, 0)
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if lines[0].Quantity != 1 {
		t.Fatalf("expected quantity coerced to 1, got %d", lines[0].Quantity)
	}
}

func TestMemoryStoreRemoveAndClear(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	_, _ = store.Add(ctx, "sid", Line{ItemID: 1, Quantity: 1})
	_, _ = store.Add(ctx, "sid", Line{ItemID: 2, Quantity: 1})

	lines, err := store.Remove(ctx, "sid", 1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(lines) != 1 || lines[0].ItemID != 2 {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}

	if err := store.Clear(ctx, "sid"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	lines, err = store.Get(ctx, "sid")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", lines)
	}
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	_, _ = store.Add(ctx, "a", Line{ItemID: 1, Quantity: 1})
	_, _ = store.Add(ctx, "b", Line{ItemID: 2, Quantity: 1})

	lines, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(lines) != 1 || lines[0].ItemID != 1 {
		t.Fatalf("session a polluted: %+v", lines)
	}
}
