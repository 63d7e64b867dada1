package invoices

import (
	"testing"
)

func TestGenerateID(t *testing.T) {
	t.Run("shape", func(t *testing.T) {
		id, err := generateID(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(id) != 9 { // "in-" + 6 chars
			t.Fatalf("expected length 9, got %d: %s", len(id), id)
		}
		if !ValidID(id) {
			t.Fatalf("generated id %q is not valid", id)
		}
	})

	t.Run("retries on collision", func(t *testing.T) {
		calls := 0
		exists := func(id string) bool {
			calls++
			return calls < 3 // first 2 calls collide
		}
		id, err := generateID(exists)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if calls != 3 {
			t.Fatalf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		exists := func(id string) bool {
			return true // always collide
		}
		if _, err := generateID(exists); err == nil {
			t.Fatal("expected error after max attempts")
		}
	})
}

func TestValidID(t *testing.T) {
	valid := []string{"in-abc123", "in-000000", "in-zzzzzz"}
	for _, id := range valid {
		if !ValidID(id) {
			t.Fatalf("expected %q to be valid", id)
		}
	}

	invalid := []string{"", "in-", "in-abc12", "in-abc1234", "IN-abc123", "gr-abc123", "in-ABC123", "in-abc12!"}
	for _, id := range invalid {
		if ValidID(id) {
			t.Fatalf("expected %q to be invalid", id)
		}
	}
}
