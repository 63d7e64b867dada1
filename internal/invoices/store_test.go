package invoices

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"invoicer/internal/assetstore"
	"invoicer/internal/kvstore"
	"invoicer/internal/models"
)

func newTestStore() (*Store, *kvstore.Memory, *assetstore.Memory) {
	kv := kvstore.NewMemory()
	assets := assetstore.NewMemory()
	return NewStore(kv, assets), kv, assets
}

func record(client string, number int) models.InvoiceRecord {
	return models.InvoiceRecord{
		ClientName:    client,
		InvoiceNumber: number,
		HourlyRate:    300,
		VATRate:       20,
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		created, err := store.Add(ctx, record("Acme Ltd", 1000+i))
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected non-empty id")
		}
		if !ValidID(created.ID) {
			t.Fatalf("invalid id %q", created.ID)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id %q", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestAddConvertsInlineImageToAssetReference(t *testing.T) {
	store, kv, assets := newTestStore()
	ctx := context.Background()

	candidate := record("Acme Ltd", 1000)
	candidate.IconName = "logo.png"
	candidate.IconData = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png bytes"))

	created, err := store.Add(ctx, candidate)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.IconData != "" {
		t.Fatal("inline data must be cleared after add")
	}
	if created.IconHash == "" {
		t.Fatal("expected asset reference")
	}

	payload, err := assets.Get(ctx, created.IconHash)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if string(payload) != "png bytes" {
		t.Fatalf("unexpected asset payload %q", payload)
	}

	// The persisted collection never carries inline image data.
	raw, err := kv.Read(ctx, "invoices")
	if err != nil {
		t.Fatalf("read collection: %v", err)
	}
	if bytes.Contains(raw, []byte(base64.StdEncoding.EncodeToString([]byte("png bytes")))) {
		t.Fatalf("inline data leaked into persisted collection: %s", raw)
	}
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	store, _, _ := newTestStore()

	_, err := store.Get(context.Background(), "in-zzzzzz")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdatePreservesAssetReference(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	candidate := record("Acme Ltd", 1000)
	candidate.IconName = "logo.png"
	candidate.IconHash = "abc123"
	created, err := store.Add(ctx, candidate)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// An update that carries neither inline data nor a reference keeps the
	// attached logo.
	update := record("Acme Holdings", 1000)
	update.ID = created.ID
	updated, err := store.Update(ctx, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IconHash != "abc123" {
		t.Fatalf("expected preserved reference abc123, got %q", updated.IconHash)
	}
	if updated.IconName != "logo.png" {
		t.Fatalf("expected preserved icon name, got %q", updated.IconName)
	}
	if updated.ClientName != "Acme Holdings" {
		t.Fatalf("expected updated client name, got %q", updated.ClientName)
	}
}

func TestUpdateRequiresKnownID(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	missing := record("Acme Ltd", 1000)
	missing.ID = "in-zzzzzz"
	var notFound *NotFoundError
	if _, err := store.Update(ctx, missing); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	var validation *ValidationError
	if _, err := store.Update(ctx, record("Acme Ltd", 1000)); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for empty id, got %v", err)
	}
}

func TestDeleteRemovesRecordAndKeepsAsset(t *testing.T) {
	store, _, assets := newTestStore()
	ctx := context.Background()

	candidate := record("Acme Ltd", 1000)
	candidate.IconData = base64.StdEncoding.EncodeToString([]byte("logo"))
	created, err := store.Add(ctx, candidate)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, r := range records {
		if r.ID == created.ID {
			t.Fatal("deleted record still listed")
		}
	}

	// Deleting a record leaves its asset for the explicit sweep.
	if _, err := assets.Get(ctx, created.IconHash); err != nil {
		t.Fatalf("asset should survive record deletion: %v", err)
	}

	// Unknown ids are a no-op.
	if err := store.Delete(ctx, "in-zzzzzz"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
}

func TestFailedPersistLeavesSnapshotIntact(t *testing.T) {
	store, kv, _ := newTestStore()
	ctx := context.Background()

	created, err := store.Add(ctx, record("Acme Ltd", 1000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	kv.FailWrites = true

	var storage *StorageError
	if _, err := store.Add(ctx, record("Beta Inc", 1001)); !errors.As(err, &storage) {
		t.Fatalf("expected StorageError, got %v", err)
	}

	kv.FailWrites = false
	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != created.ID {
		t.Fatalf("failed write must not change the collection, got %v", records)
	}
}

func TestClearAllEmptiesRecordsAndAssets(t *testing.T) {
	store, _, assets := newTestStore()
	ctx := context.Background()

	candidate := record("Acme Ltd", 1000)
	candidate.IconData = base64.StdEncoding.EncodeToString([]byte("logo"))
	if _, err := store.Add(ctx, candidate); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty collection, got %d", len(records))
	}
	keys, err := assets.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected empty asset store, got %d keys", len(keys))
	}
}

func TestSweepAssets(t *testing.T) {
	store, _, assets := newTestStore()
	ctx := context.Background()

	candidate := record("Acme Ltd", 1000)
	candidate.IconData = base64.StdEncoding.EncodeToString([]byte("referenced"))
	if _, err := store.Add(ctx, candidate); err != nil {
		t.Fatalf("add: %v", err)
	}
	orphanKey, err := assets.Put(ctx, []byte("orphan"))
	if err != nil {
		t.Fatalf("put orphan: %v", err)
	}

	dry, err := store.SweepAssets(ctx, false)
	if err != nil {
		t.Fatalf("sweep dry: %v", err)
	}
	if !dry.DryRun || dry.Candidates != 1 || dry.Deleted != 0 {
		t.Fatalf("unexpected dry result %+v", dry)
	}
	if len(dry.Keys) != 1 || dry.Keys[0] != orphanKey {
		t.Fatalf("expected orphan key, got %v", dry.Keys)
	}

	applied, err := store.SweepAssets(ctx, true)
	if err != nil {
		t.Fatalf("sweep apply: %v", err)
	}
	if applied.Deleted != 1 {
		t.Fatalf("expected 1 deleted, got %+v", applied)
	}

	keys, err := assets.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected only the referenced asset to remain, got %v", keys)
	}
}

func TestLoadReadsExistingCollection(t *testing.T) {
	kv := kvstore.NewMemory()
	assets := assetstore.NewMemory()
	first := NewStore(kv, assets)

	created, err := first.Add(context.Background(), record("Acme Ltd", 1000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// A fresh store over the same KV sees the persisted collection.
	second := NewStore(kv, assets)
	got, err := second.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ClientName != "Acme Ltd" {
		t.Fatalf("unexpected client name %q", got.ClientName)
	}
}
