package invoices

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"invoicer/internal/assetstore"
	"invoicer/internal/kvstore"
	"invoicer/internal/models"
)

// collectionKey names the KV entry holding the full record collection.
const collectionKey = "invoices"

// Store persists the ordered invoice collection as one JSON document under a
// named KV entry, delegating binary logo payloads to the asset store. Every
// mutation is a whole-collection read-modify-write; across processes the last
// writer wins.
type Store struct {
	kv     kvstore.KV
	assets assetstore.Store

	mu      sync.Mutex
	records []models.InvoiceRecord
	loaded  bool
}

// NewStore creates a record store over the given KV and asset store.
func NewStore(kv kvstore.KV, assets assetstore.Store) *Store {
	return &Store{kv: kv, assets: assets}
}

// Assets returns the asset store records delegate logo payloads to.
func (s *Store) Assets() assetstore.Store {
	return s.assets
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]models.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return copyRecords(s.records), nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (models.InvoiceRecord, error) {
	var zero models.InvoiceRecord
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return zero, err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return zero, &NotFoundError{ID: id}
	}
	return s.records[idx], nil
}

// Add assigns a new unique ID to candidate, converts any inline image data to
// an asset reference, and appends the record to the collection.
func (s *Store) Add(ctx context.Context, candidate models.InvoiceRecord) (models.InvoiceRecord, error) {
	var zero models.InvoiceRecord
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return zero, err
	}

	id, err := generateID(func(id string) bool { return s.indexOf(id) >= 0 })
	if err != nil {
		return zero, err
	}
	candidate.ID = id

	if err := s.resolveIcon(ctx, &candidate); err != nil {
		return zero, err
	}

	next := append(copyRecords(s.records), candidate)
	if err := s.persist(ctx, next); err != nil {
		return zero, err
	}
	s.records = next
	return candidate, nil
}

// Update replaces the stored record with the same ID. When the incoming
// record carries neither inline image data nor an asset reference, the
// previous reference (and display name, if the new one is empty) is carried
// forward so an attached logo is never silently dropped.
func (s *Store) Update(ctx context.Context, record models.InvoiceRecord) (models.InvoiceRecord, error) {
	var zero models.InvoiceRecord
	if strings.TrimSpace(record.ID) == "" {
		return zero, &ValidationError{Reason: "record id is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return zero, err
	}

	idx := s.indexOf(record.ID)
	if idx < 0 {
		return zero, &NotFoundError{ID: record.ID}
	}
	prev := s.records[idx]

	switch {
	case record.IconData != "":
		if err := s.resolveIcon(ctx, &record); err != nil {
			return zero, err
		}
	case record.IconHash == "":
		record.IconHash = prev.IconHash
		if strings.TrimSpace(record.IconName) == "" {
			record.IconName = prev.IconName
		}
	}

	next := copyRecords(s.records)
	next[idx] = record
	if err := s.persist(ctx, next); err != nil {
		return zero, err
	}
	s.records = next
	return record, nil
}

// Delete removes the record with the given id. Unknown ids are a no-op. The
// referenced asset, if any, is left in place.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := copyRecords(s.records)
	next = append(next[:idx], next[idx+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// ClearAll empties the record collection and independently instructs the
// asset store to clear.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, []models.InvoiceRecord{}); err != nil {
		return err
	}
	s.records = []models.InvoiceRecord{}
	s.loaded = true

	if s.assets != nil {
		if err := s.assets.Clear(ctx); err != nil {
			return &StorageError{Op: "clear assets", Err: err}
		}
	}
	return nil
}

// SweepResult reports one unreferenced-asset sweep.
type SweepResult struct {
	Candidates int      `json:"candidates"`
	Deleted    int      `json:"deleted"`
	Failed     int      `json:"failed"`
	Keys       []string `json:"keys,omitempty"`
	DryRun     bool     `json:"dry_run"`
}

// SweepAssets finds asset entries no record references and, when apply is
// set, deletes them. Deleting or re-logoing a record never removes old
// entries on its own; this sweep is the explicit cleanup path.
func (s *Store) SweepAssets(ctx context.Context, apply bool) (SweepResult, error) {
	result := SweepResult{DryRun: !apply}
	if s.assets == nil {
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return result, err
	}

	referenced := map[string]struct{}{}
	for _, record := range s.records {
		if record.IconHash != "" {
			referenced[record.IconHash] = struct{}{}
		}
	}

	keys, err := s.assets.Keys(ctx)
	if err != nil {
		return result, &StorageError{Op: "list assets", Err: err}
	}

	for _, key := range keys {
		if _, ok := referenced[key]; ok {
			continue
		}
		result.Candidates++
		result.Keys = append(result.Keys, key)
		if !apply {
			continue
		}
		if err := s.assets.Delete(ctx, key); err != nil {
			result.Failed++
			continue
		}
		result.Deleted++
	}
	return result, nil
}

func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	data, err := s.kv.Read(ctx, collectionKey)
	if err != nil {
		return &StorageError{Op: "read", Err: err}
	}
	records := []models.InvoiceRecord{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return &StorageError{Op: "decode", Err: err}
		}
	}
	s.records = records
	s.loaded = true
	return nil
}

func (s *Store) persist(ctx context.Context, records []models.InvoiceRecord) error {
	// Inline image data never reaches the persisted collection.
	stored := copyRecords(records)
	for i := range stored {
		stored[i].IconData = ""
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.kv.Write(ctx, collectionKey, data); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

func (s *Store) resolveIcon(ctx context.Context, record *models.InvoiceRecord) error {
	if record.IconData == "" {
		return nil
	}
	if s.assets == nil {
		return &StorageError{Op: "put asset", Err: assetstore.ErrNotFound}
	}
	key, err := s.assets.Put(ctx, models.DecodeInlineImage(record.IconData))
	if err != nil {
		return &StorageError{Op: "put asset", Err: err}
	}
	record.IconHash = key
	record.IconData = ""
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, record := range s.records {
		if record.ID == id {
			return i
		}
	}
	return -1
}

func copyRecords(records []models.InvoiceRecord) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, len(records))
	copy(out, records)
	return out
}
