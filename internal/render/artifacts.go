package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArtifactRef is an opaque locator for one generated document. It is
// overwritten on the record with each regeneration and carries no durability
// guarantee: the file it points at may be removed out of band.
type ArtifactRef struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Format    Format    `json:"format"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// ArtifactDir stores generated document bodies as local files.
type ArtifactDir struct {
	root string
}

// NewArtifactDir creates an artifact directory rooted at root.
func NewArtifactDir(root string) (*ArtifactDir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("artifact dir is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &ArtifactDir{root: abs}, nil
}

// Write persists one generated document body and returns its reference.
func (d *ArtifactDir) Write(invoiceNumber int, format Format, body []byte) (ArtifactRef, error) {
	var zero ArtifactRef
	if d == nil {
		return zero, fmt.Errorf("artifact dir is not configured")
	}

	id := uuid.NewString()
	name := fmt.Sprintf("invoice_%d_%s.%s", invoiceNumber, id, format.Ext())
	path := filepath.Join(d.root, name)

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return zero, err
	}

	return ArtifactRef{
		ID:        id,
		Path:      path,
		Format:    format,
		SizeBytes: int64(len(body)),
		CreatedAt: time.Now().UTC(),
	}, nil
}
