package assetstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var keyPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// LocalCAS stores asset payloads in a local content-addressed tree, sharded
// by the first two digest byte pairs. The key is the SHA-256 hex digest of
// the payload.
type LocalCAS struct {
	root string
}

var _ Store = (*LocalCAS)(nil)

// NewLocalCAS creates a local CAS rooted at root.
func NewLocalCAS(root string) (*LocalCAS, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("asset store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalCAS{root: abs}, nil
}

// Key returns the content key for payload without storing it.
func Key(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Put stores payload under its content key. An existing entry for the same
// key is left unchanged.
func (c *LocalCAS) Put(ctx context.Context, payload []byte) (string, error) {
	if c == nil {
		return "", fmt.Errorf("asset store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := Key(payload)
	dst := c.pathForKey(key)
	if _, err := os.Stat(dst); err == nil {
		return key, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Join(c.root, "tmp"), "put-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(payload); err != nil {
		cleanup()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		// Concurrent Put of the same payload already landed the file.
		if _, statErr := os.Stat(dst); statErr == nil {
			_ = os.Remove(tmpPath)
			return key, nil
		}
		cleanup()
		return "", err
	}

	return key, nil
}

// Get returns the payload stored under key, or ErrNotFound.
func (c *LocalCAS) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("asset store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// A key that is not a digest cannot address any stored payload.
	if !keyPattern.MatchString(key) {
		return nil, ErrNotFound
	}
	payload, err := os.ReadFile(c.pathForKey(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Delete removes the payload stored under key. Missing keys are ignored.
func (c *LocalCAS) Delete(ctx context.Context, key string) error {
	if c == nil {
		return fmt.Errorf("asset store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !keyPattern.MatchString(key) {
		return nil
	}
	if err := os.Remove(c.pathForKey(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every stored payload.
func (c *LocalCAS) Clear(ctx context.Context) error {
	keys, err := c.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := c.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists the content keys of all stored payloads.
func (c *LocalCAS) Keys(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("asset store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var keys []string
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if keyPattern.MatchString(name) {
			keys = append(keys, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *LocalCAS) pathForKey(key string) string {
	return filepath.Join(c.root, key[0:2], key[2:4], key)
}
