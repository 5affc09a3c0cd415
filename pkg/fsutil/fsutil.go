// Package fsutil reads Markdown inputs with their content hash and writes
// outputs atomically.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// Errors returned by ReadFile, usable with errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// FileInfo describes an input as it was read. Mode and ModTime are zero
// for stdin.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// HashContent returns the SHA-256 digest that identifies content.
func HashContent(content []byte) [sha256.Size]byte {
	return sha256.Sum256(content)
}

func describe(path string, content []byte, stat os.FileInfo) *FileInfo {
	info := &FileInfo{Path: path, Size: int64(len(content)), Hash: HashContent(content)}
	if stat != nil {
		info.Mode = stat.Mode()
		info.ModTime = stat.ModTime()
	}
	return info
}

// ReadFile reads the regular file at path.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, "stat", err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, "read", err)
	}
	return content, describe(path, content, stat), nil
}

// ReadInput is ReadFile, except that StdinPath drains stdin.
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, *FileInfo, error) {
	if path != StdinPath {
		return ReadFile(ctx, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}

	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	return content, describe(StdinPath, content, nil), nil
}

func classify(path, op string, err error) error {
	var kind error
	switch {
	case errors.Is(err, os.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, os.ErrPermission):
		kind = ErrPermissionDenied
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	return fmt.Errorf("%w: %s: %w", kind, path, err)
}
