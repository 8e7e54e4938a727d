package fsx

import (
	"context"
	"time"
)

// FileInfo represents information about a file
type FileInfo struct {
	Name        string    // Base name of the file
	Size        int64     // File size in bytes
	ModTime     time.Time // Modification time
	IsDir       bool      // Is a directory
	ContentType string    // MIME type (when available)
}

// FileReader provides read-only operations
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter provides write operations
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	CreateDir(ctx context.Context, path string) error
}

// FileDeleter provides deletion operations
type FileDeleter interface {
	DeleteFile(ctx context.Context, path string) error
	DeleteDir(ctx context.Context, path string, recursive bool) error
}

// PathOperations provides path manipulation functionality
type PathOperations interface {
	Join(elem ...string) string
}

// FileSystem combines all file operations
type FileSystem interface {
	FileReader
	FileWriter
	FileDeleter
	PathOperations
}

// Scope is a private working directory owned by exactly one in-flight
// operation. Release removes the directory and everything under it; it is
// safe to call on every exit path.
type Scope interface {
	FileWriter
	PathOperations

	// Dir returns the absolute path of the scope directory.
	Dir() string

	// Release removes the scope directory and all of its contents.
	Release() error
}

// Scoper creates isolated working scopes.
type Scoper interface {
	NewScope(ctx context.Context, prefix string) (Scope, error)
}
