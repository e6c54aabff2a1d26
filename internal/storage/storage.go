package storage

import (
	"context"
	"io"
)

// Package storage holds the optional object-storage mirror for fetched
// invoices. The filesystem stays the source of truth; the mirror is an
// off-site copy for the back office.

// PutOptions define optional parameters for uploading objects.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

// Storage is an S3-compatible object store used to archive invoice PDFs.
type Storage interface {
	// Put uploads an object under the given key. Size must be the exact byte
	// count of the reader's content.
	Put(ctx context.Context, key string, r io.Reader, size int64, opt PutOptions) (ObjectInfo, error)
}
