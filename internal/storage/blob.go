package storage

import "io"

// BlobStore holds the audio recordings captured during a test run.
type BlobStore interface {
	// Put stores the blob and returns the canonical key.
	Put(key string, r io.Reader) (string, error)
	// Get opens the blob and reports its content type.
	Get(key string) (io.ReadCloser, string, error)
	// SignedURL returns a retrieval URL for the key. The filesystem
	// store returns a file:// URL for local setups.
	SignedURL(key string) (string, error)
}
