package ports

import "errors"

// ErrBlobNotFound is returned by BlobStore.Get for an absent key
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is a durable key-value slot store. Values are opaque bytes
// and every Put fully replaces the previous value.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}
