package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
//
// Backend implementations must return an error satisfying
// errors.Is(err, ErrNotFound) for missing keys.
var ErrNotFound = errors.New("document not found")

// ErrCorrupt is returned when a stored payload cannot be unframed,
// decrypted, decompressed, or parsed. It is fatal to that single load only.
var ErrCorrupt = errors.New("corrupt document")

// Backend is byte-level key/value storage underneath a Store. Implementations
// must be safe for concurrent use. Connection configuration (endpoints,
// credentials, pooling) is entirely the backend's concern.
type Backend interface {
	// Put writes the document bytes atomically.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads the document bytes. Returns ErrNotFound for missing keys.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
