// Package docstore is the document-store collaborator for interchange
// trees: store(key, tree) and load(key) over a pluggable byte-level backend.
//
// A Store frames every document with a small self-describing header
// recording the wire transport and the at-rest processing applied
// (compression, encryption), so a load never has to guess how bytes were
// produced. Durability, transactions, and connection management belong to
// the backend, not to this package.
package docstore

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/sync/errgroup"

	"github.com/zoobzio/lattice"
	"github.com/zoobzio/lattice/wire"
)

// Store persists interchange trees through a Backend. Safe for concurrent
// use. A decode failure on load is fatal to that single load only.
type Store struct {
	backend   Backend
	transport wire.Codec

	zenc *zstd.Encoder
	zdec *zstd.Decoder
	aead cipher.AEAD

	batchLimit int
}

// Option configures a Store.
type Option func(*Store) error

// WithTransport selects the wire transport. Defaults to wire.Default.
func WithTransport(c wire.Codec) Option {
	return func(s *Store) error {
		s.transport = c
		return nil
	}
}

// WithCompression enables zstd compression of stored payloads.
// Decompression on load is always available regardless of this option.
func WithCompression() Option {
	return func(s *Store) error {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		s.zenc = enc
		return nil
	}
}

// WithEncryption enables XChaCha20-Poly1305 encryption of stored payloads.
// The key must be 32 bytes.
func WithEncryption(key []byte) Option {
	return func(s *Store) error {
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return err
		}
		s.aead = aead
		return nil
	}
}

// WithBatchLimit caps the number of concurrent writes PutAll issues.
// Defaults to 8.
func WithBatchLimit(n int) Option {
	return func(s *Store) error {
		if n < 1 {
			return fmt.Errorf("batch limit must be positive, got %d", n)
		}
		s.batchLimit = n
		return nil
	}
}

// New creates a Store over the backend.
func New(backend Backend, opts ...Option) (*Store, error) {
	zdec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	s := &Store{
		backend:    backend,
		transport:  wire.Default,
		zdec:       zdec,
		batchLimit: 8,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close releases the zstd worker goroutines held by the store. The backend
// is left untouched. Long-lived stores need not call Close; short-lived
// ones should.
func (s *Store) Close() error {
	s.zdec.Close()
	if s.zenc != nil {
		return s.zenc.Close()
	}
	return nil
}

// Put frames and stores the tree under key.
func (s *Store) Put(ctx context.Context, key string, node lattice.Node) error {
	start := time.Now()
	emitPutStart(ctx, key)

	data, err := s.seal(node)
	if err == nil {
		err = s.backend.Put(ctx, key, data)
	}
	emitPutComplete(ctx, key, len(data), time.Since(start), err)
	return err
}

// Get loads and unframes the tree stored under key. Returns ErrNotFound for
// missing keys and ErrCorrupt for payloads that cannot be restored.
func (s *Store) Get(ctx context.Context, key string) (lattice.Node, error) {
	start := time.Now()
	emitGetStart(ctx, key)

	data, err := s.backend.Get(ctx, key)
	var node lattice.Node
	if err == nil {
		node, err = s.open(data)
	}
	emitGetComplete(ctx, key, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Delete removes the document under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	emitDeleteStart(ctx, key)

	err := s.backend.Delete(ctx, key)
	emitDeleteComplete(ctx, key, time.Since(start), err)
	return err
}

// Keys returns all stored keys with the given prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	emitListStart(ctx, prefix)

	keys, err := s.backend.List(ctx, prefix)
	emitListComplete(ctx, prefix, len(keys), time.Since(start), err)
	return keys, err
}

// PutAll stores a batch of documents concurrently. The first failure cancels
// the remaining writes; documents already written stay written.
func (s *Store) PutAll(ctx context.Context, docs map[string]lattice.Node) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for key, node := range docs {
		g.Go(func() error {
			return s.Put(ctx, key, node)
		})
	}
	return g.Wait()
}

// Framing: one version byte, one flag byte, transport name (length
// prefixed), payload. Persisted: do not renumber.
const (
	frameVersion byte = 1

	flagCompressed byte = 1 << 0
	flagEncrypted  byte = 1 << 1
)

func (s *Store) seal(node lattice.Node) ([]byte, error) {
	payload, err := s.transport.Marshal(node)
	if err != nil {
		return nil, err
	}

	var flags byte
	if s.zenc != nil {
		payload = s.zenc.EncodeAll(payload, nil)
		flags |= flagCompressed
	}
	if s.aead != nil {
		nonce := make([]byte, chacha20poly1305.NonceSizeX)
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return nil, err
		}
		// Prepend nonce to ciphertext
		payload = s.aead.Seal(nonce, nonce, payload, nil)
		flags |= flagEncrypted
	}

	name := s.transport.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("transport name %q too long", name)
	}
	framed := make([]byte, 0, 3+len(name)+len(payload))
	framed = append(framed, frameVersion, flags, byte(len(name)))
	framed = append(framed, name...)
	framed = append(framed, payload...)
	return framed, nil
}

func (s *Store) open(data []byte) (lattice.Node, error) {
	if len(data) < 3 {
		return nil, fmt.Errorf("%w: truncated frame", ErrCorrupt)
	}
	if data[0] != frameVersion {
		return nil, fmt.Errorf("%w: unknown frame version %d", ErrCorrupt, data[0])
	}
	flags := data[1]
	nameLen := int(data[2])
	if len(data) < 3+nameLen {
		return nil, fmt.Errorf("%w: truncated transport name", ErrCorrupt)
	}
	name := string(data[3 : 3+nameLen])
	payload := data[3+nameLen:]

	transport, ok := wire.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown transport %q", ErrCorrupt, name)
	}

	if flags&flagEncrypted != 0 {
		if s.aead == nil {
			return nil, fmt.Errorf("%w: document is encrypted but the store has no key", ErrCorrupt)
		}
		if len(payload) < chacha20poly1305.NonceSizeX {
			return nil, fmt.Errorf("%w: ciphertext too short", ErrCorrupt)
		}
		nonce, ciphertext := payload[:chacha20poly1305.NonceSizeX], payload[chacha20poly1305.NonceSizeX:]
		plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: decryption failed: %v", ErrCorrupt, err)
		}
		payload = plain
	}
	if flags&flagCompressed != 0 {
		plain, err := s.zdec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: decompression failed: %v", ErrCorrupt, err)
		}
		payload = plain
	}

	node, err := transport.Unmarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return node, nil
}
