// Package docstore is a minimal document-database abstraction: named collections
// of schema-flexible documents, each assigned an id by the database on insert.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	BackendFirestore  = "firestore"
	BackendPocketBase = "pocketbase"
	BackendMongo      = "mongo"
	BackendMemory     = "memory"
)

var ErrUnknownBackend = errors.New("unknown document store backend")

// Document is a nested key-value record. Values are scalars, nil, slices,
// nested Documents (or map[string]any) and ServerTimestamp.
type Document map[string]any

type serverTimestamp struct{}

// ServerTimestamp marks a field the database fills with its own clock at write time.
var ServerTimestamp any = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// Store writes documents to collections.
type Store interface {
	// Add inserts doc into collection and returns the generated id.
	// Failures are reported as *WriteError.
	Add(ctx context.Context, collection string, doc Document) (string, error)
	// Close releases the client handle.
	Close() error
}

// Opener authenticates and returns a ready Store. Failures are reported as *CredentialError.
type Opener func(ctx context.Context) (Store, error)

type Options struct {
	Backend         string
	CredentialsFile string
	DatabaseURL     string
	ProjectID       string
	MongoDatabase   string
}

// Open connects to the backend named in opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(opts.Backend) {
	case BackendFirestore, "":
		store, err = OpenFirestore(ctx, opts)
	case BackendPocketBase:
		store, err = OpenPocketBase(ctx, opts)
	case BackendMongo:
		store, err = OpenMongo(ctx, opts)
	case BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewOpener binds opts so the caller controls when the connection is made.
func NewOpener(opts Options) Opener {
	return func(ctx context.Context) (Store, error) {
		return Open(ctx, opts)
	}
}

// Label is the human readable backend name used in console output.
func Label(backend string) string {
	switch strings.ToLower(backend) {
	case BackendPocketBase:
		return "PocketBase"
	case BackendMongo:
		return "MongoDB"
	case BackendMemory:
		return "in-memory"
	default:
		return "Firestore"
	}
}
