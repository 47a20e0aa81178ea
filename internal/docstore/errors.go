package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Credential failure reasons.
const (
	ReasonMissing   = "missing"
	ReasonMalformed = "malformed"
	ReasonRejected  = "rejected"
)

var ErrStoreClosed = errors.New("document store is closed")

// CredentialError is a setup or authentication failure. No document has been written when it is returned.
type CredentialError struct {
	Backend string
	Path    string
	Reason  string
	Err     error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s credential %s (%s): %v", e.Backend, e.Reason, e.Path, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// WriteError is a failed insert into one collection.
type WriteError struct {
	Collection string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write to %s failed: %v", e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// decodeCredentialFile reads a JSON credential file into v.
func decodeCredentialFile(backend, path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &CredentialError{Backend: backend, Path: path, Reason: ReasonMissing, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CredentialError{Backend: backend, Path: path, Reason: ReasonMalformed, Err: err}
	}
	return nil
}
