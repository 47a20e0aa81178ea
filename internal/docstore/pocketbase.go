package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase/tools/types"
)

// pocketBaseCredentials is the superuser login stored in the credentials file.
type pocketBaseCredentials struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// PocketBaseStore writes records through the PocketBase REST API. Collections
// are created on first use with one json field per top-level document key.
type PocketBaseStore struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	now        func() string

	mu      sync.Mutex
	ensured map[string]map[string]bool
}

// OpenPocketBase authenticates as a superuser and returns a store bound to the token.
func OpenPocketBase(ctx context.Context, opts Options) (*PocketBaseStore, error) {
	var creds pocketBaseCredentials
	if err := decodeCredentialFile(BackendPocketBase, opts.CredentialsFile, &creds); err != nil {
		return nil, err
	}
	if creds.Identity == "" || creds.Password == "" {
		return nil, &CredentialError{
			Backend: BackendPocketBase,
			Path:    opts.CredentialsFile,
			Reason:  ReasonMalformed,
			Err:     fmt.Errorf("identity and password are required"),
		}
	}

	s := &PocketBaseStore{
		baseURL:    strings.TrimRight(opts.DatabaseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        func() string { return types.NowDateTime().String() },
		ensured:    make(map[string]map[string]bool),
	}

	token, err := s.authenticate(ctx, creds)
	if err != nil {
		return nil, &CredentialError{Backend: BackendPocketBase, Path: opts.CredentialsFile, Reason: ReasonRejected, Err: err}
	}
	s.authToken = token
	return s, nil
}

func (s *PocketBaseStore) authenticate(ctx context.Context, creds pocketBaseCredentials) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	apiURL := fmt.Sprintf("%s/api/collections/_superusers/auth-with-password", s.baseURL)
	if err := s.do(ctx, http.MethodPost, apiURL, creds, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("auth response carried no token")
	}
	return result.Token, nil
}

func (s *PocketBaseStore) addAuthHeader(req *http.Request) {
	if s.authToken != "" {
		req.Header.Set("Authorization", s.authToken)
	}
}

func (s *PocketBaseStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	fields := make([]string, 0, len(doc))
	for key := range doc {
		fields = append(fields, key)
	}
	if err := s.EnsureCollection(ctx, collection, fields); err != nil {
		return "", &WriteError{Collection: collection, Err: err}
	}

	var result struct {
		ID string `json:"id"`
	}
	apiURL := fmt.Sprintf("%s/api/collections/%s/records", s.baseURL, collection)
	if err := s.do(ctx, http.MethodPost, apiURL, s.resolve(doc), &result); err != nil {
		return "", &WriteError{Collection: collection, Err: err}
	}
	if result.ID == "" {
		return "", &WriteError{Collection: collection, Err: fmt.Errorf("create response carried no id")}
	}
	return result.ID, nil
}

func (s *PocketBaseStore) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

// EnsureCollection creates collection with a json field per name, or appends
// the named fields it lacks. Results are cached for the life of the store.
func (s *PocketBaseStore) EnsureCollection(ctx context.Context, collection string, fields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := s.ensured[collection]
	var wanted []string
	for _, name := range fields {
		if !known[name] {
			wanted = append(wanted, name)
		}
	}
	if known != nil && len(wanted) == 0 {
		return nil
	}
	sort.Strings(wanted)

	apiURL := fmt.Sprintf("%s/api/collections/%s", s.baseURL, collection)
	var existing struct {
		Fields []map[string]any `json:"fields"`
	}
	err := s.do(ctx, http.MethodGet, apiURL, nil, &existing)

	var status *statusError
	switch {
	case err == nil:
		have := make(map[string]bool, len(existing.Fields))
		for _, f := range existing.Fields {
			if name, ok := f["name"].(string); ok {
				have[name] = true
			}
		}
		updated := existing.Fields
		for _, name := range wanted {
			if !have[name] {
				updated = append(updated, jsonField(name))
				have[name] = true
			}
		}
		if len(updated) > len(existing.Fields) {
			if err := s.do(ctx, http.MethodPatch, apiURL, map[string]any{"fields": updated}, nil); err != nil {
				return fmt.Errorf("failed to update collection fields: %w", err)
			}
		}
		s.ensured[collection] = have
	case errors.As(err, &status) && status.Code == http.StatusNotFound:
		created := make([]map[string]any, 0, len(wanted))
		have := make(map[string]bool, len(wanted))
		for _, name := range wanted {
			created = append(created, jsonField(name))
			have[name] = true
		}
		createData := map[string]any{
			"name":   collection,
			"type":   "base",
			"fields": created,
		}
		if err := s.do(ctx, http.MethodPost, s.baseURL+"/api/collections", createData, nil); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		s.ensured[collection] = have
	default:
		return fmt.Errorf("failed to get collection: %w", err)
	}
	return nil
}

func jsonField(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"type":        "json",
		"required":    false,
		"hidden":      false,
		"presentable": false,
		"system":      false,
		"maxSize":     0,
	}
}

// resolve replaces the sentinel with the current time in PocketBase's datetime format.
func (s *PocketBaseStore) resolve(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = s.resolveValue(v)
	}
	return out
}

func (s *PocketBaseStore) resolveValue(v any) any {
	switch val := v.(type) {
	case serverTimestamp:
		return s.now()
	case Document:
		return s.resolve(val)
	case map[string]any:
		return s.resolve(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.resolveValue(item)
		}
		return out
	default:
		return v
	}
}

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// do sends payload as JSON and decodes a 2xx response into out when out is non-nil.
func (s *PocketBaseStore) do(ctx context.Context, method, apiURL string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.addAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{Code: resp.StatusCode, Body: string(respBody)}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}
