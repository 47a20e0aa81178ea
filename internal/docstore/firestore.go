package docstore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var firestoreScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
}

// FirestoreStore writes through the Firebase Admin SDK.
type FirestoreStore struct {
	client *firestore.Client
}

// OpenFirestore authenticates with a service account key file. A token is
// fetched up front so a rejected key fails here and not on the first write.
func OpenFirestore(ctx context.Context, opts Options) (*FirestoreStore, error) {
	path := opts.CredentialsFile
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CredentialError{Backend: BackendFirestore, Path: path, Reason: ReasonMissing, Err: err}
	}

	creds, err := google.CredentialsFromJSON(ctx, data, firestoreScopes...)
	if err != nil {
		return nil, &CredentialError{Backend: BackendFirestore, Path: path, Reason: ReasonMalformed, Err: err}
	}

	// The emulator accepts any credential and no token endpoint is reachable.
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		if _, err := creds.TokenSource.Token(); err != nil {
			return nil, &CredentialError{Backend: BackendFirestore, Path: path, Reason: ReasonRejected, Err: err}
		}
	}

	projectID := opts.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: opts.DatabaseURL,
		ProjectID:   projectID,
	}, option.WithCredentials(creds))
	if err != nil {
		return nil, &CredentialError{Backend: BackendFirestore, Path: path, Reason: ReasonRejected, Err: fmt.Errorf("firebase app: %w", err)}
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, &CredentialError{Backend: BackendFirestore, Path: path, Reason: ReasonRejected, Err: fmt.Errorf("firestore client: %w", err)}
	}

	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, toFirestoreMap(doc))
	if err != nil {
		return "", &WriteError{Collection: collection, Err: err}
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// toFirestoreMap converts doc to plain maps and swaps the sentinel for firestore.ServerTimestamp.
func toFirestoreMap(doc map[string]any) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = toFirestoreValue(v)
	}
	return out
}

func toFirestoreValue(v any) interface{} {
	switch val := v.(type) {
	case serverTimestamp:
		return firestore.ServerTimestamp
	case Document:
		return toFirestoreMap(val)
	case map[string]any:
		return toFirestoreMap(val)
	case []any:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = toFirestoreValue(item)
		}
		return out
	default:
		return v
	}
}
