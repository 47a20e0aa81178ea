package docstore

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func requireCredentialError(t *testing.T, err error, reason string) {
	t.Helper()
	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
	require.Equal(t, reason, credErr.Reason)
}

// serviceAccountKey builds a syntactically valid key whose token endpoint is tokenURI.
func serviceAccountKey(t *testing.T, tokenURI string) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	data, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "network-attendance",
		"private_key_id": "test-key",
		"private_key":    string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
		"client_email":   "seeder@network-attendance.iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"token_uri":      tokenURI,
	})
	require.NoError(t, err)
	return string(data)
}

func TestOpenFirestoreCredentialErrors(t *testing.T) {
	ctx := context.Background()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "")

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenFirestore(ctx, Options{CredentialsFile: filepath.Join(t.TempDir(), "nope.json")})
		requireCredentialError(t, err, ReasonMissing)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeFile(t, "key.json", "this is not json")
		_, err := OpenFirestore(ctx, Options{CredentialsFile: path})
		requireCredentialError(t, err, ReasonMalformed)
	})

	t.Run("rejected by token endpoint", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid JWT Signature."}`))
		}))
		defer srv.Close()

		path := writeFile(t, "key.json", serviceAccountKey(t, srv.URL+"/token"))
		_, err := OpenFirestore(ctx, Options{CredentialsFile: path})
		requireCredentialError(t, err, ReasonRejected)
		require.Equal(t, 1, calls)
	})
}

func TestToFirestoreMap(t *testing.T) {
	out := toFirestoreMap(Document{
		"studentId":   "abc",
		"attemptedAt": ServerTimestamp,
		"deviceInfo":  Document{"platform": "Android"},
		"location":    map[string]any{"latitude": 17.385},
		"history":     []any{ServerTimestamp, 1},
		"failure":     nil,
	})

	require.Equal(t, "abc", out["studentId"])
	require.Equal(t, firestore.ServerTimestamp, out["attemptedAt"])
	require.Equal(t, map[string]interface{}{"platform": "Android"}, out["deviceInfo"])
	require.Equal(t, map[string]interface{}{"latitude": 17.385}, out["location"])
	require.Equal(t, []interface{}{firestore.ServerTimestamp, 1}, out["history"])
	require.Nil(t, out["failure"])
}
