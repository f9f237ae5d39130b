package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 accepts PutObject requests on a path-style endpoint
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.objects[r.URL.Path] = body
	f.types[r.URL.Path] = r.Header.Get("Content-Type")
	f.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func TestS3ExporterUpload(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	exporter, err := NewS3Exporter(context.Background(), S3Config{
		Region:    "us-east-1",
		Bucket:    "exports",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  srv.URL,
		URLExpiry: 5 * time.Minute,
	})
	require.NoError(t, err)

	up, err := exporter.Upload(context.Background(), "exports/u1/a.json", "application/json", []byte(`{"ok":true}`))
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, string(fake.objects["/exports/exports/u1/a.json"]), `{"ok":true}`)
	assert.Equal(t, "application/json", fake.types["/exports/exports/u1/a.json"])

	assert.Equal(t, "exports/u1/a.json", up.Key)
	assert.True(t, strings.HasPrefix(up.URL, srv.URL+"/exports/exports/u1/a.json?"))
	assert.Contains(t, up.URL, "X-Amz-Expires=300")
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), up.ExpiresAt, time.Minute)
}

func TestS3ExporterUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	exporter, err := NewS3Exporter(context.Background(), S3Config{
		Region:    "us-east-1",
		Bucket:    "exports",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  srv.URL,
	})
	require.NoError(t, err)

	_, err = exporter.Upload(context.Background(), "k", "application/json", []byte("{}"))
	assert.Error(t, err)
}
