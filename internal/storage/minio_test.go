package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedRequest struct {
	method      string
	path        string
	query       string
	contentType string
}

// fakeS3Server answers just enough of the S3 API for MinioStorage.
type fakeS3Server struct {
	mu       sync.Mutex
	requests []recordedRequest
	failPut  bool
}

func (f *fakeS3Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		method:      r.Method,
		path:        r.URL.Path,
		query:       r.URL.RawQuery,
		contentType: r.Header.Get("Content-Type"),
	})
	failPut := f.failPut
	f.mu.Unlock()

	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		if failPut && !strings.Contains(r.URL.RawQuery, "policy") {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied.</Message></Error>`)
			return
		}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeS3Server) find(method, path string) (recordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.method == method && r.path == path {
			return r, true
		}
	}
	return recordedRequest{}, false
}

func newFakeMinio(t *testing.T, fake *fakeS3Server, publicBase string) *MinioStorage {
	t.Helper()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	endpoint := strings.TrimPrefix(ts.URL, "http://")
	store, err := NewMinioStorage(context.Background(), zap.NewNop(), endpoint, "minioadmin", "minioadmin", "us-east-1", "qr-codes", publicBase, false)
	require.NoError(t, err)
	return store
}

func TestMinioStorage_Init(t *testing.T) {
	fake := &fakeS3Server{}
	newFakeMinio(t, fake, "http://localhost:9000/qr-codes")

	_, ok := fake.find(http.MethodHead, "/qr-codes/")
	assert.True(t, ok, "bucket existence is checked")

	policy, ok := fake.find(http.MethodPut, "/qr-codes/")
	require.True(t, ok, "bucket policy is set")
	assert.Contains(t, policy.query, "policy")
}

func TestMinioStorage_Upload(t *testing.T) {
	fake := &fakeS3Server{}
	store := newFakeMinio(t, fake, "http://localhost:9000/qr-codes/")

	err := store.Upload(context.Background(), "qr_codes/68656c6c6f.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)

	put, ok := fake.find(http.MethodPut, "/qr-codes/qr_codes/68656c6c6f.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", put.contentType)
	assert.Equal(t, "http://localhost:9000/qr-codes/qr_codes/68656c6c6f.png", store.PublicURL("qr_codes/68656c6c6f.png"))
}

func TestMinioStorage_UploadDenied(t *testing.T) {
	fake := &fakeS3Server{}
	store := newFakeMinio(t, fake, "http://localhost:9000/qr-codes")
	fake.mu.Lock()
	fake.failPut = true
	fake.mu.Unlock()

	err := store.Upload(context.Background(), "qr_codes/a.png", strings.NewReader("png"), 3, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `put object "qr_codes/a.png"`)
}

func TestMinioStorage_Delete(t *testing.T) {
	fake := &fakeS3Server{}
	store := newFakeMinio(t, fake, "http://localhost:9000/qr-codes")

	require.NoError(t, store.Delete(context.Background(), "qr_codes/a.png"))
	_, ok := fake.find(http.MethodDelete, "/qr-codes/qr_codes/a.png")
	assert.True(t, ok)
}

func TestMinioStorage_DefaultPublicBase(t *testing.T) {
	fake := &fakeS3Server{}
	store := newFakeMinio(t, fake, "")

	assert.True(t, strings.HasPrefix(store.PublicURL("qr_codes/a.png"), "http://127.0.0.1:"))
	assert.True(t, strings.HasSuffix(store.PublicURL("qr_codes/a.png"), "/qr-codes/qr_codes/a.png"))
}
