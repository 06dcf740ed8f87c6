package fetchhttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanq16/scenefetch/internal/utils"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok/", func(w http.ResponseWriter, r *http.Request) {
		body := []byte("scene-bytes")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		if r.Method == http.MethodHead {
			return
		}
		w.Write(body)
	})
	mux.HandleFunc("/short/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("only-a-few"))
	})
	mux.HandleFunc("/unauthorized/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})
	mux.HandleFunc("/outdated/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "please update the download script", http.StatusNotAcceptable)
	})
	mux.HandleFunc("/broken/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchWritesFile(t *testing.T) {
	server := newTestServer(t)
	out := filepath.Join(t.TempDir(), "data", "scene0", "mesh.ply")

	err := NewTransport(utils.HTTPClientConfig{}).Fetch(context.Background(), server.URL+"/ok/mesh.ply", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "scene-bytes", string(data))
	assert.NoFileExists(t, out+utils.PartSuffix)
}

func TestFetchTruncatedLeavesNothing(t *testing.T) {
	server := newTestServer(t)
	out := filepath.Join(t.TempDir(), "mesh.ply")

	err := NewTransport(utils.HTTPClientConfig{}).Fetch(context.Background(), server.URL+"/short/mesh.ply", out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrTruncated))

	var fe *utils.FetchError
	require.True(t, errors.As(err, &fe))
	assert.True(t, fe.Retryable())
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, out+utils.PartSuffix)
}

func TestFetchClassifiesStatus(t *testing.T) {
	server := newTestServer(t)
	tests := []struct {
		path   string
		kind   utils.ErrorKind
		status int
	}{
		{"/unauthorized/x", utils.KindUnauthorized, http.StatusUnauthorized},
		{"/missing/x", utils.KindNotFound, http.StatusNotFound},
		{"/outdated/x", utils.KindProtocolMismatch, http.StatusNotAcceptable},
		{"/broken/x", utils.KindTransport, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "x")
			err := NewTransport(utils.HTTPClientConfig{}).Fetch(context.Background(), server.URL+tt.path, out)

			var fe *utils.FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.status, fe.Status)
			assert.False(t, fe.Retryable())
			assert.NoFileExists(t, out)
		})
	}
}

func TestFetchProtocolMismatchCarriesServerText(t *testing.T) {
	server := newTestServer(t)
	err := NewTransport(utils.HTTPClientConfig{}).Fetch(context.Background(), server.URL+"/outdated/x", filepath.Join(t.TempDir(), "x"))

	var fe *utils.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "please update the download script", fe.Message)
}

func TestFetchSendsBearerToken(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	tr := NewTransport(utils.HTTPClientConfig{BearerToken: "secret"})
	require.NoError(t, tr.Fetch(context.Background(), server.URL+"/f", filepath.Join(t.TempDir(), "f")))
	assert.Equal(t, "Bearer secret", got)
}

func TestExists(t *testing.T) {
	server := newTestServer(t)
	tr := NewTransport(utils.HTTPClientConfig{})

	assert.True(t, tr.Exists(context.Background(), server.URL+"/ok/mesh.ply"))
	assert.False(t, tr.Exists(context.Background(), server.URL+"/missing/mesh.ply"))
	assert.False(t, tr.Exists(context.Background(), server.URL+"/unauthorized/mesh.ply"))
}
