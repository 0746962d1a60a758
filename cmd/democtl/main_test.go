package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/gymdemos/internal/middleware"
	"github.com/2beens/gymdemos/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeService(t *testing.T) *httptest.Server {
	t.Helper()
	router := http.NewServeMux()
	router.HandleFunc("GET /demos/{exercise}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("exercise") != "barbell squat" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"error":"no demo"}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"kind":"video","displayUrl":"http://localhost:9000/media/abc","sourceUrl":"https://wger.de/media/squat.mp4","refId":"abc","cached":true}`)
	})
	router.HandleFunc("GET /demos/{exercise}/cached", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"cached":%t}`, r.PathValue("exercise") == "barbell squat")
	})
	router.HandleFunc("GET /cache/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"entryCount":3,"approxSizeBytes":3145728,"sizeHuman":"3.0 MB"}`)
	})
	router.HandleFunc("DELETE /cache", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(middleware.AdminTokenHeader) != "s3cret" {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func runDemoctl(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoctl(t *testing.T) {
	srv := newFakeService(t)

	out, err := runDemoctl(t, "--addr", srv.URL, "resolve", "barbell", "squat")
	require.NoError(t, err)
	assert.Equal(t, "video\thttp://localhost:9000/media/abc\tcached=true\n", out)

	out, err = runDemoctl(t, "--addr", srv.URL, "resolve", "moonwalk")
	require.NoError(t, err)
	assert.Equal(t, "no demo\n", out)

	out, err = runDemoctl(t, "--addr", srv.URL, "cached", "barbell squat")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runDemoctl(t, "--addr", srv.URL, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "entries: 3")
	assert.Contains(t, out, "size: 3.0 MB (3145728 bytes)")

	_, err = runDemoctl(t, "--addr", srv.URL, "--token", "guess", "clear")
	require.ErrorIs(t, err, errUnauthorized)

	out, err = runDemoctl(t, "--addr", srv.URL+"/", "--token", "s3cret", "clear")
	require.NoError(t, err)
	assert.Equal(t, "cache cleared\n", out)
}

func TestDemoctl_HashToken(t *testing.T) {
	out, err := runDemoctl(t, "hash-token", "--cost", "4", "s3cret")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.True(t, pkg.CheckTokenHash("s3cret", hash))

	_, err = runDemoctl(t, "hash-token")
	require.Error(t, err)
}

func TestAPIClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newAPIClient(srv.URL, "", srv.Client()).Stats(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500: boom")
}
