package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"weft/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coverage.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpload(t *testing.T) {
	var gotAuth, gotFlags, gotName, gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFlags = r.FormValue("flags")
		gotName = r.FormValue("name")
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFile = header.Filename
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	uploader := NewUploader(server.URL)
	spec := &workflow.ReportSpec{Coverage: "coverage.xml", Flag: "unittests", Name: "py3.11"}
	err := uploader.Upload(context.Background(), writeArtifact(t, "<coverage/>"), spec, "tok-123")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "unittests", gotFlags)
	assert.Equal(t, "py3.11", gotName)
	assert.Equal(t, "coverage.xml", gotFile)
}

func TestUploadWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	uploader := NewUploader(server.URL)
	spec := &workflow.ReportSpec{Coverage: "coverage.xml"}
	err := uploader.Upload(context.Background(), writeArtifact(t, "<coverage/>"), spec, "")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer server.Close()

	uploader := NewUploader(server.URL)
	spec := &workflow.ReportSpec{Coverage: "coverage.xml"}
	err := uploader.Upload(context.Background(), writeArtifact(t, "<coverage/>"), spec, "bad")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload rejected")
	assert.Contains(t, err.Error(), "invalid token")
}

func TestUploadMissingArtifact(t *testing.T) {
	uploader := NewUploader("http://127.0.0.1:0")
	spec := &workflow.ReportSpec{Coverage: "coverage.xml"}
	err := uploader.Upload(context.Background(), filepath.Join(t.TempDir(), "coverage.xml"), spec, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open coverage artifact")
}
