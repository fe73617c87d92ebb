package client

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("WEFT_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	SaveToken("tok-abc")

	assert.Equal(t, "tok-abc", loadToken())

	data, err := os.ReadFile(os.Getenv("WEFT_TOKEN_FILE"))
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", string(data))
}

func TestCreateRequestCarriesToken(t *testing.T) {
	t.Setenv("WEFT_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	SaveToken("tok-xyz")

	req, err := CreateRequest(http.MethodGet, "/workflow", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestLoadTokenMissingFile(t *testing.T) {
	t.Setenv("WEFT_TOKEN_FILE", filepath.Join(t.TempDir(), "none"))
	assert.Empty(t, loadToken())
}
