package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_fetchVersionInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{
			"downloads": {"server": {"url": "https://example.test/server.jar"}},
			"javaVersion": {"majorVersion": 21}
		}`))
	}))
	defer srv.Close()

	r := NewResolver()
	info, err := r.fetchVersionInfo(srv.URL)
	require.NoError(t, err)
	require.NotNil(t, info.Downloads.Server)
	assert.Equal(t, "https://example.test/server.jar", info.Downloads.Server.URL)
	assert.EqualValues(t, 21, info.JavaVersion.MajorVersion)
}

func TestResolver_fetchVersionInfo_NoServerDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"downloads": {}, "javaVersion": {"majorVersion": 8}}`))
	}))
	defer srv.Close()

	r := NewResolver()
	info, err := r.fetchVersionInfo(srv.URL)
	require.NoError(t, err)
	assert.Nil(t, info.Downloads.Server)
}

func TestManifestEntry_Lookup(t *testing.T) {
	m := manifest{Versions: []manifestEntry{{ID: "1.20.4", URL: "https://example.test/v.json"}}}

	var found *manifestEntry
	for i := range m.Versions {
		if m.Versions[i].ID == "1.20.4" {
			found = &m.Versions[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "https://example.test/v.json", found.URL)
}
