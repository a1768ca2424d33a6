package modtale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glorpus-work/hymod/pkg/catalog"
	"github.com/glorpus-work/hymod/pkg/download"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectID = "0b4b8f7e-6a0e-4c4e-9c51-2d1f4a1f9e11"

const projectJSON = `{
  "id": "0b4b8f7e-6a0e-4c4e-9c51-2d1f4a1f9e11",
  "title": "Sky Islands",
  "slug": "sky-islands",
  "description": "Floating terrain",
  "author": "carol",
  "imageUrl": "images/sky.png",
  "downloadCount": 310,
  "categories": ["World Gen"],
  "versions": [
    {"id": "v1", "versionNumber": "1.0.0", "supportedVersions": ["EA"], "downloadUrl": "files/sky-islands-1.0.0.jar", "createdAt": "2026-01-01T00:00:00Z"},
    {"id": "v2", "versionNumber": "1.1.0", "gameVersions": ["EA"], "fileUrl": "https://cdn.example/dl/", "releaseDate": "2026-02-01T00:00:00Z", "channel": "BETA"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/api/v1", "https://cdn.example/", download.NewManager(time.Second, ""))
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "sky", q.Get("q"))
		assert.Equal(t, "downloads", q.Get("sort"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("size"))
		assert.Equal(t, "key", r.Header.Get("X-MODTALE-KEY"))
		_, _ = w.Write([]byte(`{"content": [` + projectJSON + `], "totalPages": 3, "totalElements": 41}`))
	})
	c.SetCredential("key")

	page, err := c.Search(context.Background(), catalog.Query{Text: "sky", Sort: catalog.SortName, Offset: 45})
	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	assert.Equal(t, projectID, item.ID)
	assert.Equal(t, model.ProviderModtale, item.Provider)
	assert.Equal(t, "Sky Islands", item.Name)
	assert.Equal(t, "Floating terrain", item.Summary)
	assert.Equal(t, []string{"carol"}, item.Authors)
	assert.Equal(t, "https://cdn.example/images/sky.png", item.IconURL)
	assert.Equal(t, "https://modtale.net/project/sky-islands", item.WebsiteURL)
	assert.Equal(t, "v1", item.Latest.ID)
}

func TestSortParam(t *testing.T) {
	assert.Equal(t, "relevance", sortParam(catalog.SortRelevance))
	assert.Equal(t, "downloads", sortParam(catalog.SortPopularity))
	assert.Equal(t, "updated", sortParam(catalog.SortUpdated))
	assert.Equal(t, "downloads", sortParam(catalog.SortName))
}

func TestGetItem_LegacyFieldNames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/"+projectID, r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "` + projectID + `", "name": "Old", "summary": "s", "iconUrl": "https://img/x.png", "author": ""}`))
	})

	item, err := c.GetItem(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, "Old", item.Name)
	assert.Equal(t, "s", item.Summary)
	assert.Equal(t, "https://img/x.png", item.IconURL)
	assert.Empty(t, item.Authors)
	assert.True(t, item.Latest.IsZero())
}

func TestGetItem_Errors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetItem(context.Background(), "42")
	assert.ErrorIs(t, err, errors.ErrInvalidIdentifier)

	_, err = c.GetItem(context.Background(), projectID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Equal(t, projectID, errors.ItemID(err))
}

func TestListVersions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(projectJSON))
	})

	versions, err := c.ListVersions(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	// Versions keep the order of the project document.
	assert.Equal(t, "sky-islands-1.0.0.jar", versions[0].Filename)
	assert.Equal(t, "https://cdn.example/files/sky-islands-1.0.0.jar", versions[0].DownloadURL)
	assert.Equal(t, model.ChannelRelease, versions[0].Channel)
	assert.Equal(t, model.CatalogVersion{
		ID:           "v2",
		Label:        "1.1.0",
		Filename:     "1.1.0.jar",
		DownloadURL:  "https://cdn.example/dl/",
		Channel:      model.ChannelBeta,
		GameVersions: []string{"EA"},
		UploadedAt:   "2026-02-01T00:00:00Z",
	}, versions[1])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "My%20Mod.jar", filename("https://cdn/a/My%2520Mod.jar", "1"))
	assert.Equal(t, "mod.jar", filename("https://cdn/a/mod.jar?sig=abc", "1"))
	assert.Equal(t, "2.0.jar", filename("", "2.0"))
}

func TestFetchResolvesRelativeURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/a.jar", r.URL.Path)
		_, _ = w.Write([]byte("jar"))
	}))
	defer server.Close()

	c := New("http://unused", server.URL, download.NewManager(time.Second, ""))
	data, err := c.Fetch(context.Background(), "files/a.jar")
	require.NoError(t, err)
	assert.Equal(t, "jar", string(data))
}
