// Package testutil provides a fake mod catalog for tests that drive the
// real CurseForge and Modtale clients.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// Mod is one mod served by CatalogServer. ID must be numeric for CurseForge
// requests and a UUID for Modtale requests. Version holds digits and dots.
type Mod struct {
	ID        string
	Name      string
	Author    string
	Downloads uint64
	Version   string
	// File, when set, is the package name of every version.
	File string
}

// Filename is the package name the current version downloads as.
func (m Mod) Filename() string {
	if m.File != "" {
		return m.File
	}
	return strings.ReplaceAll(m.Name, " ", "") + "-" + m.Version + ".jar"
}

// Body is the content served for the current version's package.
func (m Mod) Body() string {
	return "package " + m.Filename() + " " + m.Version
}

func (m Mod) downloadPath() string {
	return "/files/" + m.Version + "/" + m.Filename()
}

func (m Mod) versionID() string {
	return m.ID + "-" + strings.ReplaceAll(m.Version, ".", "")
}

// CatalogServer answers the subset of the CurseForge v1 and Modtale APIs the
// clients use, plus the package downloads they point at.
type CatalogServer struct {
	mu   sync.Mutex
	mods map[string]Mod
	// keys maps an auth header to the value it must carry; empty means open.
	keys map[string]string

	Server *httptest.Server
	URL    string
}

// NewCatalogServer starts a server that is closed with the test.
func NewCatalogServer(t *testing.T) *CatalogServer {
	t.Helper()
	s := &CatalogServer{mods: map[string]Mod{}, keys: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/mods/search", s.authorized("x-api-key", s.cfSearch))
	mux.HandleFunc("GET /v1/mods/{id}", s.authorized("x-api-key", s.cfModResponse))
	mux.HandleFunc("GET /v1/mods/{id}/files", s.authorized("x-api-key", s.cfFiles))
	mux.HandleFunc("GET /api/v1/projects", s.authorized("X-MODTALE-KEY", s.mtSearch))
	mux.HandleFunc("GET /api/v1/projects/{id}", s.authorized("X-MODTALE-KEY", s.mtProject))
	mux.HandleFunc("GET /files/{version}/{name}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, "package %s %s", r.PathValue("name"), r.PathValue("version"))
	})

	s.Server = httptest.NewServer(mux)
	s.URL = s.Server.URL
	t.Cleanup(s.Server.Close)
	return s
}

// CurseForgeURL is the base url to configure the CurseForge client with.
func (s *CatalogServer) CurseForgeURL() string { return s.URL + "/v1" }

// ModtaleURL is the base url to configure the Modtale client with.
func (s *CatalogServer) ModtaleURL() string { return s.URL + "/api/v1" }

// AddMod publishes m, replacing a mod with the same id.
func (s *CatalogServer) AddMod(m Mod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mods[m.ID] = m
}

// SetVersion publishes a new latest version of mod id.
func (s *CatalogServer) SetVersion(id, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.mods[id]
	m.Version = version
	s.mods[id] = m
}

// RequireKey rejects requests whose header does not carry key.
func (s *CatalogServer) RequireKey(header, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[http.CanonicalHeaderKey(header)] = key
}

func (s *CatalogServer) authorized(header string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want, ok := s.keys[http.CanonicalHeaderKey(header)]
		s.mu.Unlock()
		if ok && r.Header.Get(header) != want {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

func (s *CatalogServer) lookup(id string) (Mod, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mods[id]
	return m, ok
}

// matching returns the mods whose name contains q, ordered by id.
func (s *CatalogServer) matching(q string) []Mod {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Mod
	for _, m := range s.mods {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(q)) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *CatalogServer) cfFile(m Mod) map[string]any {
	return map[string]any{
		"id":          json.Number(m.ID + strings.ReplaceAll(m.Version, ".", "")),
		"displayName": m.Name + " " + m.Version,
		"fileName":    m.Filename(),
		"fileDate":    "2026-01-02T00:00:00Z",
		"fileLength":  len(m.Body()),
		"releaseType": 1,
		"downloadUrl": s.URL + m.downloadPath(),
	}
}

func (s *CatalogServer) cfMod(m Mod) map[string]any {
	return map[string]any{
		"id":            json.Number(m.ID),
		"name":          m.Name,
		"summary":       m.Name + " for tests",
		"downloadCount": m.Downloads,
		"authors":       []map[string]string{{"name": m.Author}},
		"latestFiles":   []any{s.cfFile(m)},
	}
}

func (s *CatalogServer) cfSearch(w http.ResponseWriter, r *http.Request) {
	mods := s.matching(r.URL.Query().Get("searchFilter"))
	data := make([]any, 0, len(mods))
	for _, m := range mods {
		data = append(data, s.cfMod(m))
	}
	writeJSON(w, map[string]any{
		"data":       data,
		"pagination": map[string]int{"index": 0, "pageSize": 20, "totalCount": len(mods)},
	})
}

func (s *CatalogServer) findMod(w http.ResponseWriter, r *http.Request) (Mod, bool) {
	m, ok := s.lookup(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
	}
	return m, ok
}

func (s *CatalogServer) cfModResponse(w http.ResponseWriter, r *http.Request) {
	if m, ok := s.findMod(w, r); ok {
		writeJSON(w, map[string]any{"data": s.cfMod(m)})
	}
}

func (s *CatalogServer) cfFiles(w http.ResponseWriter, r *http.Request) {
	if m, ok := s.findMod(w, r); ok {
		writeJSON(w, map[string]any{"data": []any{s.cfFile(m)}})
	}
}

func (s *CatalogServer) mtProjectBody(m Mod) map[string]any {
	return map[string]any{
		"id":            m.ID,
		"title":         m.Name,
		"slug":          strings.ToLower(strings.ReplaceAll(m.Name, " ", "-")),
		"description":   m.Name + " for tests",
		"author":        m.Author,
		"downloadCount": m.Downloads,
		"versions": []map[string]any{{
			"id":                m.versionID(),
			"versionNumber":     m.Version,
			"supportedVersions": []string{"Early Access"},
			"fileUrl":           m.downloadPath(),
			"createdAt":         "2026-01-02T00:00:00Z",
			"channel":           "RELEASE",
		}},
	}
}

func (s *CatalogServer) mtSearch(w http.ResponseWriter, r *http.Request) {
	mods := s.matching(r.URL.Query().Get("q"))
	content := make([]any, 0, len(mods))
	for _, m := range mods {
		content = append(content, s.mtProjectBody(m))
	}
	writeJSON(w, map[string]any{"content": content, "totalPages": 1, "totalElements": len(mods)})
}

func (s *CatalogServer) mtProject(w http.ResponseWriter, r *http.Request) {
	if m, ok := s.findMod(w, r); ok {
		writeJSON(w, s.mtProjectBody(m))
	}
}
