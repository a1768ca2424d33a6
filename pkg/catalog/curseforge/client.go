// Package curseforge implements the catalog capability against the
// CurseForge v1 API.
package curseforge

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/glorpus-work/hymod/pkg/auth"
	"github.com/glorpus-work/hymod/pkg/catalog"
	"github.com/glorpus-work/hymod/pkg/download"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/model"
)

// API key header.
const keyHeader = "x-api-key"

const filesPageSize = 50

// Client talks to one CurseForge endpoint for one game.
type Client struct {
	baseURL string
	gameID  int
	dl      download.Manager

	mu   sync.RWMutex
	auth auth.Authenticator
}

// New creates a client. baseURL is normally https://api.curseforge.com/v1.
func New(baseURL string, gameID int, dl download.Manager) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		gameID:  gameID,
		dl:      dl,
	}
}

// Provider implements catalog.Client.
func (c *Client) Provider() model.Provider { return model.ProviderCurseForge }

// SetCredential implements catalog.Client.
func (c *Client) SetCredential(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = auth.APIKey(keyHeader, key)
}

func (c *Client) credential() auth.Authenticator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

// ValidateID accepts unsigned 32-bit numbers only.
func (c *Client) ValidateID(id string) error {
	if _, err := strconv.ParseUint(id, 10, 32); err != nil {
		return errors.Wrapf(errors.ErrInvalidIdentifier, "curseforge ids are numbers, got %q", id)
	}
	return nil
}

func sortField(s catalog.Sort) (field, order string) {
	switch s {
	case catalog.SortRelevance:
		return "1", "desc"
	case catalog.SortUpdated:
		return "3", "desc"
	case catalog.SortName:
		return "4", "asc"
	default:
		return "2", "desc"
	}
}

// Search implements catalog.Client.
func (c *Client) Search(ctx context.Context, q catalog.Query) (catalog.Page, error) {
	field, order := sortField(q.Sort)
	params := url.Values{}
	params.Set("gameId", strconv.Itoa(c.gameID))
	params.Set("searchFilter", strings.TrimSpace(q.Text))
	params.Set("pageSize", strconv.Itoa(catalog.PageSize))
	params.Set("sortField", field)
	params.Set("sortOrder", order)
	params.Set("index", strconv.Itoa(max(q.Offset, 0)))

	var resp searchResponse
	if err := c.dl.GetJSON(ctx, c.baseURL+"/mods/search?"+params.Encode(), c.credential(), &resp); err != nil {
		return catalog.Page{}, errors.Op("search", "", err)
	}

	page := catalog.Page{Items: make([]model.CatalogItem, 0, len(resp.Data))}
	for _, m := range resp.Data {
		page.Items = append(page.Items, m.toItem())
	}
	page.Total = len(page.Items)
	if resp.Pagination != nil {
		page.Total = resp.Pagination.TotalCount
	}
	return page, nil
}

// GetItem implements catalog.Client.
func (c *Client) GetItem(ctx context.Context, id string) (model.CatalogItem, error) {
	if err := c.ValidateID(id); err != nil {
		return model.CatalogItem{}, errors.Op("get item", id, err)
	}

	var resp modResponse
	if err := c.dl.GetJSON(ctx, c.baseURL+"/mods/"+id, c.credential(), &resp); err != nil {
		return model.CatalogItem{}, errors.Op("get item", id, err)
	}
	if resp.Data == nil {
		return model.CatalogItem{}, errors.Op("get item", id, errors.Wrap(errors.ErrParse, "response has no data"))
	}
	return resp.Data.toItem(), nil
}

// ListVersions implements catalog.Client.
func (c *Client) ListVersions(ctx context.Context, id string) ([]model.CatalogVersion, error) {
	if err := c.ValidateID(id); err != nil {
		return nil, errors.Op("list versions", id, err)
	}

	endpoint := c.baseURL + "/mods/" + id + "/files?pageSize=" + strconv.Itoa(filesPageSize)
	var resp filesResponse
	if err := c.dl.GetJSON(ctx, endpoint, c.credential(), &resp); err != nil {
		return nil, errors.Op("list versions", id, err)
	}

	versions := make([]model.CatalogVersion, 0, len(resp.Data))
	for _, f := range resp.Data {
		versions = append(versions, f.toVersion())
	}
	return versions, nil
}

// Fetch implements catalog.Client.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.dl.Get(ctx, rawURL, c.credential())
}
