// Package modtale implements the catalog capability against the Modtale API.
package modtale

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
	"github.com/google/uuid"
)

const keyHeader = "X-MODTALE-KEY"

// Client talks to one Modtale endpoint.
type Client struct {
	baseURL string
	cdnURL  string
	dl      download.Manager

	mu   sync.RWMutex
	auth auth.Authenticator
}

// New creates a client. Relative download paths are resolved against cdnURL.
func New(baseURL, cdnURL string, dl download.Manager) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cdnURL:  strings.TrimRight(cdnURL, "/"),
		dl:      dl,
	}
}

// Provider implements catalog.Client.
func (c *Client) Provider() model.Provider { return model.ProviderModtale }

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

// ValidateID accepts project uuids.
func (c *Client) ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrapf(errors.ErrInvalidIdentifier, "modtale ids are uuids, got %q", id)
	}
	return nil
}

func sortParam(s catalog.Sort) string {
	switch s {
	case catalog.SortRelevance:
		return "relevance"
	case catalog.SortUpdated:
		return "updated"
	default:
		// no name ordering upstream
		return "downloads"
	}
}

// Search implements catalog.Client.
func (c *Client) Search(ctx context.Context, q catalog.Query) (catalog.Page, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(q.Text))
	params.Set("sort", sortParam(q.Sort))
	params.Set("page", strconv.Itoa(max(q.Offset, 0)/catalog.PageSize))
	params.Set("size", strconv.Itoa(catalog.PageSize))

	var resp pageResponse
	if err := c.dl.GetJSON(ctx, c.baseURL+"/projects?"+params.Encode(), c.credential(), &resp); err != nil {
		return catalog.Page{}, errors.Op("search", "", err)
	}

	page := catalog.Page{
		Items: make([]model.CatalogItem, 0, len(resp.Content)),
		Total: resp.TotalElements,
	}
	for _, p := range resp.Content {
		page.Items = append(page.Items, p.toItem(c.cdnURL))
	}
	if page.Total < len(page.Items) {
		page.Total = len(page.Items)
	}
	return page, nil
}

func (c *Client) project(ctx context.Context, op, id string) (*apiProject, error) {
	if err := c.ValidateID(id); err != nil {
		return nil, errors.Op(op, id, err)
	}
	var p apiProject
	if err := c.dl.GetJSON(ctx, c.baseURL+"/projects/"+url.PathEscape(id), c.credential(), &p); err != nil {
		return nil, errors.Op(op, id, err)
	}
	if p.ID == "" {
		return nil, errors.Op(op, id, errors.Wrap(errors.ErrParse, "project has no id"))
	}
	return &p, nil
}

// GetItem implements catalog.Client.
func (c *Client) GetItem(ctx context.Context, id string) (model.CatalogItem, error) {
	p, err := c.project(ctx, "get item", id)
	if err != nil {
		return model.CatalogItem{}, err
	}
	return p.toItem(c.cdnURL), nil
}

// ListVersions implements catalog.Client. Versions come embedded in the
// project document.
func (c *Client) ListVersions(ctx context.Context, id string) ([]model.CatalogVersion, error) {
	p, err := c.project(ctx, "list versions", id)
	if err != nil {
		return nil, err
	}
	versions := make([]model.CatalogVersion, 0, len(p.Versions))
	for _, v := range p.Versions {
		versions = append(versions, v.toVersion(c.cdnURL))
	}
	return versions, nil
}

// Fetch implements catalog.Client.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.dl.Get(ctx, absolute(c.cdnURL, rawURL), c.credential())
}
