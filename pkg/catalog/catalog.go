// Package catalog defines the capability every remote mod catalog provides
// and the registry that routes calls to the active provider.
//
//go:generate mockgen -destination=./mocks/catalog.go . Client
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/glorpus-work/hymod/pkg/model"
)

// PageSize is the number of items a search page holds.
const PageSize = 20

// Sort orders search results.
type Sort string

// Sort orders understood by every provider.
const (
	SortRelevance  Sort = "relevance"
	SortPopularity Sort = "popularity"
	SortUpdated    Sort = "updated"
	SortName       Sort = "name"
)

// Sorts lists the accepted sort orders.
var Sorts = []Sort{SortRelevance, SortPopularity, SortUpdated, SortName}

// ParseSort accepts a sort name; the empty string means popularity.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortPopularity, nil
	}
	for _, candidate := range Sorts {
		if strings.EqualFold(s, string(candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q (valid: relevance, popularity, updated, name)", s)
}

// Query is one search request.
type Query struct {
	Text   string
	Sort   Sort
	Offset int
}

// Page is one page of search results plus the total number of matches.
type Page struct {
	Items []model.CatalogItem
	Total int
}

// Client is the capability a catalog provider implements.
type Client interface {
	Provider() model.Provider
	// ValidateID rejects ids that cannot belong to this provider.
	ValidateID(id string) error
	Search(ctx context.Context, q Query) (Page, error)
	GetItem(ctx context.Context, id string) (model.CatalogItem, error)
	// ListVersions returns the item's versions in the order the provider
	// lists them, which is treated as newest first.
	ListVersions(ctx context.Context, id string) ([]model.CatalogVersion, error)
	// Fetch downloads a package using the provider's credential.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// SetCredential replaces the api key used by every later call.
	SetCredential(key string)
}
