// Package model holds the provider-neutral records shared by the catalog clients,
// the settings store and the install orchestrator.
package model

import (
	"fmt"
	"strings"
)

// Provider identifies a remote mod catalog.
type Provider string

// Supported catalog providers.
const (
	ProviderCurseForge Provider = "curseforge"
	ProviderModtale    Provider = "modtale"
)

// Providers lists every supported provider in display order.
var Providers = []Provider{ProviderCurseForge, ProviderModtale}

// ParseProvider accepts the provider name case-insensitively.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ProviderCurseForge):
		return ProviderCurseForge, nil
	case string(ProviderModtale):
		return ProviderModtale, nil
	default:
		return "", fmt.Errorf("unknown provider %q (expected curseforge or modtale)", s)
	}
}

// DisplayName returns the human readable provider name.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderCurseForge:
		return "CurseForge"
	case ProviderModtale:
		return "Modtale"
	default:
		return string(p)
	}
}

// ReleaseChannel is the stability channel a version was published to.
type ReleaseChannel string

// Release channels.
const (
	ChannelRelease ReleaseChannel = "release"
	ChannelBeta    ReleaseChannel = "beta"
	ChannelAlpha   ReleaseChannel = "alpha"
	ChannelUnknown ReleaseChannel = "unknown"
)

// ParseReleaseChannel maps a channel name to a ReleaseChannel, Unknown when unrecognized.
func ParseReleaseChannel(s string) ReleaseChannel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "release", "stable":
		return ChannelRelease
	case "beta":
		return ChannelBeta
	case "alpha":
		return ChannelAlpha
	default:
		return ChannelUnknown
	}
}

// CatalogVersion is one downloadable version of a catalog item.
type CatalogVersion struct {
	ID           string         `json:"id"`
	Label        string         `json:"label"`
	Filename     string         `json:"filename"`
	DownloadURL  string         `json:"download_url,omitempty"`
	Channel      ReleaseChannel `json:"channel"`
	GameVersions []string       `json:"game_versions,omitempty"`
	UploadedAt   string         `json:"uploaded_at,omitempty"`
	Size         uint64         `json:"size,omitempty"`
}

// HasDownload reports whether the version can be fetched.
func (v CatalogVersion) HasDownload() bool {
	return strings.TrimSpace(v.DownloadURL) != ""
}

// IsZero reports whether the version carries no identity at all.
func (v CatalogVersion) IsZero() bool {
	return v.ID == "" && v.Label == "" && v.Filename == ""
}

// CatalogItem is a mod as listed by a remote catalog, normalized across providers.
type CatalogItem struct {
	ID            string         `json:"id"`
	Provider      Provider       `json:"provider"`
	Name          string         `json:"name"`
	Summary       string         `json:"summary,omitempty"`
	Authors       []string       `json:"authors,omitempty"`
	DownloadCount uint64         `json:"download_count"`
	Categories    []string       `json:"categories,omitempty"`
	IconURL       string         `json:"icon_url,omitempty"`
	WebsiteURL    string         `json:"website_url,omitempty"`
	Latest        CatalogVersion `json:"latest"`
}

// AuthorList joins the author names for display.
func (i CatalogItem) AuthorList() string {
	if len(i.Authors) == 0 {
		return "Unknown"
	}
	return strings.Join(i.Authors, ", ")
}
