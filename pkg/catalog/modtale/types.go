package modtale

import (
	"net/url"
	"strings"

	"github.com/glorpus-work/hymod/pkg/model"
)

type pageResponse struct {
	Content       []apiProject `json:"content"`
	TotalPages    int          `json:"totalPages"`
	TotalElements int          `json:"totalElements"`
}

// apiProject accepts both the current and the legacy field names the
// service has used.
type apiProject struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Summary       string       `json:"summary"`
	Description   string       `json:"description"`
	Author        string       `json:"author"`
	IconURL       string       `json:"iconUrl"`
	ImageURL      string       `json:"imageUrl"`
	DownloadCount uint64       `json:"downloadCount"`
	Categories    []string     `json:"categories"`
	Versions      []apiVersion `json:"versions"`
}

type apiVersion struct {
	ID                string   `json:"id"`
	VersionNumber     string   `json:"versionNumber"`
	SupportedVersions []string `json:"supportedVersions"`
	GameVersions      []string `json:"gameVersions"`
	DownloadURL       string   `json:"downloadUrl"`
	FileURL           string   `json:"fileUrl"`
	CreatedAt         string   `json:"createdAt"`
	ReleaseDate       string   `json:"releaseDate"`
	Channel           string   `json:"channel"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (p apiProject) toItem(cdnURL string) model.CatalogItem {
	item := model.CatalogItem{
		ID:            p.ID,
		Provider:      model.ProviderModtale,
		Name:          firstNonEmpty(p.Title, p.Name),
		Summary:       firstNonEmpty(p.Description, p.Summary),
		DownloadCount: p.DownloadCount,
		Categories:    p.Categories,
		IconURL:       absolute(cdnURL, firstNonEmpty(p.ImageURL, p.IconURL)),
	}
	if p.Author != "" {
		item.Authors = []string{p.Author}
	}
	if p.Slug != "" {
		item.WebsiteURL = "https://modtale.net/project/" + p.Slug
	}
	if len(p.Versions) > 0 {
		item.Latest = p.Versions[0].toVersion(cdnURL)
	}
	return item
}

func releaseChannel(channel string) model.ReleaseChannel {
	switch strings.ToUpper(channel) {
	case "BETA":
		return model.ChannelBeta
	case "ALPHA":
		return model.ChannelAlpha
	default:
		return model.ChannelRelease
	}
}

func (v apiVersion) toVersion(cdnURL string) model.CatalogVersion {
	download := absolute(cdnURL, firstNonEmpty(v.DownloadURL, v.FileURL))
	gameVersions := v.SupportedVersions
	if len(gameVersions) == 0 {
		gameVersions = v.GameVersions
	}
	return model.CatalogVersion{
		ID:           v.ID,
		Label:        v.VersionNumber,
		Filename:     filename(download, v.VersionNumber),
		DownloadURL:  download,
		Channel:      releaseChannel(v.Channel),
		GameVersions: gameVersions,
		UploadedAt:   firstNonEmpty(v.CreatedAt, v.ReleaseDate),
	}
}

// absolute resolves paths the service returns relative to its CDN.
func absolute(cdnURL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(cdnURL, "/") + "/" + strings.TrimLeft(ref, "/")
}

// filename is the last path segment of the download url, or
// "<versionNumber>.jar" when that segment is empty.
func filename(downloadURL, versionNumber string) string {
	if u, err := url.Parse(downloadURL); err == nil && downloadURL != "" {
		segment := u.Path[strings.LastIndex(u.Path, "/")+1:]
		if segment != "" {
			return segment
		}
	}
	return versionNumber + ".jar"
}
