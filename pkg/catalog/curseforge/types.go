package curseforge

import (
	"strconv"

	"github.com/glorpus-work/hymod/pkg/model"
)

type searchResponse struct {
	Data       []apiMod    `json:"data"`
	Pagination *pagination `json:"pagination"`
}

type modResponse struct {
	Data *apiMod `json:"data"`
}

type filesResponse struct {
	Data []apiFile `json:"data"`
}

type pagination struct {
	Index      int `json:"index"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}

type apiMod struct {
	ID            uint32     `json:"id"`
	Name          string     `json:"name"`
	Summary       string     `json:"summary"`
	DownloadCount float64    `json:"downloadCount"`
	Links         apiLinks   `json:"links"`
	Authors       []apiNamed `json:"authors"`
	Categories    []apiNamed `json:"categories"`
	Logo          *apiAsset  `json:"logo"`
	LatestFiles   []apiFile  `json:"latestFiles"`
}

type apiLinks struct {
	WebsiteURL string `json:"websiteUrl"`
}

type apiNamed struct {
	Name string `json:"name"`
}

type apiAsset struct {
	ThumbnailURL string `json:"thumbnailUrl"`
}

type apiFile struct {
	ID           uint32   `json:"id"`
	DisplayName  string   `json:"displayName"`
	FileName     string   `json:"fileName"`
	FileDate     string   `json:"fileDate"`
	FileLength   uint64   `json:"fileLength"`
	ReleaseType  int      `json:"releaseType"`
	DownloadURL  *string  `json:"downloadUrl"`
	GameVersions []string `json:"gameVersions"`
}

func (m apiMod) toItem() model.CatalogItem {
	item := model.CatalogItem{
		ID:            strconv.FormatUint(uint64(m.ID), 10),
		Provider:      model.ProviderCurseForge,
		Name:          m.Name,
		Summary:       m.Summary,
		DownloadCount: uint64(max(m.DownloadCount, 0)),
		WebsiteURL:    m.Links.WebsiteURL,
	}
	for _, a := range m.Authors {
		item.Authors = append(item.Authors, a.Name)
	}
	for _, cat := range m.Categories {
		item.Categories = append(item.Categories, cat.Name)
	}
	if m.Logo != nil {
		item.IconURL = m.Logo.ThumbnailURL
	}
	if len(m.LatestFiles) > 0 {
		item.Latest = m.LatestFiles[0].toVersion()
	}
	return item
}

func releaseChannel(releaseType int) model.ReleaseChannel {
	switch releaseType {
	case 1:
		return model.ChannelRelease
	case 2:
		return model.ChannelBeta
	case 3:
		return model.ChannelAlpha
	default:
		return model.ChannelUnknown
	}
}

func (f apiFile) toVersion() model.CatalogVersion {
	v := model.CatalogVersion{
		ID:           strconv.FormatUint(uint64(f.ID), 10),
		Label:        f.DisplayName,
		Filename:     f.FileName,
		Channel:      releaseChannel(f.ReleaseType),
		GameVersions: f.GameVersions,
		UploadedAt:   f.FileDate,
		Size:         f.FileLength,
	}
	if f.DownloadURL != nil {
		v.DownloadURL = *f.DownloadURL
	}
	return v
}
