package cli

import (
	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/glorpus-work/hymod/pkg/orchestrator"
)

// itemRow is the structured rendering of a catalog item.
type itemRow struct {
	ID            string      `json:"id" yaml:"id"`
	Provider      string      `json:"provider" yaml:"provider"`
	Name          string      `json:"name" yaml:"name"`
	Summary       string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Authors       []string    `json:"authors,omitempty" yaml:"authors,omitempty"`
	Downloads     uint64      `json:"downloads" yaml:"downloads"`
	Categories    []string    `json:"categories,omitempty" yaml:"categories,omitempty"`
	WebsiteURL    string      `json:"website_url,omitempty" yaml:"website_url,omitempty"`
	Latest        *versionRow `json:"latest,omitempty" yaml:"latest,omitempty"`
	Status        string      `json:"status" yaml:"status"`
	LocalVersion  string      `json:"local_version,omitempty" yaml:"local_version,omitempty"`
	LocalFilename string      `json:"local_filename,omitempty" yaml:"local_filename,omitempty"`
	Action        string      `json:"action,omitempty" yaml:"action,omitempty"`
	LastError     string      `json:"last_error,omitempty" yaml:"last_error,omitempty"`
}

type versionRow struct {
	ID           string   `json:"id" yaml:"id"`
	Label        string   `json:"label" yaml:"label"`
	Filename     string   `json:"filename" yaml:"filename"`
	Channel      string   `json:"channel" yaml:"channel"`
	GameVersions []string `json:"game_versions,omitempty" yaml:"game_versions,omitempty"`
	UploadedAt   string   `json:"uploaded_at,omitempty" yaml:"uploaded_at,omitempty"`
	Size         uint64   `json:"size,omitempty" yaml:"size,omitempty"`
	DownloadURL  string   `json:"download_url,omitempty" yaml:"download_url,omitempty"`
}

func newVersionRow(v model.CatalogVersion) *versionRow {
	if v.IsZero() {
		return nil
	}
	return &versionRow{
		ID:           v.ID,
		Label:        v.Label,
		Filename:     v.Filename,
		Channel:      string(v.Channel),
		GameVersions: v.GameVersions,
		UploadedAt:   v.UploadedAt,
		Size:         v.Size,
		DownloadURL:  v.DownloadURL,
	}
}

func newItemRow(item model.CatalogItem, view orchestrator.ItemView) itemRow {
	row := itemRow{
		ID:            item.ID,
		Provider:      string(item.Provider),
		Name:          item.Name,
		Summary:       item.Summary,
		Authors:       item.Authors,
		Downloads:     item.DownloadCount,
		Categories:    item.Categories,
		WebsiteURL:    item.WebsiteURL,
		Latest:        newVersionRow(item.Latest),
		Status:        view.Status.Status.String(),
		LocalVersion:  view.Status.LocalVersionLabel,
		LocalFilename: view.Status.LocalFilename,
		Action:        view.Label,
	}
	if view.LastErr != nil {
		row.LastError = view.LastErr.Error()
	}
	return row
}

// localRow is the structured rendering of a scanned package file.
type localRow struct {
	Filename string `json:"filename" yaml:"filename"`
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Size     int64  `json:"size" yaml:"size"`
	Tracked  bool   `json:"tracked" yaml:"tracked"`
	Live     bool   `json:"live" yaml:"live"`
	ItemID   string `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Status   string `json:"status" yaml:"status"`
}
