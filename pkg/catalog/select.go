package catalog

import (
	"regexp"
	"strings"

	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/hashicorp/go-version"
)

// Selector picks one version out of a version list.
type Selector struct {
	// Spec is a version id, an exact label, or a constraint such as ">= 1.2, < 2".
	// Empty selects the newest version.
	Spec string
	// Channel restricts candidates to one release channel when set.
	Channel model.ReleaseChannel
}

var versionPattern = regexp.MustCompile(`v?\d+(\.\d+)*([-+][0-9A-Za-z.\-]+)?`)

// ParseLabel extracts a comparable version from a display label such as
// "1.2.3", "v2" or "CoolMod-1.4.0-beta".
func ParseLabel(label string) (*version.Version, bool) {
	if v, err := version.NewVersion(strings.TrimSpace(label)); err == nil {
		return v, true
	}
	match := versionPattern.FindString(label)
	if match == "" {
		return nil, false
	}
	v, err := version.NewVersion(match)
	if err != nil {
		return nil, false
	}
	return v, true
}

// SelectVersion applies sel to versions, which are taken to be ordered
// newest first.
// An exact id or label match wins over a constraint match; among constraint
// matches the highest version wins.
func SelectVersion(versions []model.CatalogVersion, sel Selector) (model.CatalogVersion, error) {
	candidates := versions
	if sel.Channel != "" {
		candidates = make([]model.CatalogVersion, 0, len(versions))
		for _, v := range versions {
			if v.Channel == sel.Channel {
				candidates = append(candidates, v)
			}
		}
	}
	if len(candidates) == 0 {
		return model.CatalogVersion{}, errors.ErrNoMatchingVersion
	}

	spec := strings.TrimSpace(sel.Spec)
	if spec == "" || strings.EqualFold(spec, "latest") {
		return candidates[0], nil
	}

	for _, v := range candidates {
		if v.ID == spec || v.Label == spec {
			return v, nil
		}
	}

	constraints, err := version.NewConstraint(spec)
	if err != nil {
		return model.CatalogVersion{}, errors.Wrapf(errors.ErrNoMatchingVersion, "%q is neither a known version nor a constraint", spec)
	}

	var (
		best    model.CatalogVersion
		bestVer *version.Version
	)
	for _, v := range candidates {
		parsed, ok := ParseLabel(v.Label)
		if !ok || !constraints.Check(parsed) {
			continue
		}
		if bestVer == nil || parsed.GreaterThan(bestVer) {
			best, bestVer = v, parsed
		}
	}
	if bestVer == nil {
		return model.CatalogVersion{}, errors.Wrapf(errors.ErrNoMatchingVersion, "constraint %q", spec)
	}
	return best, nil
}
