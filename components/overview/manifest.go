package overview

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	tileManifestVersionV1 = "1"
	// TileManifestVersion exposes the current manifest format version for tooling.
	TileManifestVersion = tileManifestVersionV1
)

// TileManifestDocument models a YAML/JSON manifest describing the tab groups
// of the tabbed tiles. The tile sequence itself is fixed; manifests exist so
// deployments can relabel, localize or reorder tabs without forking the
// deriver. Compiled-in defaults cover the standard screen.
type TileManifestDocument struct {
	Version string             `json:"version" yaml:"version"`
	Name    string             `json:"name,omitempty" yaml:"name,omitempty"`
	Groups  []TabGroupManifest `json:"groups" yaml:"groups"`
	Source  string             `json:"-" yaml:"-"`
}

// TabGroupManifest is the declarative table behind one tabbed tile.
type TabGroupManifest struct {
	Group          TabGroupID        `json:"group" yaml:"group"`
	Title          string            `json:"title" yaml:"title"`
	TitleLocalized map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	Tabs           []ManifestTab     `json:"tabs" yaml:"tabs"`
}

// ManifestTab binds a tab id to its breakdown dimension and display strings.
type ManifestTab struct {
	ID                TabID             `json:"id" yaml:"id"`
	Title             string            `json:"title,omitempty" yaml:"title,omitempty"`
	TitleLocalized    map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	LinkText          string            `json:"link_text,omitempty" yaml:"link_text,omitempty"`
	LinkTextLocalized map[string]string `json:"link_text_localized,omitempty" yaml:"link_text_localized,omitempty"`
	Breakdown         Breakdown         `json:"breakdown" yaml:"breakdown"`
}

// DefaultTabGroups returns copies of the built-in tab tables.
func DefaultTabGroups() []TabGroupManifest {
	groups := make([]TabGroupManifest, len(defaultTabGroups))
	for i, group := range defaultTabGroups {
		group.Tabs = append([]ManifestTab{}, group.Tabs...)
		groups[i] = group
	}
	return groups
}

var defaultTabGroups = []TabGroupManifest{
	{
		Group: TabGroupPaths,
		Title: "Paths",
		Tabs: []ManifestTab{
			{ID: PathTabPath, LinkText: "Paths", Breakdown: BreakdownPage},
			{ID: PathTabInitialPath, LinkText: "Initial paths", Breakdown: BreakdownInitialPage},
		},
	},
	{
		Group: TabGroupSources,
		Title: "Traffic Sources",
		Tabs: []ManifestTab{
			{ID: SourceTabReferringDomain, LinkText: "Referring domain", Breakdown: BreakdownInitialReferringDomain},
			{ID: SourceTabUTMSource, LinkText: "UTM source", Breakdown: BreakdownInitialUTMSource},
			{ID: SourceTabUTMCampaign, LinkText: "UTM campaign", Breakdown: BreakdownInitialUTMCampaign},
		},
	},
	{
		Group: TabGroupDevices,
		Title: "Devices",
		Tabs: []ManifestTab{
			{ID: DeviceTabBrowser, LinkText: "Browser", Breakdown: BreakdownBrowser},
			{ID: DeviceTabOS, LinkText: "OS", Breakdown: BreakdownOS},
			{ID: DeviceTabDeviceType, LinkText: "Device type", Breakdown: BreakdownDeviceType},
		},
	},
}

// ReadTileManifest loads a manifest file from disk.
func ReadTileManifest(path string) (*TileManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("overview: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeTileManifest(f)
	if err != nil {
		return nil, fmt.Errorf("overview: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeTileManifest reads a manifest from any reader.
func DecodeTileManifest(r io.Reader) (*TileManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc TileManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("overview: manifest is empty")
		}
		return nil, fmt.Errorf("overview: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *TileManifestDocument) Validate() error {
	if doc.Version != tileManifestVersionV1 {
		return fmt.Errorf("overview: unsupported manifest version %q", doc.Version)
	}
	seenGroups := make(map[TabGroupID]struct{}, len(doc.Groups))
	for _, group := range doc.Groups {
		switch group.Group {
		case TabGroupPaths, TabGroupSources, TabGroupDevices:
		default:
			return fmt.Errorf("overview: manifest references unknown tab group %q", group.Group)
		}
		if _, exists := seenGroups[group.Group]; exists {
			return fmt.Errorf("overview: manifest duplicates tab group %s", group.Group)
		}
		seenGroups[group.Group] = struct{}{}
		if len(group.Tabs) == 0 {
			return fmt.Errorf("overview: tab group %s has no tabs", group.Group)
		}
		seenTabs := make(map[TabID]struct{}, len(group.Tabs))
		for _, tab := range group.Tabs {
			if tab.ID == "" {
				return fmt.Errorf("overview: tab group %s contains a tab without id", group.Group)
			}
			if _, exists := seenTabs[tab.ID]; exists {
				return fmt.Errorf("overview: tab group %s duplicates tab id %s", group.Group, tab.ID)
			}
			seenTabs[tab.ID] = struct{}{}
			if !tab.Breakdown.Valid() {
				return fmt.Errorf("overview: tab %s/%s references unknown breakdown %q", group.Group, tab.ID, tab.Breakdown)
			}
		}
	}
	return nil
}

func (doc *TileManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = tileManifestVersionV1
	}
	for gi := range doc.Groups {
		for ti := range doc.Groups[gi].Tabs {
			tab := &doc.Groups[gi].Tabs[ti]
			if tab.Title == "" {
				tab.Title = tab.Breakdown.ColumnTitle()
			}
			if tab.LinkText == "" {
				tab.LinkText = tab.Title
			}
		}
	}
}

// TitleForLocale returns the tile heading for the requested locale.
func (g TabGroupManifest) TitleForLocale(locale string) string {
	return ResolveLocalizedValue(g.TitleLocalized, locale, g.Title)
}

// TitleForLocale returns the tab title with graceful fallback.
func (t ManifestTab) TitleForLocale(locale string) string {
	return ResolveLocalizedValue(t.TitleLocalized, locale, t.titleOrDefault())
}

// LinkTextForLocale returns the tab link label with graceful fallback.
func (t ManifestTab) LinkTextForLocale(locale string) string {
	fallback := t.LinkText
	if fallback == "" {
		fallback = t.titleOrDefault()
	}
	return ResolveLocalizedValue(t.LinkTextLocalized, locale, fallback)
}

func (t ManifestTab) titleOrDefault() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Breakdown.ColumnTitle()
}
