package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	overview "github.com/goliatone/go-webstats/components/overview"
)

type cli struct {
	Derive   deriveCmd   `cmd:"" help:"Derive the overview tile descriptors for a given screen state."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a tab entry to a tile manifest file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Inspection and scaffolding utility for go-webstats overview screens."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type deriveCmd struct {
	FiltersPath  string `name:"filters" type:"path" help:"Path to a JSON/YAML file holding the property filter list."`
	ManifestPath string `name:"manifest" type:"path" help:"Optional tile manifest overriding the built-in tab tables."`
	PathTab      string `default:"PATH" help:"Active tab of the paths tile."`
	SourceTab    string `default:"REFERRING_DOMAIN" help:"Active tab of the traffic-sources tile."`
	DeviceTab    string `default:"BROWSER" help:"Active tab of the devices tile."`
	Format       string `default:"yaml" enum:"yaml,json" help:"Output format."`
}

func (cmd *deriveCmd) Run(_ context.Context) error {
	state := overview.DefaultState()
	state.PathTab = overview.TabID(cmd.PathTab)
	state.SourceTab = overview.TabID(cmd.SourceTab)
	state.DeviceTab = overview.TabID(cmd.DeviceTab)

	if cmd.FiltersPath != "" {
		filters, err := readFilters(cmd.FiltersPath)
		if err != nil {
			return err
		}
		state.Filters = filters
	}

	var opts []overview.DeriverOption
	if cmd.ManifestPath != "" {
		doc, err := overview.ReadTileManifest(cmd.ManifestPath)
		if err != nil {
			return err
		}
		opts = append(opts, overview.WithTabGroups(doc.Groups))
	}

	tiles := overview.NewDeriver(opts...).Derive(state)
	return dump(os.Stdout, cmd.Format, map[string]any{"tiles": tiles})
}

func readFilters(path string) ([]overview.PropertyFilter, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("overviewctl: read filters file: %w", err)
	}
	var filters []overview.PropertyFilter
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &filters); err != nil {
			return nil, fmt.Errorf("overviewctl: parse filters JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &filters); err != nil {
			return nil, fmt.Errorf("overviewctl: parse filters YAML: %w", err)
		}
	}
	return filters, nil
}

func dump(out *os.File, format string, payload any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	default:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(payload)
	}
}

type scaffoldCmd struct {
	ManifestPath string `required:"" name:"manifest" type:"path" help:"Path to the tile manifest YAML file to update."`
	Group        string `required:"" help:"Tab group to extend (paths, sources, devices)."`
	ID           string `required:"" help:"Tab id (e.g. UTM_MEDIUM style upper snake case)."`
	Breakdown    string `required:"" help:"Breakdown dimension the tab groups by."`
	Title        string `help:"Column title (defaults to the breakdown's column title)."`
	LinkText     string `help:"Tab link label (defaults to a humanized tab id)."`
	Overwrite    bool   `help:"Replace an existing tab with the same id."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	breakdown, err := overview.ParseBreakdown(cmd.Breakdown)
	if err != nil {
		return err
	}
	group := overview.TabGroupID(cmd.Group)
	switch group {
	case overview.TabGroupPaths, overview.TabGroupSources, overview.TabGroupDevices:
	default:
		return fmt.Errorf("overviewctl: unknown tab group %q", cmd.Group)
	}

	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("overviewctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	linkText := cmd.LinkText
	if linkText == "" {
		linkText = strcase.ToCase(strings.ToLower(cmd.ID), strcase.TitleCase, ' ')
	}
	tab := overview.ManifestTab{
		ID:        overview.TabID(cmd.ID),
		Title:     cmd.Title,
		LinkText:  linkText,
		Breakdown: breakdown,
	}

	if err := upsertTab(doc, group, tab, cmd.Overwrite); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added tab %s to group %s in %s\n", cmd.ID, cmd.Group, manifestPath)
	return nil
}

func upsertTab(doc *overview.TileManifestDocument, group overview.TabGroupID, tab overview.ManifestTab, overwrite bool) error {
	for gi := range doc.Groups {
		if doc.Groups[gi].Group != group {
			continue
		}
		for ti := range doc.Groups[gi].Tabs {
			if doc.Groups[gi].Tabs[ti].ID != tab.ID {
				continue
			}
			if !overwrite {
				return fmt.Errorf("overviewctl: group %s already defines tab %s (use --overwrite to replace)", group, tab.ID)
			}
			doc.Groups[gi].Tabs[ti] = tab
			return nil
		}
		doc.Groups[gi].Tabs = append(doc.Groups[gi].Tabs, tab)
		return nil
	}
	doc.Groups = append(doc.Groups, overview.TabGroupManifest{
		Group: group,
		Title: strcase.ToCase(string(group), strcase.TitleCase, ' '),
		Tabs:  []overview.ManifestTab{tab},
	})
	sort.Slice(doc.Groups, func(i, j int) bool {
		return doc.Groups[i].Group < doc.Groups[j].Group
	})
	return nil
}

func loadOrInitManifest(path string) (*overview.TileManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &overview.TileManifestDocument{
				Version: overview.TileManifestVersion,
				Groups:  []overview.TabGroupManifest{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("overviewctl: stat manifest: %w", err)
	}
	return overview.ReadTileManifest(path)
}

func writeManifest(path string, doc *overview.TileManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("overviewctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("overviewctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("overviewctl: write manifest: %w", err)
	}
	return nil
}
