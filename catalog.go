package fpml

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogRelease struct {
	Version          string            `yaml:"version"`
	Variant          string            `yaml:"variant"`
	Namespace        string            `yaml:"namespace"`
	VersionAttribute string            `yaml:"versionAttribute"`
	RootElements     []string          `yaml:"rootElements"`
	SchemeDefaults   map[string]string `yaml:"schemeDefaults"`
}

type catalogFile struct {
	Releases []catalogRelease `yaml:"releases"`
}

// LoadCatalog reads release descriptors from a YAML catalog. Each entry
// needs a version and namespace; variant, root elements, scheme
// defaults and the version attribute are optional.
func LoadCatalog(r io.Reader) ([]*Release, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Releases) == 0 {
		return nil, fmt.Errorf("catalog declares no releases")
	}

	seen := make(map[string]bool)
	releases := make([]*Release, 0, len(file.Releases))
	for i, entry := range file.Releases {
		if entry.Version == "" {
			return nil, fmt.Errorf("catalog release %d: missing version", i)
		}
		if entry.Namespace == "" {
			return nil, fmt.Errorf("catalog release %q: missing namespace", entry.Version)
		}
		variant, ok := ParseVariant(entry.Variant)
		if !ok {
			return nil, fmt.Errorf("catalog release %q: unknown variant %q", entry.Version, entry.Variant)
		}
		key := entry.Version + "/" + entry.Variant
		if seen[key] {
			return nil, fmt.Errorf("catalog release %q: duplicate version and variant", entry.Version)
		}
		seen[key] = true

		opts := []ReleaseOption{WithVariant(variant)}
		if len(entry.RootElements) > 0 {
			opts = append(opts, WithRootElements(entry.RootElements...))
		}
		if len(entry.SchemeDefaults) > 0 {
			opts = append(opts, WithSchemeDefaults(entry.SchemeDefaults))
		}
		if entry.VersionAttribute != "" {
			opts = append(opts, WithVersionAttribute(entry.VersionAttribute))
		}
		releases = append(releases, NewRelease(entry.Version, entry.Namespace, opts...))
	}
	return releases, nil
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) ([]*Release, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}
