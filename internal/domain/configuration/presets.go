package configuration

import (
	"fmt"
	"sort"
	"strings"

	"github.com/surfedu/searchclient/internal/domain"
)

// Preset keys are "entity[:subtype]".
const (
	DefaultSubtype = "default"
	// DefaultPreset is used when a caller selects no presets.
	DefaultPreset = "products:multilingual-indices"
)

// Registry holds the presets of every platform.
type Registry struct {
	presets map[domain.Platform]map[string]Configuration
}

// NewRegistry builds a registry from preset configurations keyed by platform.
func NewRegistry(presets map[domain.Platform]map[string]Configuration) *Registry {
	r := &Registry{presets: make(map[domain.Platform]map[string]Configuration, len(presets))}
	for p, byKey := range presets {
		r.presets[p] = make(map[string]Configuration, len(byKey))
		for k, c := range byKey {
			r.presets[p][k] = c
		}
	}
	return r
}

type builder func(domain.Platform) (Configuration, error)

// DefaultRegistry returns the presets shipped for every platform.
func DefaultRegistry() (*Registry, error) {
	layout := map[domain.Platform]map[string]builder{
		domain.PlatformEdusources: {
			"products:multilingual-indices": BuildMultilingualIndices,
			"products:default":              BuildProducts,
			"persons:default":               BuildPersons,
			"organizations:default":         BuildOrganizations,
		},
		domain.PlatformPublinova: {
			"products:multilingual-indices": BuildMultilingualIndices,
			"products:default":              BuildProducts,
			"projects:default":              BuildProjects,
			"persons:default":               BuildPersons,
			"organizations:default":         BuildOrganizations,
		},
		domain.PlatformMBOData: {
			"products:multilingual-indices": BuildProducts,
			"products:default":              BuildProducts,
		},
	}

	presets := make(map[domain.Platform]map[string]Configuration, len(layout))
	for platform, builders := range layout {
		presets[platform] = make(map[string]Configuration, len(builders))
		for key, build := range builders {
			cfg, err := build(platform)
			if err != nil {
				return nil, fmt.Errorf("preset %s for %s: %w", key, platform, err)
			}
			presets[platform][key] = cfg
		}
	}
	return &Registry{presets: presets}, nil
}

// NormalizePreset completes a preset key with the default subtype and checks
// that the platform has it.
func (r *Registry) NormalizePreset(platform domain.Platform, preset string) (string, error) {
	byKey, ok := r.presets[platform]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, platform)
	}
	if !strings.Contains(preset, ":") {
		preset += ":" + DefaultSubtype
	}
	if _, ok := byKey[preset]; !ok {
		return "", fmt.Errorf("%w: %s is not available for %s", domain.ErrUnknownPreset, preset, platform)
	}
	return preset, nil
}

// Get returns a single preset configuration.
func (r *Registry) Get(platform domain.Platform, preset string) (Configuration, error) {
	key, err := r.NormalizePreset(platform, preset)
	if err != nil {
		return Configuration{}, err
	}
	return r.presets[platform][key], nil
}

// Build folds presets into one configuration with Merged.
// Without presets the fallback preset is used. A preset that doesn't allow
// multi entity results is returned on its own.
func (r *Registry) Build(platform domain.Platform, presets []string, fallback string) (Configuration, error) {
	if len(presets) == 0 {
		presets = []string{fallback}
	}
	configs := make([]Configuration, 0, len(presets))
	for _, preset := range presets {
		cfg, err := r.Get(platform, preset)
		if err != nil {
			return Configuration{}, err
		}
		if !cfg.AllowMultiEntityResults() {
			return cfg, nil
		}
		configs = append(configs, cfg)
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		merged, err := Merged(result, cfg)
		if err != nil {
			return Configuration{}, fmt.Errorf("build presets %v: %w", presets, err)
		}
		result = merged
	}
	return result, nil
}

// Keys returns every preset key and every bare entity name, sorted.
func (r *Registry) Keys() []string {
	seen := make(map[string]struct{})
	for _, byKey := range r.presets {
		for key := range byKey {
			entity, _, _ := strings.Cut(key, ":")
			seen[entity] = struct{}{}
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
