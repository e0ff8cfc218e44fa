package triageservice

import (
	"errors"
	"net/url"
	"slices"

	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	"github.com/samber/lo"
	"golang.org/x/xerrors"
)

var ErrInvalidConfiguration = errors.New("Invalid configuration")

// Request is the normalized outcome of resolving a column source.
type Request struct {
	Key string
	Url string
}

type RegistryService interface {
	Resolve(key string, id string) (Request, error)
	Keys() []string
}

// Registry maps column source keys onto fetch strategies.
type Registry struct {
	profile string
	entries map[string]SourceConfig
	proxy   *url.URL
}

// NewRegistry builds the registry for a profile. Sources declared in the
// settings are added on top and replace built-in keys of the same name.
func NewRegistry(settings configuration.TriageSettings) (*Registry, error) {
	profile := settings.Profile
	if profile == "" {
		profile = triagesources.ProfileSourceProxy
	}

	build, ok := profiles[profile]
	if !ok {
		return nil, xerrors.Errorf("unknown triage profile %q, expected one of %v", profile, triagesources.Profiles)
	}

	proxy, err := url.Parse(settings.ProxyBaseUrl)
	if err != nil {
		return nil, xerrors.Errorf("error parsing proxy base url, %w", err)
	}

	entries := build()
	for key, source := range settings.Sources {
		entries[key] = fromConfiguration(source)
	}

	return &Registry{
		profile: profile,
		entries: entries,
		proxy:   proxy,
	}, nil
}

func (r *Registry) Profile() string {
	return r.profile
}

// Resolve is the single dispatch from a source key to a request.
func (r *Registry) Resolve(key string, id string) (Request, error) {
	source, ok := r.entries[key]
	if !ok || source == nil {
		return Request{}, ErrInvalidConfiguration
	}

	target, err := source.resolve(id, r.proxy)
	if err != nil {
		return Request{}, err
	}

	return Request{Key: key, Url: target}, nil
}

// Keys lists the known sources, built-in ones first in display order.
func (r *Registry) Keys() []string {
	keys := lo.Filter(triagesources.Keys, func(key string, _ int) bool {
		_, ok := r.entries[key]
		return ok
	})

	extra := lo.Filter(lo.Keys(r.entries), func(key string, _ int) bool {
		return !slices.Contains(triagesources.Keys, key)
	})
	slices.Sort(extra)

	return append(keys, extra...)
}
