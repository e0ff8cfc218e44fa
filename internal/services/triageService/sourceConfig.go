package triageservice

import (
	"net/url"
	"strings"

	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
)

// SourceConfig is one fetch strategy for a column source. The concrete types
// below are the only implementations.
type SourceConfig interface {
	resolve(id string, proxy *url.URL) (string, error)
}

// DirectURL substitutes the id into an external URL and fetches it as is.
type DirectURL struct {
	Template string
}

// ProxiedSource asks the proxy for a named source.
type ProxiedSource struct {
	Source string
}

// ProxiedBucketPath asks the proxy for an object in an allowlisted bucket.
type ProxiedBucketPath struct {
	Bucket       string
	PathTemplate string
}

// ProxiedURL asks the proxy to fetch an allowlisted external URL.
type ProxiedURL struct {
	Template string
}

// DerivedGithubPath computes the cvelistV5 raw content URL from a CVE id,
// optionally through the proxy.
type DerivedGithubPath struct {
	Proxied bool
}

func (s DirectURL) resolve(id string, _ *url.URL) (string, error) {
	return substitute(s.Template, id), nil
}

func (s ProxiedSource) resolve(id string, proxy *url.URL) (string, error) {
	return proxyUrl(proxy, url.Values{"source": {s.Source}, "id": {id}})
}

func (s ProxiedBucketPath) resolve(id string, proxy *url.URL) (string, error) {
	return proxyUrl(proxy, url.Values{
		"bucket": {s.Bucket},
		"path":   {strings.ReplaceAll(s.PathTemplate, triagesources.IdPlaceholder, id)},
	})
}

func (s ProxiedURL) resolve(id string, proxy *url.URL) (string, error) {
	return proxyUrl(proxy, url.Values{"url": {substitute(s.Template, id)}})
}

func (s DerivedGithubPath) resolve(id string, proxy *url.URL) (string, error) {
	target, err := DeriveCvePath(id)
	if err != nil {
		return "", err
	}
	if !s.Proxied {
		return target, nil
	}
	return proxyUrl(proxy, url.Values{"url": {target}})
}

func substitute(template string, id string) string {
	return strings.ReplaceAll(template, triagesources.IdPlaceholder, url.PathEscape(id))
}

// proxyUrl needs an absolute proxy base; without one the source cannot be
// fetched at all.
func proxyUrl(proxy *url.URL, query url.Values) (string, error) {
	if proxy == nil || proxy.Scheme == "" || proxy.Host == "" {
		return "", ErrInvalidConfiguration
	}

	endpoint := proxy.JoinPath("triage", "proxy")
	endpoint.RawQuery = query.Encode()
	return endpoint.String(), nil
}
