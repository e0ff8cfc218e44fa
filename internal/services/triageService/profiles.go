package triageservice

import (
	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
)

// bucketSources are the conversion outputs shared by every profile that can
// reach the buckets.
func bucketSources() map[string]ProxiedBucketPath {
	return map[string]ProxiedBucketPath{
		triagesources.TestNvd:         {Bucket: triagesources.TestBucket, PathTemplate: triagesources.NvdOsvPathTemplate},
		triagesources.TestCve5:        {Bucket: triagesources.TestBucket, PathTemplate: triagesources.Cve5OsvPathTemplate},
		triagesources.TestOsv:         {Bucket: triagesources.TestBucket, PathTemplate: triagesources.OsvOutputPathTemplate},
		triagesources.TestNvdMetrics:  {Bucket: triagesources.TestBucket, PathTemplate: triagesources.NvdMetricsPathTemplate},
		triagesources.TestCve5Metrics: {Bucket: triagesources.TestBucket, PathTemplate: triagesources.Cve5MetricsPathTemplate},
		triagesources.ProdNvd:         {Bucket: triagesources.ProdBucket, PathTemplate: triagesources.NvdOsvPathTemplate},
		triagesources.ProdCve5:        {Bucket: triagesources.ProdBucket, PathTemplate: triagesources.Cve5OsvPathTemplate},
		triagesources.ProdOsv:         {Bucket: triagesources.ProdBucket, PathTemplate: triagesources.OsvOutputPathTemplate},
		triagesources.ProdNvdMetrics:  {Bucket: triagesources.ProdBucket, PathTemplate: triagesources.NvdMetricsPathTemplate},
		triagesources.ProdCve5Metrics: {Bucket: triagesources.ProdBucket, PathTemplate: triagesources.Cve5MetricsPathTemplate},
	}
}

func apiSources(entries map[string]SourceConfig) {
	entries[triagesources.ApiTest] = DirectURL{Template: triagesources.OsvTestApiTemplate}
	entries[triagesources.ApiProd] = DirectURL{Template: triagesources.OsvProdApiTemplate}
}

// sourceProxyProfile sends every non-API column through the proxy by source
// name and lets the server decide where the data lives.
func sourceProxyProfile() map[string]SourceConfig {
	entries := map[string]SourceConfig{
		triagesources.CveOrg: ProxiedSource{Source: triagesources.ProxyCve},
		triagesources.NvdApi: ProxiedSource{Source: triagesources.ProxyNvd},
	}
	for key := range bucketSources() {
		entries[key] = ProxiedSource{Source: key}
	}
	apiSources(entries)
	return entries
}

// bucketProxyProfile reads bucket objects through the proxy and the CVE list
// straight from GitHub.
func bucketProxyProfile() map[string]SourceConfig {
	entries := map[string]SourceConfig{
		triagesources.CveOrg: DerivedGithubPath{},
	}
	for key, source := range bucketSources() {
		entries[key] = source
	}
	apiSources(entries)
	return entries
}

// urlProxyProfile proxies every external URL as well as bucket objects.
func urlProxyProfile() map[string]SourceConfig {
	entries := map[string]SourceConfig{
		triagesources.CveOrg: DerivedGithubPath{Proxied: true},
		triagesources.NvdApi: ProxiedURL{Template: triagesources.NvdApiTemplate},
	}
	for key, source := range bucketSources() {
		entries[key] = source
	}
	apiSources(entries)
	return entries
}

// directProfile never touches the proxy, so bucket columns are unavailable.
func directProfile() map[string]SourceConfig {
	entries := map[string]SourceConfig{
		triagesources.CveOrg: DirectURL{Template: triagesources.CveAwgTemplate},
		triagesources.NvdApi: DirectURL{Template: triagesources.NvdApiTemplate},
	}
	apiSources(entries)
	return entries
}

var profiles = map[string]func() map[string]SourceConfig{
	triagesources.ProfileSourceProxy: sourceProxyProfile,
	triagesources.ProfileBucketProxy: bucketProxyProfile,
	triagesources.ProfileUrlProxy:    urlProxyProfile,
	triagesources.ProfileDirect:      directProfile,
}

// fromConfiguration turns a declared source into its strategy. A declaration
// that names no strategy resolves to nil and fails at fetch time.
func fromConfiguration(source configuration.SourceConfig) SourceConfig {
	switch {
	case source.UrlTemplate != "":
		return DirectURL{Template: source.UrlTemplate}
	case source.ProxySource != "":
		return ProxiedSource{Source: source.ProxySource}
	case source.Bucket != "" && source.PathTemplate != "":
		return ProxiedBucketPath{Bucket: source.Bucket, PathTemplate: source.PathTemplate}
	case source.ProxyUrl != "":
		return ProxiedURL{Template: source.ProxyUrl}
	default:
		return nil
	}
}
