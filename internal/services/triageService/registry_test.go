package triageservice_test

import (
	"testing"

	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsFor(profile string) configuration.TriageSettings {
	settings := configuration.Default().TriageSettings
	settings.Profile = profile
	settings.ProxyBaseUrl = "http://localhost:8080/"
	return settings
}

func TestRegistry_Resolve(t *testing.T) {
	const id = "CVE-2021-44228"

	tests := []struct {
		profile string
		key     string
		want    string
	}{
		{triagesources.ProfileSourceProxy, triagesources.CveOrg, "http://localhost:8080/triage/proxy?id=CVE-2021-44228&source=cve"},
		{triagesources.ProfileSourceProxy, triagesources.ProdNvdMetrics, "http://localhost:8080/triage/proxy?id=CVE-2021-44228&source=prod-nvd-metrics"},
		{triagesources.ProfileSourceProxy, triagesources.ApiProd, "https://api.osv.dev/v1/vulns/CVE-2021-44228"},
		{triagesources.ProfileBucketProxy, triagesources.TestOsv, "http://localhost:8080/triage/proxy?bucket=osv-test-cve-osv-conversion&path=osv-output%2FCVE-2021-44228.json"},
		{triagesources.ProfileBucketProxy, triagesources.CveOrg, "https://raw.githubusercontent.com/CVEProject/cvelistV5/main/cves/2021/044xxx/CVE-2021-44228.json"},
		{triagesources.ProfileUrlProxy, triagesources.CveOrg, "http://localhost:8080/triage/proxy?url=https%3A%2F%2Fraw.githubusercontent.com%2FCVEProject%2FcvelistV5%2Fmain%2Fcves%2F2021%2F044xxx%2FCVE-2021-44228.json"},
		{triagesources.ProfileUrlProxy, triagesources.NvdApi, "http://localhost:8080/triage/proxy?url=https%3A%2F%2Fservices.nvd.nist.gov%2Frest%2Fjson%2Fcves%2F2.0%3FcveId%3DCVE-2021-44228"},
		{triagesources.ProfileDirect, triagesources.CveOrg, "https://cveawg.cve.org/api/cve/CVE-2021-44228"},
		{triagesources.ProfileDirect, triagesources.ApiTest, "https://api.test.osv.dev/v1/vulns/CVE-2021-44228"},
	}

	for _, tt := range tests {
		t.Run(tt.profile+"/"+tt.key, func(t *testing.T) {
			registry, err := triageservice.NewRegistry(settingsFor(tt.profile))
			require.NoError(t, err)

			request, err := registry.Resolve(tt.key, id)
			require.NoError(t, err)
			assert.Equal(t, tt.key, request.Key)
			assert.Equal(t, tt.want, request.Url)
		})
	}
}

func TestRegistry_InvalidConfiguration(t *testing.T) {
	settings := settingsFor(triagesources.ProfileDirect)
	settings.Sources = map[string]configuration.SourceConfig{
		"empty": {},
	}
	registry, err := triageservice.NewRegistry(settings)
	require.NoError(t, err)

	for _, key := range []string{"unknown", "empty", triagesources.ProdOsv} {
		_, err := registry.Resolve(key, "CVE-2021-44228")
		assert.ErrorIs(t, err, triageservice.ErrInvalidConfiguration, key)
		assert.EqualError(t, err, "Invalid configuration")
	}
}

func TestRegistry_MissingProxyBase(t *testing.T) {
	tests := []struct {
		profile string
		key     string
	}{
		{triagesources.ProfileSourceProxy, triagesources.CveOrg},
		{triagesources.ProfileBucketProxy, triagesources.ProdOsv},
		{triagesources.ProfileUrlProxy, triagesources.NvdApi},
		{triagesources.ProfileUrlProxy, triagesources.CveOrg},
	}

	for _, proxyBase := range []string{"", "localhost:8080"} {
		for _, tt := range tests {
			t.Run(tt.profile+"/"+tt.key+"/"+proxyBase, func(t *testing.T) {
				settings := settingsFor(tt.profile)
				settings.ProxyBaseUrl = proxyBase
				registry, err := triageservice.NewRegistry(settings)
				require.NoError(t, err)

				_, err = registry.Resolve(tt.key, "CVE-2021-44228")
				assert.ErrorIs(t, err, triageservice.ErrInvalidConfiguration)

				// direct sources do not need the proxy
				request, err := registry.Resolve(triagesources.ApiProd, "CVE-2021-44228")
				require.NoError(t, err)
				assert.Equal(t, "https://api.osv.dev/v1/vulns/CVE-2021-44228", request.Url)
			})
		}
	}
}

func TestRegistry_DerivedPathRejectsNonCveIds(t *testing.T) {
	registry, err := triageservice.NewRegistry(settingsFor(triagesources.ProfileBucketProxy))
	require.NoError(t, err)

	_, err = registry.Resolve(triagesources.CveOrg, "GHSA-jfh8-c2jp-5v3q")
	assert.EqualError(t, err, "invalid CVE ID format: GHSA-jfh8-c2jp-5v3q")
}

func TestRegistry_ConfiguredSources(t *testing.T) {
	settings := settingsFor(triagesources.ProfileSourceProxy)
	settings.Sources = map[string]configuration.SourceConfig{
		"ghsa":                {UrlTemplate: "https://api.github.com/advisories/{id}"},
		"z-bucket":            {Bucket: triagesources.ProdBucket, PathTemplate: "custom/{id}.json"},
		triagesources.ApiProd: {ProxyUrl: "https://api.osv.dev/v1/vulns/{id}"},
	}
	registry, err := triageservice.NewRegistry(settings)
	require.NoError(t, err)

	request, err := registry.Resolve("ghsa", "GHSA-jfh8-c2jp-5v3q")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/advisories/GHSA-jfh8-c2jp-5v3q", request.Url)

	request, err = registry.Resolve(triagesources.ApiProd, "OSV-1")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/triage/proxy?url=https%3A%2F%2Fapi.osv.dev%2Fv1%2Fvulns%2FOSV-1", request.Url)

	keys := registry.Keys()
	assert.Equal(t, triagesources.CveOrg, keys[0])
	assert.Equal(t, []string{"ghsa", "z-bucket"}, keys[len(keys)-2:])
}

func TestNewRegistry_UnknownProfile(t *testing.T) {
	_, err := triageservice.NewRegistry(settingsFor("legacy"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown triage profile "legacy"`)
}

func TestRegistry_DirectProfileHasNoBucketColumns(t *testing.T) {
	registry, err := triageservice.NewRegistry(settingsFor(triagesources.ProfileDirect))
	require.NoError(t, err)

	assert.Equal(t, []string{
		triagesources.CveOrg,
		triagesources.NvdApi,
		triagesources.ApiTest,
		triagesources.ApiProd,
	}, registry.Keys())
}
