package triagesources

// Column source keys offered by the triage view.
const (
	CveOrg          = "cve-org"
	NvdApi          = "nvd-api"
	TestNvd         = "test-nvd"
	TestCve5        = "test-cve5"
	TestOsv         = "test-osv"
	TestNvdMetrics  = "test-nvd-metrics"
	TestCve5Metrics = "test-cve5-metrics"
	ProdNvd         = "prod-nvd"
	ProdCve5        = "prod-cve5"
	ProdOsv         = "prod-osv"
	ProdNvdMetrics  = "prod-nvd-metrics"
	ProdCve5Metrics = "prod-cve5-metrics"
	ApiTest         = "api-test"
	ApiProd         = "api-prod"
)

// Registry profiles. Each one is a configuration of the same registry that
// the triage page has shipped with at some point.
const (
	ProfileSourceProxy = "source-proxy"
	ProfileBucketProxy = "bucket-proxy"
	ProfileUrlProxy    = "url-proxy"
	ProfileDirect      = "direct"
)

var Profiles = []string{ProfileSourceProxy, ProfileBucketProxy, ProfileUrlProxy, ProfileDirect}

// Buckets holding converted records.
const (
	TestBucket = "osv-test-cve-osv-conversion"
	ProdBucket = "cve-osv-conversion"
)

const (
	OsvTestApiTemplate = "https://api.test.osv.dev/v1/vulns/{id}"
	OsvProdApiTemplate = "https://api.osv.dev/v1/vulns/{id}"
	CveAwgTemplate     = "https://cveawg.cve.org/api/cve/{id}"
	NvdApiTemplate     = "https://services.nvd.nist.gov/rest/json/cves/2.0?cveId={id}"
	CveListBaseUrl     = "https://raw.githubusercontent.com/CVEProject/cvelistV5/main/cves"
	IdPlaceholder      = "{id}"
)

// Proxy source names understood by /triage/proxy?source=.
const (
	ProxyCve = "cve"
	ProxyNvd = "nvd"
)

// Object paths inside the conversion buckets.
const (
	NvdOsvPathTemplate      = "nvd-osv/{id}.json"
	NvdMetricsPathTemplate  = "nvd-osv/{id}.metrics.json"
	Cve5OsvPathTemplate     = "cve5/{id}.json"
	Cve5MetricsPathTemplate = "cve5/{id}.metrics.json"
	OsvOutputPathTemplate   = "osv-output/{id}.json"
)

// Keys lists every built-in column source in display order.
var Keys = []string{
	CveOrg, NvdApi,
	TestNvd, TestCve5, TestOsv, TestNvdMetrics, TestCve5Metrics,
	ProdNvd, ProdCve5, ProdOsv, ProdNvdMetrics, ProdCve5Metrics,
	ApiTest, ApiProd,
}
