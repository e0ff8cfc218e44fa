package configuration

import (
	"os"
	"time"

	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const FilePath = "configuration/configuration.yaml"

type Config struct {
	OsvClientSettings     OsvClientSettings     `yaml:"osv_client_settings"`
	PreviewClientSettings PreviewClientSettings `yaml:"preview_client_settings"`
	TriageSettings        TriageSettings        `yaml:"triage_settings"`
	ServerSettings        ServerSettings        `yaml:"server_settings"`
	ExportSettings        ExportSettings        `yaml:"export_settings"`
	Logging               LoggingSettings       `yaml:"logging"`
}

type OsvClientSettings struct {
	BaseUrl string `yaml:"base_url"`
}

type PreviewClientSettings struct {
	BaseUrl string `yaml:"base_url"`
}

type TriageSettings struct {
	Profile              string                  `yaml:"profile"`
	ProxyBaseUrl         string                  `yaml:"proxy_base_url"`
	Columns              []string                `yaml:"columns"`
	TimeoutSeconds       int                     `yaml:"timeout_seconds"`
	MaxConcurrentColumns int                     `yaml:"max_concurrent_columns"`
	Sources              map[string]SourceConfig `yaml:"sources"`
}

// SourceConfig declares an extra triage source. Exactly one of the fields
// selects the fetch strategy.
type SourceConfig struct {
	UrlTemplate  string `yaml:"url_template"`
	ProxySource  string `yaml:"proxy_source"`
	Bucket       string `yaml:"bucket"`
	PathTemplate string `yaml:"path_template"`
	ProxyUrl     string `yaml:"proxy_url"`
}

type ServerSettings struct {
	Address            string                 `yaml:"address"`
	AllowedBuckets     []string               `yaml:"allowed_buckets"`
	AllowedUrlPrefixes []string               `yaml:"allowed_url_prefixes"`
	CacheTTLSeconds    int                    `yaml:"cache_ttl_seconds"`
	ProxySources       map[string]ProxySource `yaml:"proxy_sources"`
}

// ProxySource maps a proxy source name onto a bucket object or an external
// URL. Templates use {id} as the placeholder.
type ProxySource struct {
	Bucket       string `yaml:"bucket"`
	PathTemplate string `yaml:"path_template"`
	UrlTemplate  string `yaml:"url_template"`
}

type ExportSettings struct {
	Directory string `yaml:"directory"`
}

type LoggingSettings struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		OsvClientSettings: OsvClientSettings{
			BaseUrl: "https://api.osv.dev/",
		},
		PreviewClientSettings: PreviewClientSettings{
			BaseUrl: "http://localhost:8080/",
		},
		TriageSettings: TriageSettings{
			Profile:        triagesources.ProfileSourceProxy,
			ProxyBaseUrl:   "http://localhost:8080/",
			Columns:        []string{triagesources.CveOrg, triagesources.ProdOsv, triagesources.ApiProd},
			TimeoutSeconds: 30,
		},
		ServerSettings: ServerSettings{
			Address:         ":8080",
			AllowedBuckets:  []string{triagesources.ProdBucket, triagesources.TestBucket},
			CacheTTLSeconds: 60,
			AllowedUrlPrefixes: []string{
				"https://cveawg.cve.org/api/cve/",
				"https://services.nvd.nist.gov/rest/json/cves/2.0",
				"https://raw.githubusercontent.com/CVEProject/cvelistV5/",
			},
		},
		ExportSettings: ExportSettings{
			Directory: "./export",
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// Load reads the configuration file at path on top of the defaults. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("configuration error: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, xerrors.Errorf("error unmarshalling configuration: %w", err)
	}

	return config, nil
}

func (t TriageSettings) Timeout() time.Duration {
	if t.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(t.TimeoutSeconds) * time.Second
}

func (s ServerSettings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}
