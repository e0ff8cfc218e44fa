package osvmodels

// Vulnerability is the advisory record authored by the builder and returned by
// the OSV API. Field order matches the JSON the builder emits.
type Vulnerability struct {
	ID         string      `json:"id,omitempty"`
	Summary    string      `json:"summary,omitempty"`
	Details    string      `json:"details,omitempty"`
	Published  string      `json:"published,omitempty"`
	Modified   string      `json:"modified,omitempty"`
	Affected   []Affected  `json:"affected,omitempty"`
	Severity   []Severity  `json:"severity,omitempty"`
	References []Reference `json:"references,omitempty"`
	Credits    []Credit    `json:"credits,omitempty"`
}

type Affected struct {
	Package  *Package `json:"package,omitempty"`
	Ranges   []Range  `json:"ranges,omitempty"`
	Versions []string `json:"versions,omitempty"`
}

type Package struct {
	Ecosystem string `json:"ecosystem,omitempty"`
	Name      string `json:"name,omitempty"`
	Purl      string `json:"purl,omitempty"`
}

type Range struct {
	Type   string  `json:"type"`
	Repo   string  `json:"repo,omitempty"`
	Events []Event `json:"events,omitempty"`
}

type Severity struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

type Reference struct {
	Type string `json:"type"`
	Url  string `json:"url"`
}

type Credit struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}
