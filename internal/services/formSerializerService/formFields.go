package formserializerservice

// FormSnapshot is a read of the builder form at one point in time. Every
// value is the raw string the user typed or selected; empty means unset.
type FormSnapshot struct {
	ID         string
	Summary    string
	Details    string
	Published  string
	Modified   string
	Packages   []PackageFields
	Severities []SeverityFields
	References []ReferenceFields
	Credits    []CreditFields
}

type PackageFields struct {
	Ecosystem string
	Name      string
	Purl      string
	Ranges    []RangeFields
}

type RangeFields struct {
	Type   string
	Repo   string
	Events []EventFields
}

type EventFields struct {
	Type  string
	Value string
}

type SeverityFields struct {
	Type  string
	Score string
}

type ReferenceFields struct {
	Type string
	Url  string
}

type CreditFields struct {
	Name string
	Type string
}
