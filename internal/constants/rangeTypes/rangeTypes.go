package rangetypes

const (
	Semver    = "SEMVER"
	Ecosystem = "ECOSYSTEM"
	Git       = "GIT"
)

var RangeTypes = []string{Semver, Ecosystem, Git}
