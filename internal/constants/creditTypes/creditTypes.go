package credittypes

const (
	Finder               = "FINDER"
	Reporter             = "REPORTER"
	Analyst              = "ANALYST"
	Coordinator          = "COORDINATOR"
	RemediationDeveloper = "REMEDIATION_DEVELOPER"
	RemediationReviewer  = "REMEDIATION_REVIEWER"
	RemediationVerifier  = "REMEDIATION_VERIFIER"
	Tool                 = "TOOL"
	Sponsor              = "SPONSOR"
	Other                = "OTHER"
)

var CreditTypes = []string{
	Finder,
	Reporter,
	Analyst,
	Coordinator,
	RemediationDeveloper,
	RemediationReviewer,
	RemediationVerifier,
	Tool,
	Sponsor,
	Other,
}
