package severitytypes

const (
	CvssV2 = "CVSS_V2"
	CvssV3 = "CVSS_V3"
	CvssV4 = "CVSS_V4"
	Ubuntu = "Ubuntu"
)

var SeverityTypes = []string{CvssV3, CvssV4, CvssV2, Ubuntu}
