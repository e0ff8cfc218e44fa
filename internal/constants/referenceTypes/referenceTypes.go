package referencetypes

const (
	Advisory   = "ADVISORY"
	Article    = "ARTICLE"
	Detection  = "DETECTION"
	Discussion = "DISCUSSION"
	Report     = "REPORT"
	Fix        = "FIX"
	Introduced = "INTRODUCED"
	Package    = "PACKAGE"
	Evidence   = "EVIDENCE"
	Web        = "WEB"
)

var ReferenceTypes = []string{Web, Advisory, Article, Detection, Discussion, Report, Fix, Introduced, Package, Evidence}
