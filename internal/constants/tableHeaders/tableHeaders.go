package tableHeaders

var TriageTableHeaders = []string{"Column", "Source", "Status", "Content"}

var ExcelTriageTableHeaders = []string{"Vulnerability ID", "Column", "Source", "Status", "Content"}

var ValidationTableHeaders = []string{"#", "Suggestion"}
