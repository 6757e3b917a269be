// Package scan finds usages of named result objects in the data
// providers of Web Intelligence reports.
package scan

// MatchRecord is one found occurrence: a requested object name appearing
// as a result object of one data provider of one report. A requested
// name matching several result objects yields several records; exact
// duplicates are kept.
type MatchRecord struct {
	ReportPath   string `json:"reportPath"`
	ReportName   string `json:"reportName"`
	DataProvider string `json:"dataProvider"`
	ObjectName   string `json:"objectName"`
}

// ReportFailure records a report that could not be inspected during a
// folder walk running with ContinueOnError.
type ReportFailure struct {
	ReportID   string `json:"reportId"`
	ReportName string `json:"reportName"`
	Err        error  `json:"-"`
	Message    string `json:"error"`
}
