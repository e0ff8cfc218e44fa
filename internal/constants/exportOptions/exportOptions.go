package exportOptions

const (
	Yes = "Yes"
	No  = "No"
)

var ExcelOptions = []string{Yes, No}

const (
	SaveFile = "Save JSON file"
	Copy     = "Copy JSON to clipboard"
	Preview  = "Preview"
	Done     = "Done"
)

var RecordOptions = []string{SaveFile, Copy, Preview, Done}
