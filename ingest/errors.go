package ingest

// Messages returned to the uploader. The dashboard shows them verbatim.
const (
	MsgInvalidFile      = "Invalid file. Only .xlsx format is accepted."
	MsgUnreadable       = "Failed to read Excel file."
	MsgEmptySheet       = "Excel file is empty."
	MsgMissingColumns   = "Excel is missing required columns."
	MsgTemplateMismatch = "Excel headers do not match the expected template."
	MsgNoValidRows      = "No valid data rows found in Excel."
)

// Details lists the offending columns of a rejected header row.
type Details struct {
	Missing    []string `json:"missing"`
	Unmapped   []string `json:"unmapped,omitempty"`
	Unexpected []string `json:"unexpected,omitempty"`
}

// ValidationError rejects an upload before anything is written.
type ValidationError struct {
	Message string
	Details *Details
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
