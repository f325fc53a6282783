package ingest

import (
	"regexp"
	"strings"
)

// Canonical field keys.
const (
	KeyPlant          = "plant"
	KeyLocation       = "location"
	KeyPgiNo          = "pgi_no"
	KeyPgiDate        = "pgi_date"
	KeyInvoiceNo      = "invoice_no"
	KeyInvoiceDate    = "invoice_date"
	KeyNcCc           = "nc_cc"
	KeyMode           = "mode"
	KeyCaseCount      = "case_count"
	KeyWeight         = "weight"
	KeyVolume         = "volume"
	KeyAmount         = "amount"
	KeyPreferredMode  = "preferred_mode"
	KeyPreferredEdd   = "preferred_edd"
	KeyDispatchRemark = "dispatch_remark"
	KeyEodData        = "eod_data"
	KeyRemark         = "remark"
)

// headerAliases maps normalized header text to a canonical key.
var headerAliases = map[string]string{
	"plant":           KeyPlant,
	"location":        KeyLocation,
	"pgi no.":         KeyPgiNo,
	"pgi no":          KeyPgiNo,
	"pgi date":        KeyPgiDate,
	"pgi dt":          KeyPgiDate,
	"pgi dt.":         KeyPgiDate,
	"invoice no.":     KeyInvoiceNo,
	"invoice no":      KeyInvoiceNo,
	"inv no.":         KeyInvoiceNo,
	"inv no":          KeyInvoiceNo,
	"invoice date":    KeyInvoiceDate,
	"inv dt.":         KeyInvoiceDate,
	"inv dt":          KeyInvoiceDate,
	"inv date":        KeyInvoiceDate,
	"nc/cc":           KeyNcCc,
	"nc cc":           KeyNcCc,
	"nc_cc":           KeyNcCc,
	"mode":            KeyMode,
	"no. of case":     KeyCaseCount,
	"no of case":      KeyCaseCount,
	"case":            KeyCaseCount,
	"cases":           KeyCaseCount,
	"weight":          KeyWeight,
	"volume":          KeyVolume,
	"amount":          KeyAmount,
	"preferred mode":  KeyPreferredMode,
	"pref mode":       KeyPreferredMode,
	"preferred edd":   KeyPreferredEdd,
	"pref edd":        KeyPreferredEdd,
	"dispatch remark": KeyDispatchRemark,
	"dispatch":        KeyDispatchRemark,
	"eod data":        KeyEodData,
	"eod":             KeyEodData,
	"remark":          KeyRemark,
	"remarks":         KeyRemark,
}

// RequiredKeys must all be mapped for an upload to be accepted.
var RequiredKeys = []string{
	KeyPlant, KeyLocation, KeyPgiNo, KeyPgiDate,
	KeyInvoiceNo, KeyMode, KeyCaseCount,
	KeyWeight, KeyVolume, KeyAmount,
}

// TemplateHeaders is the literal header row used in strict mode and by the
// exporter. Every entry resolves through headerAliases.
var TemplateHeaders = []string{
	"Plant", "Location", "PGI No.", "PGI Date", "Invoice No.", "Invoice Date",
	"NC/CC", "Mode", "No. of Case", "Weight", "Volume", "Amount",
	"Preferred Mode", "Preferred EDD", "Dispatch Remark", "EOD Data", "Remarks",
}

var spaceRun = regexp.MustCompile(`\s+`)

func NormalizeHeader(h string) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), " ")
}

// CanonicalKey resolves a raw header to its canonical key.
func CanonicalKey(h string) (string, bool) {
	key, ok := headerAliases[NormalizeHeader(h)]
	return key, ok
}

// HeaderMap is the result of resolving one header row.
type HeaderMap struct {
	// Columns maps a column index to its canonical key.
	Columns  map[int]string
	Unmapped []string
	keys     map[string]bool
}

func (m HeaderMap) Has(key string) bool {
	return m.keys[key]
}

// Missing returns the required keys that no column maps to, in required order.
func (m HeaderMap) Missing(required []string) []string {
	missing := []string{}
	for _, k := range required {
		if !m.keys[k] {
			missing = append(missing, k)
		}
	}
	return missing
}

// MapHeaders resolves every header cell. Blank cells are ignored; the first
// column mapped to a key wins and later duplicates count as unmapped.
func MapHeaders(headers []string) HeaderMap {
	m := HeaderMap{
		Columns:  make(map[int]string),
		Unmapped: []string{},
		keys:     make(map[string]bool),
	}
	for i, raw := range headers {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		key, ok := CanonicalKey(raw)
		if !ok || m.keys[key] {
			m.Unmapped = append(m.Unmapped, raw)
			continue
		}
		m.Columns[i] = key
		m.keys[key] = true
	}
	return m
}

// ValidateHeaders maps the header row and fails with a ValidationError when
// a required key is absent.
func ValidateHeaders(headers []string) (HeaderMap, error) {
	m := MapHeaders(headers)
	if missing := m.Missing(RequiredKeys); len(missing) > 0 {
		details := &Details{Missing: missing}
		if len(m.Unmapped) > 0 {
			details.Unmapped = m.Unmapped
		}
		return m, &ValidationError{Message: MsgMissingColumns, Details: details}
	}
	return m, nil
}

// ValidateTemplate requires the header row to match TemplateHeaders
// literally (ignoring surrounding spaces and trailing blank cells).
func ValidateTemplate(headers []string) (HeaderMap, error) {
	present := make(map[string]bool)
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			present[h] = true
		}
	}
	expected := make(map[string]bool, len(TemplateHeaders))
	missing := []string{}
	for _, h := range TemplateHeaders {
		expected[h] = true
		if !present[h] {
			missing = append(missing, h)
		}
	}
	unexpected := []string{}
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" && !expected[h] {
			unexpected = append(unexpected, h)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return HeaderMap{}, &ValidationError{
			Message: MsgTemplateMismatch,
			Details: &Details{Missing: missing, Unexpected: unexpected},
		}
	}
	return MapHeaders(headers), nil
}
