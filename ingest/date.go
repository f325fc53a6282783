package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	isoDate = "2006-01-02"

	// Spreadsheet serial day 25569 is 1970-01-01.
	excelEpochOffset = 25569
	msPerDay         = 86400000
	minSerial        = 30000
	maxSerial        = 60000
)

var (
	dmyPattern = regexp.MustCompile(`^(\d{1,2})[.\-/](\d{1,2})[.\-/](\d{2}|\d{4})$`)
	isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// DateResult carries the parsed value and whether it was produced by a fallback
// (blank input or unrecognized text passed through).
type DateResult struct {
	Value    string
	Fallback bool
}

// ParseDate turns a cell into YYYY-MM-DD. It never fails: blanks give "" and
// unrecognized text is returned trimmed.
func ParseDate(v any) DateResult {
	switch t := v.(type) {
	case nil:
		return DateResult{Fallback: true}
	case time.Time:
		if t.IsZero() {
			return DateResult{Fallback: true}
		}
		return DateResult{Value: t.UTC().Format(isoDate)}
	case *time.Time:
		if t == nil {
			return DateResult{Fallback: true}
		}
		return ParseDate(*t)
	case float64:
		return parseNumericDate(t, strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return ParseDate(float64(t))
	case int:
		return ParseDate(float64(t))
	case int64:
		return ParseDate(float64(t))
	}

	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return DateResult{Fallback: true}
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return DateResult{Value: fmt.Sprintf("%s-%s-%s", year, pad2(m[2]), pad2(m[1]))}
	}

	if isoPattern.MatchString(s) {
		if _, err := time.Parse(isoDate, s); err == nil {
			return DateResult{Value: s}
		}
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return parseNumericDate(n, s)
	}

	return DateResult{Value: s, Fallback: true}
}

// FormatDate is ParseDate without the fallback flag.
func FormatDate(v any) string {
	return ParseDate(v).Value
}

func parseNumericDate(n float64, original string) DateResult {
	if n > minSerial && n < maxSerial {
		ms := int64(math.Round((n - excelEpochOffset) * msPerDay))
		return DateResult{Value: time.UnixMilli(ms).UTC().Format(isoDate)}
	}
	return DateResult{Value: original, Fallback: true}
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
