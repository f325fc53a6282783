package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix mirrors how lenient spreadsheet tooling reads "12.5 kg" as 12.5.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// AmountResult carries the parsed number and whether it defaulted to zero.
type AmountResult struct {
	Value    float64
	Fallback bool
}

// ParseAmount reads a cell as a number. Thousands separators are stripped, so
// Western (2,566,675.96) and Indian (25,66,675.96) grouping read the same.
// Anything unreadable is 0.
func ParseAmount(v any) AmountResult {
	switch n := v.(type) {
	case nil:
		return AmountResult{Fallback: true}
	case float64:
		return AmountResult{Value: n}
	case float32:
		return AmountResult{Value: float64(n)}
	case int:
		return AmountResult{Value: float64(n)}
	case int64:
		return AmountResult{Value: float64(n)}
	case uint:
		return AmountResult{Value: float64(n)}
	}

	s := strings.TrimSpace(strings.ReplaceAll(fmt.Sprint(v), ",", ""))
	prefix := numericPrefix.FindString(s)
	if prefix == "" {
		return AmountResult{Fallback: true}
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return AmountResult{Fallback: true}
	}
	return AmountResult{Value: f}
}
