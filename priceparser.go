package main

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Acceptance window while parsing a token.
	parseMinPrice = 100
	parseMaxPrice = 100_000_000
)

// PriceParser turns free-text tokens into Rupiah amounts. Supplier sheets mix
// the Indonesian convention (1.500.000,50) with the Western one
// (1,500,000.50), so parsing inspects separator structure instead of a
// locale setting.
type PriceParser struct {
	currencyPatterns []*regexp.Regexp
	numberPatterns   []*regexp.Regexp
}

// NewPriceParser compiles the pattern chain. Patterns are tried in order and
// the first one whose parsed value lands in the acceptance window wins.
func NewPriceParser() *PriceParser {
	return &PriceParser{
		currencyPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)rupiah`),
			regexp.MustCompile(`(?i)idr`),
			regexp.MustCompile(`(?i)rp\.?`),
		},
		numberPatterns: []*regexp.Regexp{
			// Indonesian grouping: 1.500.000,50
			regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})*(?:,\d{1,2})?\b`),
			// Western grouping: 1,500,000.50
			regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?\b`),
			// Plain digits: 1500000
			regexp.MustCompile(`\b\d{4,}\b`),
			// Grouped with either separator: 120.000
			regexp.MustCompile(`\b\d{1,3}(?:[,.]\d{3})+\b`),
			// Bare decimal
			regexp.MustCompile(`\d+[,.]\d+`),
			regexp.MustCompile(`\d{3,}`),
		},
	}
}

// Parse extracts a price from text. The second return value is false when no
// plausible price is present.
func (p *PriceParser) Parse(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	clean := text
	for _, cp := range p.currencyPatterns {
		clean = cp.ReplaceAllString(clean, "")
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return 0, false
	}

	for _, np := range p.numberPatterns {
		match := np.FindString(clean)
		if match == "" {
			continue
		}
		value, ok := parseSeparatedNumber(match)
		if ok && value >= parseMinPrice && value <= parseMaxPrice {
			return value, true
		}
	}

	return 0, false
}

// parseSeparatedNumber resolves thousands/decimal separator ambiguity. A
// single trailing separator followed by at most two digits is a decimal
// point; everything else is grouping.
func parseSeparatedNumber(s string) (float64, bool) {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}

	hasDot := strings.Contains(digits, ".")
	hasComma := strings.Contains(digits, ",")

	switch {
	case !hasDot && !hasComma:
		return parseFloat(digits)

	case hasDot && !hasComma:
		parts := strings.Split(digits, ".")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			return parseFloat(digits)
		}
		return parseFloat(strings.ReplaceAll(digits, ".", ""))

	case hasComma && !hasDot:
		parts := strings.Split(digits, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			return parseFloat(strings.Replace(digits, ",", ".", 1))
		}
		return parseFloat(strings.ReplaceAll(digits, ",", ""))

	default:
		// Both present: the separator occurring last is the decimal point,
		// provided at most two digits follow it.
		lastDot := strings.LastIndex(digits, ".")
		lastComma := strings.LastIndex(digits, ",")
		last := lastDot
		if lastComma > lastDot {
			last = lastComma
		}

		stripped := strings.NewReplacer(".", "", ",", "").Replace(digits)
		tail := digits[last+1:]
		if len(tail) <= 2 {
			head := strings.NewReplacer(".", "", ",", "").Replace(digits[:last])
			return parseFloat(head + "." + tail)
		}
		return parseFloat(stripped)
	}
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
