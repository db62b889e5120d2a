package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHours converts raw numeric text from the portal into hours. The portal
// renders some cells in minutes and some in hours with nothing in the markup
// to tell them apart, so a heuristic disambiguates: an integer above 10 is
// taken as minutes and divided by 60, anything else is already hours. The
// assumption is that nobody files a whole-number submission of 11+ hours;
// it is an approximation, not a guaranteed-correct parse.
//
// Empty or blank text parses to 0 with no error. Thousands separators are
// stripped before parsing.
func ParseHours(raw string) (float64, error) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if text == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable hours value %q", raw)
	}

	if value > 10 && value == float64(int64(value)) {
		return value / 60.0, nil
	}

	return value, nil
}
