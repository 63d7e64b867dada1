package query

import (
	"regexp"
	"strconv"
)

var hoursPattern = regexp.MustCompile(`\((\d+\.?\d*)\s*hours?\)`)

// ServiceHours extracts the hour count from a service-line description such
// as "AI Consultancy (2 hours)". Lines without a parseable hour suffix count
// as exactly one hour; malformed lines never fail.
func ServiceHours(line string) float64 {
	match := hoursPattern.FindStringSubmatch(line)
	if match == nil {
		return 1
	}
	hours, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 1
	}
	return hours
}
