package models

import (
	"regexp"
	"strings"
)

// PlantIDPattern matches public plant identifiers: a 3-letter prefix, a
// 4-digit year and a 4-digit sequence, e.g. ANT-2025-0042.
var PlantIDPattern = regexp.MustCompile(`(?i)\b[A-Z]{3}-\d{4}-\d{4}\b`)

// FindPlantID extracts the first plant identifier from a message, upper-cased,
// or "" if the message carries none.
func FindPlantID(message string) string {
	match := PlantIDPattern.FindString(message)
	if match == "" {
		return ""
	}
	return strings.ToUpper(match)
}
