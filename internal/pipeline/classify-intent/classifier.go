// Package classifyintent maps a raw user message to the coarse category the
// router dispatches on.
package classifyintent

import (
	"strings"

	"cladari-assistant/internal/models"
)

// Intent is the coarse query category.
type Intent string

const (
	IntentDatabase Intent = "database"
	IntentScience  Intent = "science"
	IntentGeneral  Intent = "general"
)

// Keyword sets are checked in fixed priority order: database first, then
// science, then general. First match wins; there is no scoring. The database
// set comes first because quantitative inventory questions must never reach a
// generative model.

// databaseTerms flag quantitative/inventory questions: counting, listing,
// valuation, watering status and possessive collection references.
var databaseTerms = []string{
	"how many",
	"count",
	"list",
	"value",
	"worth",
	"total",
	"need water",
	"needs water",
	"my collection",
}

// scienceTerms flag botanical-science questions: pathology, nutrition, genetics.
var scienceTerms = []string{
	"disease",
	"pathogen",
	"nutrient",
	"deficiency",
	"genetics",
}

// Classify returns exactly one intent for the message. It never errors.
// A message carrying a plant identifier is an inventory lookup regardless of
// its other wording, so it classifies as database.
func Classify(message string) Intent {
	if models.FindPlantID(message) != "" {
		return IntentDatabase
	}

	lower := strings.ToLower(message)

	if containsAny(lower, databaseTerms) {
		return IntentDatabase
	}
	if containsAny(lower, scienceTerms) {
		return IntentScience
	}
	return IntentGeneral
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
