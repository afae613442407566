// Package queryplantdb answers quantitative inventory questions directly from
// a freshly fetched snapshot, with no generative model involved.
package queryplantdb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cladari-assistant/internal/common/logger"
	"cladari-assistant/internal/models"
)

const (
	notesMaxLen = 100

	dbUnavailableText = "The plant database is not accessible right now. Please make sure the inventory service is running."

	generalCareText = `I don't have real-time watering prediction data right now.

General anthurium watering guidance:
  • Water when the top 1-2" of soil feels dry
  • Most anthuriums need water every 7-10 days
  • Adjust for humidity, temperature and pot size`
)

// Inventory is the subset of the plantdb client this responder needs.
type Inventory interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	PredictCare(ctx context.Context, careType string) ([]models.CarePrediction, error)
}

type Handler struct {
	config    *Config
	inventory Inventory
	logger    logger.Logger
	printer   *message.Printer
}

func NewHandler(config *Config, inventory Inventory, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		inventory: inventory,
		logger: log.With(map[string]interface{}{
			"component": "query-plantdb",
		}),
		printer: message.NewPrinter(language.English),
	}
}

// Answer resolves a database-intent message against a per-call snapshot.
// Branches are checked in fixed priority order; it always returns text.
func (h *Handler) Answer(ctx context.Context, msg string) string {
	snap, err := h.inventory.Snapshot(ctx)
	if err != nil {
		h.logger.Error("snapshot fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return dbUnavailableText
	}

	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "how many") && strings.Contains(lower, "plant"):
		return fmt.Sprintf("You have %d plants in your collection.", snap.Count)

	case strings.Contains(lower, "value") || strings.Contains(lower, "worth"):
		return h.printer.Sprintf("Your collection is valued at $%.2f with %d plants.", snap.TotalValue, snap.Count)

	case strings.Contains(lower, "water") || strings.Contains(lower, "care"):
		return h.wateringResponse(ctx)

	case strings.Contains(lower, "location"):
		return locationResponse(snap)

	case strings.Contains(lower, "recent") || strings.Contains(lower, "new"):
		return h.recentResponse(snap)

	case models.FindPlantID(msg) != "":
		return h.detailResponse(snap, models.FindPlantID(msg))

	default:
		return h.helpResponse(snap)
	}
}

// Help returns the default help response. The router uses it as the fallback
// target for general-intent queries when the generative responder is down.
func (h *Handler) Help(ctx context.Context) string {
	snap, err := h.inventory.Snapshot(ctx)
	if err != nil {
		h.logger.Error("snapshot fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return dbUnavailableText
	}
	return h.helpResponse(snap)
}

func (h *Handler) wateringResponse(ctx context.Context) string {
	predictions, err := h.inventory.PredictCare(ctx, "water")
	if err != nil {
		h.logger.Warn("care prediction unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return generalCareText
	}

	var needsWater []models.CarePrediction
	for _, p := range predictions {
		if p.DaysUntilNext <= h.config.WaterDaysThreshold {
			needsWater = append(needsWater, p)
		}
	}

	if len(needsWater) == 0 {
		return generalCareText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d plants need water today:\n", len(needsWater))
	shown := needsWater
	if len(shown) > h.config.WaterShownLimit {
		shown = shown[:h.config.WaterShownLimit]
	}
	for _, p := range shown {
		fmt.Fprintf(&b, "  • %s: %s\n", p.PlantID, nameOrUnknown(p.Name))
	}
	if rest := len(needsWater) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "  ...and %d more\n", rest)
	}
	return b.String()
}

func locationResponse(snap *models.Snapshot) string {
	locations := make([]string, 0, len(snap.Locations))
	for loc := range snap.Locations {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	var b strings.Builder
	b.WriteString("Plants by location:\n")
	for _, loc := range locations {
		fmt.Fprintf(&b, "  • %s: %d plants\n", loc, snap.Locations[loc])
	}
	return b.String()
}

func (h *Handler) recentResponse(snap *models.Snapshot) string {
	if len(snap.Recent) == 0 {
		return "No recent additions found."
	}

	recent := snap.Recent
	if len(recent) > h.config.RecentShownLimit {
		recent = recent[:h.config.RecentShownLimit]
	}

	var b strings.Builder
	b.WriteString("Recent additions:\n")
	for _, p := range recent {
		fmt.Fprintf(&b, "  • %s: %s\n", p.PlantID, nameOrUnknown(p.Name))
	}
	return b.String()
}

func (h *Handler) detailResponse(snap *models.Snapshot, id string) string {
	var found *models.Plant
	for i := range snap.Plants {
		if strings.EqualFold(snap.Plants[i].PlantID, id) {
			found = &snap.Plants[i]
			break
		}
	}

	if found == nil {
		return fmt.Sprintf("Could not find plant %s. Try asking about a specific plant like ANT-2025-0002 or ANT-2025-0040.", id)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plant %s:\n", id)
	if species := strings.TrimSpace(found.Genus + " " + found.Species); species != "" {
		fmt.Fprintf(&b, "  • Species: %s\n", species)
	}
	if found.HybridName != "" {
		fmt.Fprintf(&b, "  • Hybrid: %s\n", found.HybridName)
	}
	if found.CurrentLocation != nil {
		fmt.Fprintf(&b, "  • Location: %s\n", found.LocationName())
	}
	if found.Vendor != nil && found.Vendor.Name != "" {
		fmt.Fprintf(&b, "  • Source: %s\n", found.Vendor.Name)
	}
	if found.AcquisitionCost > 0 {
		b.WriteString(h.printer.Sprintf("  • Value: $%.2f\n", found.AcquisitionCost))
	}
	if found.HealthStatus != "" {
		fmt.Fprintf(&b, "  • Health: %s\n", found.HealthStatus)
	}
	if found.Notes != "" {
		fmt.Fprintf(&b, "  • Notes: %s\n", truncateNotes(found.Notes))
	}
	return b.String()
}

func (h *Handler) helpResponse(snap *models.Snapshot) string {
	var b strings.Builder
	b.WriteString("I can answer questions about your collection:\n")
	fmt.Fprintf(&b, "  • You have %d plants\n", snap.Count)
	b.WriteString(h.printer.Sprintf("  • Collection value: $%.2f\n", snap.TotalValue))
	b.WriteString("  • Try: \"How many plants?\", \"What's the value?\", \"Which need water?\", \"Show locations\"\n")
	b.WriteString("  • Or ask about a specific plant like ANT-2025-0042")
	return b.String()
}

func truncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= notesMaxLen {
		return notes
	}
	return string(runes[:notesMaxLen]) + "..."
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
