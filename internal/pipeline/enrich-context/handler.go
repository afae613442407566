// Package enrichcontext decides what contextual text, if any, accompanies a
// query to a generative responder.
package enrichcontext

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cladari-assistant/internal/common/logger"
	"cladari-assistant/internal/models"
)

// plantTerms is the broad relevance heuristic that gates live inventory
// fetches. It is intentionally wider than the intent keyword sets.
var plantTerms = []string{
	"plant",
	"anthurium",
	"water",
	"fertilize",
	"grow",
	"collection",
	"care",
}

// Inventory is the subset of the plantdb client used for context enrichment.
type Inventory interface {
	ListPlants(ctx context.Context) ([]models.Plant, error)
	GetPlant(ctx context.Context, id string) (*models.Plant, error)
}

type Handler struct {
	inventory Inventory
	logger    logger.Logger
}

func NewHandler(inventory Inventory, log logger.Logger) *Handler {
	return &Handler{
		inventory: inventory,
		logger: log.With(map[string]interface{}{
			"component": "enrich-context",
		}),
	}
}

// Resolve produces the context block for a query. Caller-supplied context
// always wins; otherwise plant-relevant messages get a live inventory
// summary. Fetch failures degrade to empty context and never fail the query.
func (h *Handler) Resolve(ctx context.Context, message string, callerCtx *models.QueryContext) string {
	if !callerCtx.IsEmpty() {
		return renderCallerContext(callerCtx)
	}

	if !isPlantRelated(message) {
		return ""
	}

	plants, err := h.inventory.ListPlants(ctx)
	if err != nil {
		h.logger.Warn("inventory fetch failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Collection: %d plants\n", len(plants))

	if id := models.FindPlantID(message); id != "" {
		plant, err := h.inventory.GetPlant(ctx, id)
		if err != nil {
			h.logger.Warn("plant detail fetch failed, continuing without detail", map[string]interface{}{
				"plantId": id,
				"error":   err.Error(),
			})
		} else {
			name := plant.Name
			if name == "" {
				name = "Unknown"
			}
			fmt.Fprintf(&b, "\n%s: %s", id, name)
			fmt.Fprintf(&b, "\nLocation: %s", plant.LocationName())
		}
	}

	return b.String()
}

func isPlantRelated(message string) bool {
	lower := strings.ToLower(message)
	for _, term := range plantTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// renderCallerContext turns caller-supplied context into a text block. An
// opaque text block is used verbatim; structured attributes become labeled
// lines with empty values omitted.
func renderCallerContext(qc *models.QueryContext) string {
	if qc.Text != "" {
		return qc.Text
	}

	keys := make([]string, 0, len(qc.Attributes))
	for k := range qc.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		v := qc.Attributes[k]
		if v == nil {
			continue
		}
		text := strings.TrimSpace(fmt.Sprintf("%v", v))
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", labelFor(k), text))
	}

	return strings.Join(lines, "\n")
}

func labelFor(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
