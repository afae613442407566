package queryplantdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cladari-assistant/internal/common/logger"
	"cladari-assistant/internal/common/plantdb"
	"cladari-assistant/internal/models"
)

// ==========================
// Fake Inventory
// ==========================

type fakeInventory struct {
	plants      []models.Plant
	predictions []models.CarePrediction
	snapErr     error
	predictErr  error
}

func (f *fakeInventory) Snapshot(_ context.Context) (*models.Snapshot, error) {
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return plantdb.BuildSnapshot(f.plants), nil
}

func (f *fakeInventory) PredictCare(_ context.Context, _ string) ([]models.CarePrediction, error) {
	if f.predictErr != nil {
		return nil, f.predictErr
	}
	return f.predictions, nil
}

func newTestHandler(t *testing.T, inv *fakeInventory) *Handler {
	return NewHandler(DefaultConfig(), inv, logger.NewTestLogger(t))
}

func plantFixture(id, name, location string, price float64) models.Plant {
	p := models.Plant{PlantID: id, Name: name, PurchasePrice: price}
	if location != "" {
		p.CurrentLocation = &models.LocationRef{Name: location}
	}
	return p
}

func collectionOf(n int) []models.Plant {
	plants := make([]models.Plant, n)
	for i := range plants {
		plants[i] = models.Plant{
			PlantID:       fmt.Sprintf("ANT-2025-%04d", i+1),
			Name:          fmt.Sprintf("Plant %d", i+1),
			PurchasePrice: 10,
		}
	}
	return plants
}

// ==========================
// Branch Tests
// ==========================

func TestHandler_Answer_Count(t *testing.T) {
	h := newTestHandler(t, &fakeInventory{plants: collectionOf(42)})

	answer := h.Answer(context.Background(), "How many plants do I have?")

	assert.Equal(t, "You have 42 plants in your collection.", answer)
}

func TestHandler_Answer_Value(t *testing.T) {
	plants := []models.Plant{
		plantFixture("ANT-2025-0001", "A", "Greenhouse", 1000.00),
		plantFixture("ANT-2025-0002", "B", "", 234.50),
	}
	h := newTestHandler(t, &fakeInventory{plants: plants})

	answer := h.Answer(context.Background(), "What's my collection worth?")

	// Thousands separator comes from the locale-aware printer.
	assert.Equal(t, "Your collection is valued at $1,234.50 with 2 plants.", answer)
}

func TestHandler_Answer_Watering(t *testing.T) {
	tests := []struct {
		name        string
		predictions []models.CarePrediction
		predictErr  error
		validate    func(t *testing.T, answer string)
	}{
		{
			name: "plants needing water are listed",
			predictions: []models.CarePrediction{
				{PlantID: "ANT-2025-0001", Name: "Crystallinum", DaysUntilNext: 0},
				{PlantID: "ANT-2025-0002", Name: "Warocqueanum", DaysUntilNext: 1},
				{PlantID: "ANT-2025-0003", Name: "Clarinervium", DaysUntilNext: 7},
			},
			validate: func(t *testing.T, answer string) {
				assert.Contains(t, answer, "2 plants need water today:")
				assert.Contains(t, answer, "ANT-2025-0001: Crystallinum")
				assert.Contains(t, answer, "ANT-2025-0002: Warocqueanum")
				assert.NotContains(t, answer, "ANT-2025-0003")
			},
		},
		{
			name: "overflow beyond the shown limit is summarized",
			predictions: []models.CarePrediction{
				{PlantID: "ANT-2025-0001", DaysUntilNext: 0},
				{PlantID: "ANT-2025-0002", DaysUntilNext: 0},
				{PlantID: "ANT-2025-0003", DaysUntilNext: 0},
				{PlantID: "ANT-2025-0004", DaysUntilNext: 0},
				{PlantID: "ANT-2025-0005", DaysUntilNext: 0},
				{PlantID: "ANT-2025-0006", DaysUntilNext: 0},
				{PlantID: "ANT-2025-0007", DaysUntilNext: 0},
			},
			validate: func(t *testing.T, answer string) {
				assert.Contains(t, answer, "7 plants need water today:")
				assert.Contains(t, answer, "ANT-2025-0005")
				assert.NotContains(t, answer, "ANT-2025-0006")
				assert.Contains(t, answer, "...and 2 more")
			},
		},
		{
			name:        "no plants need water falls back to general guidance",
			predictions: []models.CarePrediction{{PlantID: "ANT-2025-0001", DaysUntilNext: 9}},
			validate: func(t *testing.T, answer string) {
				assert.Contains(t, answer, "General anthurium watering guidance")
			},
		},
		{
			name:       "prediction endpoint down falls back to general guidance",
			predictErr: errors.New("connection refused"),
			validate: func(t *testing.T, answer string) {
				assert.Contains(t, answer, "General anthurium watering guidance")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &fakeInventory{
				plants:      collectionOf(3),
				predictions: tt.predictions,
				predictErr:  tt.predictErr,
			})

			tt.validate(t, h.Answer(context.Background(), "Which plants need water?"))
		})
	}
}

func TestHandler_Answer_Locations(t *testing.T) {
	plants := []models.Plant{
		plantFixture("ANT-2025-0001", "A", "Greenhouse", 10),
		plantFixture("ANT-2025-0002", "B", "Greenhouse", 10),
		plantFixture("ANT-2025-0003", "C", "", 10),
	}
	h := newTestHandler(t, &fakeInventory{plants: plants})

	answer := h.Answer(context.Background(), "Show locations")

	assert.Contains(t, answer, "Plants by location:")
	assert.Contains(t, answer, "Greenhouse: 2 plants")
	assert.Contains(t, answer, "Unknown: 1 plants")
	// Alphabetical bucket order keeps the listing stable across calls.
	assert.Less(t, strings.Index(answer, "Greenhouse"), strings.Index(answer, "Unknown"))
}

func TestHandler_Answer_Recent(t *testing.T) {
	plants := []models.Plant{
		{PlantID: "ANT-2025-0001", Name: "Oldest", CreatedAt: "2025-01-01T00:00:00Z"},
		{PlantID: "ANT-2025-0002", Name: "Middle", CreatedAt: "2025-02-01T00:00:00Z"},
		{PlantID: "ANT-2025-0003", Name: "Newer", CreatedAt: "2025-03-01T00:00:00Z"},
		{PlantID: "ANT-2025-0004", Name: "Newest", CreatedAt: "2025-04-01T00:00:00Z"},
	}
	h := newTestHandler(t, &fakeInventory{plants: plants})

	answer := h.Answer(context.Background(), "Any recent additions?")

	assert.Contains(t, answer, "Recent additions:")
	assert.Contains(t, answer, "ANT-2025-0004: Newest")
	assert.Contains(t, answer, "ANT-2025-0002: Middle")
	// Capped at three entries.
	assert.NotContains(t, answer, "ANT-2025-0001")
}

func TestHandler_Answer_Detail(t *testing.T) {
	plant := models.Plant{
		PlantID:         "ANT-2025-0042",
		Name:            "Crystallinum",
		Genus:           "Anthurium",
		Species:         "crystallinum",
		AcquisitionCost: 1250.00,
		CurrentLocation: &models.LocationRef{Name: "Greenhouse"},
		Vendor:          &models.VendorRef{Name: "NSE Tropicals"},
		HealthStatus:    "healthy",
		Notes:           "Repotted in spring.",
	}
	h := newTestHandler(t, &fakeInventory{plants: []models.Plant{plant}})

	answer := h.Answer(context.Background(), "Tell me about ANT-2025-0042")

	assert.Contains(t, answer, "Plant ANT-2025-0042:")
	assert.Contains(t, answer, "Species: Anthurium crystallinum")
	assert.Contains(t, answer, "Location: Greenhouse")
	assert.Contains(t, answer, "Source: NSE Tropicals")
	assert.Contains(t, answer, "Value: $1,250.00")
	assert.Contains(t, answer, "Health: healthy")
	assert.Contains(t, answer, "Notes: Repotted in spring.")
}

func TestHandler_Answer_Detail_CaseInsensitiveID(t *testing.T) {
	plant := models.Plant{PlantID: "ANT-2025-0042", Name: "Crystallinum"}
	h := newTestHandler(t, &fakeInventory{plants: []models.Plant{plant}})

	answer := h.Answer(context.Background(), "tell me about ant-2025-0042")

	assert.Contains(t, answer, "Plant ANT-2025-0042:")
}

func TestHandler_Answer_Detail_OmitsAbsentFields(t *testing.T) {
	plant := models.Plant{PlantID: "ANT-2025-0042"}
	h := newTestHandler(t, &fakeInventory{plants: []models.Plant{plant}})

	answer := h.Answer(context.Background(), "Tell me about ANT-2025-0042")

	assert.Contains(t, answer, "Plant ANT-2025-0042:")
	assert.NotContains(t, answer, "Species:")
	assert.NotContains(t, answer, "Location:")
	assert.NotContains(t, answer, "Source:")
	assert.NotContains(t, answer, "Value:")
	assert.NotContains(t, answer, "Notes:")
}

func TestHandler_Answer_Detail_NotFound(t *testing.T) {
	h := newTestHandler(t, &fakeInventory{plants: collectionOf(2)})

	answer := h.Answer(context.Background(), "Tell me about XYZ-2025-9999")

	assert.Contains(t, answer, "Could not find plant XYZ-2025-9999.")
	assert.Contains(t, answer, "ANT-2025-0002")
	assert.Contains(t, answer, "ANT-2025-0040")
}

func TestHandler_Answer_Detail_LongNotesTruncated(t *testing.T) {
	plant := models.Plant{
		PlantID: "ANT-2025-0042",
		Notes:   strings.Repeat("x", 150),
	}
	h := newTestHandler(t, &fakeInventory{plants: []models.Plant{plant}})

	answer := h.Answer(context.Background(), "Tell me about ANT-2025-0042")

	assert.Contains(t, answer, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, answer, strings.Repeat("x", 101))
}

func TestHandler_Answer_Help(t *testing.T) {
	plants := []models.Plant{plantFixture("ANT-2025-0001", "A", "", 99.90)}
	h := newTestHandler(t, &fakeInventory{plants: plants})

	answer := h.Answer(context.Background(), "What can you do?")

	assert.Contains(t, answer, "I can answer questions about your collection:")
	assert.Contains(t, answer, "You have 1 plants")
	assert.Contains(t, answer, "Collection value: $99.90")
	assert.Contains(t, answer, "ANT-2025-0042")
}

func TestHandler_Answer_DatabaseUnreachable(t *testing.T) {
	h := newTestHandler(t, &fakeInventory{snapErr: errors.New("connection refused")})

	answer := h.Answer(context.Background(), "How many plants do I have?")

	assert.Equal(t, dbUnavailableText, answer)
}

func TestHandler_Help_DatabaseUnreachable(t *testing.T) {
	h := newTestHandler(t, &fakeInventory{snapErr: errors.New("connection refused")})

	assert.Equal(t, dbUnavailableText, h.Help(context.Background()))
}

func TestHandler_Answer_FreshSnapshotPerCall(t *testing.T) {
	inv := &fakeInventory{plants: collectionOf(3)}
	h := newTestHandler(t, inv)

	assert.Equal(t, "You have 3 plants in your collection.", h.Answer(context.Background(), "how many plants?"))

	inv.plants = collectionOf(4)
	assert.Equal(t, "You have 4 plants in your collection.", h.Answer(context.Background(), "how many plants?"))
}
