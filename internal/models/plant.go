package models

// Plant is a single inventory record as returned by the collection-management
// service. Optional relations come back as nested objects or null.
type Plant struct {
	PlantID         string       `json:"plantId"`
	Name            string       `json:"name"`
	Genus           string       `json:"genus"`
	Species         string       `json:"species"`
	HybridName      string       `json:"hybridName"`
	PurchasePrice   float64      `json:"purchasePrice"`
	AcquisitionCost float64      `json:"acquisitionCost"`
	CurrentLocation *LocationRef `json:"currentLocation"`
	Vendor          *VendorRef   `json:"vendor"`
	CreatedAt       string       `json:"createdAt"`
	HealthStatus    string       `json:"healthStatus"`
	Notes           string       `json:"notes"`
}

type LocationRef struct {
	Name string `json:"name"`
}

type VendorRef struct {
	Name string `json:"name"`
}

// LocationName returns the location bucket for grouping, "Unknown" if absent.
func (p *Plant) LocationName() string {
	if p.CurrentLocation == nil || p.CurrentLocation.Name == "" {
		return "Unknown"
	}
	return p.CurrentLocation.Name
}

// CarePrediction is one entry from the ML predict-care endpoint.
type CarePrediction struct {
	PlantID       string  `json:"plantId"`
	Name          string  `json:"name"`
	DaysUntilNext float64 `json:"daysUntilNext"`
}

// Snapshot is a point-in-time aggregate over the full inventory list. It is
// recomputed on every call and never cached.
type Snapshot struct {
	Count      int
	TotalValue float64
	Locations  map[string]int
	Recent     []Plant
	Plants     []Plant
}
