package queryplantdb

type Config struct {
	// WaterDaysThreshold is the days-until-next-care cutoff below which a
	// plant counts as needing water now.
	WaterDaysThreshold float64
	// WaterShownLimit caps how many thirsty plants are listed individually.
	WaterShownLimit int
	// RecentShownLimit caps the "recent additions" listing.
	RecentShownLimit int
}

func DefaultConfig() *Config {
	return &Config{
		WaterDaysThreshold: 1,
		WaterShownLimit:    5,
		RecentShownLimit:   3,
	}
}
