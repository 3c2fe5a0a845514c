package models

// BuiltinListings returns the sample plots shipped with the application.
// They are always shown first and are never written to the store.
func BuiltinListings() []Listing {
	return []Listing{
		{
			ID:    "b1",
			Title: "Flat land near river",
			Area:  "Perundurai, Erode",
			Lat:   11.399,
			Lng:   77.676,
			Sqft:  2400,
			Price: 4800000,
			Owner: "Mr. Kumar",
			Phone: "+919840012345",
			Desc:  "Good soil, clear title",
		},
		{
			ID:    "b2",
			Title: "Corner plot",
			Area:  "Erode centre",
			Lat:   11.341,
			Lng:   77.719,
			Sqft:  1800,
			Price: 3600000,
			Owner: "Mrs. Meena",
			Phone: "+919952298765",
			Desc:  "Corner plot, near main road",
		},
		{
			ID:    "b3",
			Title: "Farm land",
			Area:  "Kodumudi",
			Lat:   11.281,
			Lng:   77.807,
			Sqft:  5000,
			Price: 7500000,
			Owner: "Mr. Raju",
			Phone: "+919894376543",
			Desc:  "Irrigable, good access",
		},
	}
}

// IsBuiltinID reports whether id belongs to a built-in listing
func IsBuiltinID(id string) bool {
	for _, l := range BuiltinListings() {
		if l.ID == id {
			return true
		}
	}
	return false
}
