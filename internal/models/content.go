package models

// CommuteEntry describes how to reach a destination from town.
type CommuteEntry struct {
	Destination string `json:"destination"`
	Method      string `json:"method"`
	Time        string `json:"time"`
	Frequency   string `json:"frequency"`
	Notes       string `json:"notes"`
}

// Restaurant is a dining listing. Notes, website and coordinates are optional.
type Restaurant struct {
	Name        string       `json:"name"`
	Cuisine     string       `json:"cuisine"`
	Area        string       `json:"area"`
	Notes       string       `json:"notes,omitempty"`
	Website     string       `json:"website,omitempty"`
	Description string       `json:"description,omitempty"`
	Coordinates *Coordinates `json:"coords,omitempty"`
}

// HasWebsite is false for missing links and the "#" placeholder.
func (r Restaurant) HasWebsite() bool {
	return r.Website != "" && r.Website != "#"
}

// Location converts the restaurant into a map location. When no description
// is given the cuisine and area are used instead.
func (r Restaurant) Location() Location {
	desc := r.Description
	if desc == "" {
		switch {
		case r.Cuisine != "" && r.Area != "":
			desc = r.Cuisine + " · " + r.Area
		case r.Cuisine != "":
			desc = r.Cuisine
		default:
			desc = r.Area
		}
	}
	return Location{
		Name:        r.Name,
		Coordinates: r.Coordinates,
		Category:    CategoryRestaurant,
		Description: desc,
	}
}

// Landmark is a point of interest in town.
type Landmark struct {
	Name        string       `json:"name"`
	Coordinates *Coordinates `json:"coords,omitempty"`
	Description string       `json:"description,omitempty"`
}

func (l Landmark) Location() Location {
	return Location{
		Name:        l.Name,
		Coordinates: l.Coordinates,
		Category:    CategoryLandmark,
		Description: l.Description,
	}
}

// Route is a line drawn between two named locations, such as a rail line.
type Route struct {
	Name  string `json:"name"`
	From  string `json:"from"`
	To    string `json:"to"`
	Color string `json:"color"`
}
