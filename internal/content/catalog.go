// Package content loads the static site data: commute times, restaurants,
// landmarks and the rail routes drawn on the map.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/jcao219/new-ro-transit/internal/models"
)

//go:embed data/*.json
var bundled embed.FS

const (
	transitFile   = "transit.json"
	eatsFile      = "eats.json"
	landmarksFile = "landmarks.json"
)

// Catalog is the request-independent data set loaded once at start up.
// It is read-only after Load returns.
type Catalog struct {
	Commutes    []models.CommuteEntry
	Restaurants []models.Restaurant
	Landmarks   []models.Landmark
	Routes      []models.Route
}

type transitDoc struct {
	Commutes []models.CommuteEntry `json:"commutes"`
	Routes   []models.Route        `json:"routes"`
}

type eatsDoc struct {
	Restaurants []models.Restaurant `json:"restaurants"`
}

type landmarksDoc struct {
	Landmarks []models.Landmark `json:"landmarks"`
}

// LoadBundled loads the data files compiled into the binary.
func LoadBundled() (*Catalog, error) {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return Load(sub)
}

// LoadDir loads the data files from a directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load decodes the three data documents from fsys. Absent arrays decode as
// empty lists; a missing file or a malformed document is an error.
func Load(fsys fs.FS) (*Catalog, error) {
	var transit transitDoc
	if err := decode(fsys, transitFile, &transit); err != nil {
		return nil, err
	}
	var eats eatsDoc
	if err := decode(fsys, eatsFile, &eats); err != nil {
		return nil, err
	}
	var landmarks landmarksDoc
	if err := decode(fsys, landmarksFile, &landmarks); err != nil {
		return nil, err
	}

	c := &Catalog{
		Commutes:    transit.Commutes,
		Restaurants: eats.Restaurants,
		Landmarks:   landmarks.Landmarks,
		Routes:      transit.Routes,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("content: failed to decode %s: %w", name, err)
	}
	return nil
}

// validate rejects unnamed and duplicate locations, since the map keys its
// markers by name.
func (c *Catalog) validate() error {
	seen := make(map[string]struct{})
	for _, loc := range c.Locations() {
		if loc.Name == "" {
			return fmt.Errorf("content: %s without a name", loc.Category)
		}
		if _, dup := seen[loc.Name]; dup {
			return fmt.Errorf("content: duplicate location name %q", loc.Name)
		}
		seen[loc.Name] = struct{}{}
	}
	for _, r := range c.Routes {
		if _, ok := seen[r.From]; !ok {
			return fmt.Errorf("content: route %q starts at unknown location %q", r.Name, r.From)
		}
		if _, ok := seen[r.To]; !ok {
			return fmt.Errorf("content: route %q ends at unknown location %q", r.Name, r.To)
		}
	}
	return nil
}

// Locations returns every restaurant followed by every landmark as map
// locations, including those without coordinates.
func (c *Catalog) Locations() []models.Location {
	locations := make([]models.Location, 0, len(c.Restaurants)+len(c.Landmarks))
	for _, r := range c.Restaurants {
		locations = append(locations, r.Location())
	}
	for _, l := range c.Landmarks {
		locations = append(locations, l.Location())
	}
	return locations
}

// LocationsByCategory filters Locations. An empty category matches all.
func (c *Catalog) LocationsByCategory(category models.Category) []models.Location {
	all := c.Locations()
	if category == "" {
		return all
	}
	filtered := make([]models.Location, 0, len(all))
	for _, loc := range all {
		if loc.Category == category {
			filtered = append(filtered, loc)
		}
	}
	return filtered
}
