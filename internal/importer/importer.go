// Package importer turns spreadsheet exports into the JSON data documents
// read by the content package.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jcao219/new-ro-transit/internal/models"

	"github.com/natefinch/atomic"
)

// Document keys, matching the files under internal/content/data.
const (
	LandmarksKey   = "landmarks"
	RestaurantsKey = "restaurants"
)

// row is one CSV record addressed by lower-cased header name.
type row struct {
	line   int
	fields map[string]string
}

func (r row) get(col string) string {
	return strings.TrimSpace(r.fields[col])
}

// coordinates returns nil when both lng and lat are blank.
func (r row) coordinates() (*models.Coordinates, error) {
	lngText, latText := r.get("lng"), r.get("lat")
	if lngText == "" && latText == "" {
		return nil, nil
	}
	if lngText == "" || latText == "" {
		return nil, fmt.Errorf("line %d: both lng and lat are required when either is set", r.line)
	}

	lng, err := strconv.ParseFloat(lngText, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid longitude: %s", r.line, lngText)
	}
	lat, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid latitude: %s", r.line, latText)
	}

	c := &models.Coordinates{Lng: lng, Lat: lat}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line, err)
	}
	return c, nil
}

func readRows(in io.Reader) ([]row, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("importer: empty file")
		}
		return nil, fmt.Errorf("importer: failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if !contains(header, "name") {
		return nil, errors.New("importer: header has no name column")
	}

	var rows []row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: failed to read record: %w", err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				fields[col] = record[i]
			}
		}
		r := row{line: line, fields: fields}
		if r.get("name") == "" {
			return nil, fmt.Errorf("importer: line %d: name is required", line)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func contains(cols []string, want string) bool {
	for _, c := range cols {
		if c == want {
			return true
		}
	}
	return false
}

// ParseLandmarks reads name, lng, lat and description columns.
func ParseLandmarks(in io.Reader) ([]models.Landmark, error) {
	rows, err := readRows(in)
	if err != nil {
		return nil, err
	}

	landmarks := make([]models.Landmark, 0, len(rows))
	for _, r := range rows {
		coords, err := r.coordinates()
		if err != nil {
			return nil, fmt.Errorf("importer: %w", err)
		}
		landmarks = append(landmarks, models.Landmark{
			Name:        r.get("name"),
			Coordinates: coords,
			Description: r.get("description"),
		})
	}
	return landmarks, nil
}

// ParseRestaurants reads name, cuisine, area, notes, website, description,
// lng and lat columns. Only name is required.
func ParseRestaurants(in io.Reader) ([]models.Restaurant, error) {
	rows, err := readRows(in)
	if err != nil {
		return nil, err
	}

	restaurants := make([]models.Restaurant, 0, len(rows))
	for _, r := range rows {
		coords, err := r.coordinates()
		if err != nil {
			return nil, fmt.Errorf("importer: %w", err)
		}
		restaurants = append(restaurants, models.Restaurant{
			Name:        r.get("name"),
			Cuisine:     r.get("cuisine"),
			Area:        r.get("area"),
			Notes:       r.get("notes"),
			Website:     r.get("website"),
			Description: r.get("description"),
			Coordinates: coords,
		})
	}
	return restaurants, nil
}

// WriteDocument stores items under key in the JSON object at path, replacing
// the file atomically. Other top-level keys already in the file are kept.
func WriteDocument(path, key string, items any) error {
	doc := map[string]json.RawMessage{}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(existing, &doc); err != nil {
			return fmt.Errorf("importer: %s is not a JSON object: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("importer: failed to read %s: %w", path, err)
	}

	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("importer: failed to encode %s: %w", key, err)
	}
	doc[key] = value

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("importer: failed to encode document: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("importer: failed to write %s: %w", path, err)
	}
	return nil
}
