package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRegion is returned by ParseRegion for names outside the known set.
var ErrInvalidRegion = errors.New("invalid region")

// Region is a release region used to filter archive names.
type Region string

// Known regions. RegionAll disables filtering.
const (
	RegionUSA    Region = "USA"
	RegionEurope Region = "Europe"
	RegionJapan  Region = "Japan"
	RegionWorld  Region = "World"
	RegionAll    Region = "All"
)

// Regions lists every accepted region in prompt order.
var Regions = []Region{RegionUSA, RegionEurope, RegionJapan, RegionWorld, RegionAll}

// ParseRegion maps a user supplied name to a Region, ignoring case and
// surrounding whitespace. An empty string selects RegionAll.
//
// Example:
//
//	r, _ := ParseRegion(" europe ") // RegionEurope
//	r, _ = ParseRegion("")          // RegionAll
//	_, err := ParseRegion("Mars")   // errors.Is(err, ErrInvalidRegion)
func ParseRegion(raw string) (Region, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RegionAll, nil
	}
	for _, r := range Regions {
		if strings.EqualFold(raw, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q: choose from %s", ErrInvalidRegion, raw, RegionNames())
}

// RegionNames returns the accepted region names joined for display.
func RegionNames() string {
	names := make([]string, len(Regions))
	for i, r := range Regions {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// Matches reports whether fileName belongs to the region.
//
// RegionAll and the zero Region match every name. Any other region matches
// when its name is a case-insensitive substring of fileName.
func (r Region) Matches(fileName string) bool {
	if r == "" || strings.EqualFold(string(r), string(RegionAll)) {
		return true
	}
	return strings.Contains(strings.ToLower(fileName), strings.ToLower(string(r)))
}
