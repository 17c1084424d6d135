package parser

import "sort"

// Place is a named location in WGS84 coordinates.
type Place struct {
	Latitude  float64
	Longitude float64
}

// Gazetteer maps lowercase place names to coordinates. It backs the
// text-extraction fallback when the model mentions a location by name
// instead of emitting a proper tool call.
type Gazetteer map[string]Place

// DefaultGazetteer returns the built-in place-name table.
func DefaultGazetteer() Gazetteer {
	return Gazetteer{
		"new york":          {Latitude: 40.7128, Longitude: -74.0060},
		"nyc":               {Latitude: 40.7128, Longitude: -74.0060},
		"london":            {Latitude: 51.5074, Longitude: -0.1278},
		"paris":             {Latitude: 48.8566, Longitude: 2.3522},
		"tokyo":             {Latitude: 35.6762, Longitude: 139.6503},
		"sydney":            {Latitude: -33.8688, Longitude: 151.2093},
		"eiffel tower":      {Latitude: 48.8584, Longitude: 2.2945},
		"grand canyon":      {Latitude: 36.1069, Longitude: -112.1129},
		"statue of liberty": {Latitude: 40.6892, Longitude: -74.0445},
	}
}

// names returns the place names in a stable order so lookups are
// deterministic regardless of map iteration order.
func (g Gazetteer) names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
