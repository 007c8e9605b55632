package domain

// TouristSpot is a catalog entry matched against user keywords.
// Immutable for the duration of a pipeline run.
type TouristSpot struct {
	ID       string
	Name     string
	Lat      float64
	Lng      float64
	Address  string
	Hashtags []string
	ImageURL string
}

// HasCoordinates reports whether the spot carries a usable position.
// (0,0) is treated as missing: it is the null-island default of the
// upstream catalog importer, not a real location.
func (s *TouristSpot) HasCoordinates() bool {
	return !(s.Lat == 0 && s.Lng == 0)
}

// MatchMode selects how keywords combine when matching spot hashtags.
type MatchMode string

// Match mode constants.
const (
	// MatchAll requires every keyword to match some hashtag.
	MatchAll MatchMode = "ALL"
	// MatchAny requires at least one keyword to match.
	MatchAny MatchMode = "ANY"
)

// IsValid checks if the mode is one of the supported values.
func (m MatchMode) IsValid() bool {
	return m == MatchAll || m == MatchAny
}
