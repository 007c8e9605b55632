package region

// Unknown is the classification result when no strategy produced a usable region.
const Unknown = "Unknown"

// Classification is a best-guess administrative region with a confidence
// score in [0,1]. Input echoes the original address or coordinates for
// diagnostics.
type Classification struct {
	Region     string
	City       string
	Confidence float64
	Input      string
}

// IsKnown reports whether a usable region was resolved.
func (c Classification) IsKnown() bool {
	return c.Region != "" && c.Region != Unknown
}
