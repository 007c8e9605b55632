package region

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain/geo"
	domregion "github.com/sx-tane/tourii-backend-sub002/internal/domain/region"
)

// Strategy confidence levels, in chain order. The first strategy whose
// confidence exceeds acceptThreshold wins.
const (
	directNameConfidence = 0.9
	majorCityConfidence  = 0.8
	tokenScanConfidence  = 0.7
	postalConfidence     = 0.6
	countryConfidence    = 0.3

	coordinateConfidence = 0.8

	acceptThreshold = 0.5
)

// strategy is one independent, pure classification attempt over a
// lowercased address.
type strategy func(address string) domregion.Classification

// Classifier resolves a free-text address or a coordinate pair to a
// best-guess administrative region with a confidence score.
type Classifier struct {
	table         Table
	defaultRegion string
	strategies    []strategy
}

// New creates a region classifier over the given table.
// defaultRegion is returned for country-only addresses and for
// coordinates outside every bounding box; empty means "Tokyo".
func New(table Table, defaultRegion string) *Classifier {
	if defaultRegion == "" {
		defaultRegion = "Tokyo"
	}
	c := &Classifier{table: table, defaultRegion: defaultRegion}
	c.strategies = []strategy{
		c.matchDirectName,
		c.matchMajorCity,
		c.matchPositionalToken,
		c.matchPostalCode,
	}
	return c
}

// Classify resolves an address, falling back to coordinates when the
// address is empty. hasCoords distinguishes a real (0,0) position from
// a missing one.
func (c *Classifier) Classify(address string, lat, lng float64, hasCoords bool) domregion.Classification {
	if strings.TrimSpace(address) != "" {
		return c.ClassifyAddress(address)
	}
	if hasCoords {
		return c.ClassifyCoordinates(lat, lng)
	}
	return domregion.Classification{Region: domregion.Unknown, Confidence: 0}
}

// ClassifyAddress runs the strategy chain over the address text.
func (c *Classifier) ClassifyAddress(address string) domregion.Classification {
	lowered := strings.ToLower(strings.TrimSpace(address))

	for _, s := range c.strategies {
		if result := s(lowered); result.Confidence > acceptThreshold {
			result.Input = address
			return result
		}
	}

	result := c.bestEffort(lowered)
	result.Input = address
	return result
}

// ClassifyCoordinates tests the point against the region bounding boxes
// in table order, returning the first match.
func (c *Classifier) ClassifyCoordinates(lat, lng float64) domregion.Classification {
	input := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)

	if !geo.ValidateCoordinates(lat, lng) {
		return domregion.Classification{Region: domregion.Unknown, Confidence: 0, Input: input}
	}

	for _, box := range c.table.BoundingBoxes {
		if box.Contains(lat, lng) {
			return domregion.Classification{
				Region:     box.Region,
				Confidence: coordinateConfidence,
				Input:      input,
			}
		}
	}

	return domregion.Classification{
		Region:     c.defaultRegion,
		Confidence: countryConfidence,
		Input:      input,
	}
}

// matchDirectName matches a known region name or alias anywhere in the text.
func (c *Classifier) matchDirectName(address string) domregion.Classification {
	for _, entry := range c.table.Regions {
		for _, alias := range entry.Aliases {
			if strings.Contains(address, alias) {
				return domregion.Classification{Region: entry.Name, Confidence: directNameConfidence}
			}
		}
	}
	return domregion.Classification{}
}

// matchMajorCity matches a known city mapped to its region.
func (c *Classifier) matchMajorCity(address string) domregion.Classification {
	for city, regionName := range c.table.Cities {
		if strings.Contains(address, city) {
			return domregion.Classification{
				Region:     regionName,
				City:       city,
				Confidence: majorCityConfidence,
			}
		}
	}
	return domregion.Classification{}
}

var tokenSeparators = regexp.MustCompile(`[,\s\-、　]+`)

// matchPositionalToken tokenizes on common separators and matches a
// token equal to or ending with a region alias. Catches forms like
// "higashi-tokyo" that whole-text matching of short aliases would not
// anchor correctly.
func (c *Classifier) matchPositionalToken(address string) domregion.Classification {
	tokens := tokenSeparators.Split(address, -1)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		for _, entry := range c.table.Regions {
			for _, alias := range entry.Aliases {
				if token == alias || strings.HasSuffix(token, alias) {
					return domregion.Classification{Region: entry.Name, Confidence: tokenScanConfidence}
				}
			}
		}
	}
	return domregion.Classification{}
}

var postalCodePattern = regexp.MustCompile(`(\d{3})-?\d{4}`)

// matchPostalCode extracts a postal-code-shaped substring and maps its
// 3-digit prefix to a region via the numeric ranges.
func (c *Classifier) matchPostalCode(address string) domregion.Classification {
	match := postalCodePattern.FindStringSubmatch(address)
	if match == nil {
		return domregion.Classification{}
	}

	prefix, err := strconv.Atoi(match[1])
	if err != nil {
		return domregion.Classification{}
	}

	for _, r := range c.table.PostalRanges {
		if prefix >= r.Low && prefix <= r.High {
			return domregion.Classification{Region: r.Region, Confidence: postalConfidence}
		}
	}
	return domregion.Classification{}
}

// bestEffort returns the default region when the text merely indicates
// the country, otherwise Unknown at zero confidence.
func (c *Classifier) bestEffort(address string) domregion.Classification {
	for _, indicator := range c.table.CountryIndicators {
		if strings.Contains(address, indicator) {
			return domregion.Classification{Region: c.defaultRegion, Confidence: countryConfidence}
		}
	}
	return domregion.Classification{Region: domregion.Unknown, Confidence: 0}
}
