package content

import (
	"fmt"
	"strings"
	"unicode"

	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	domregion "github.com/sx-tane/tourii-backend-sub002/internal/domain/region"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
)

// keywordCategories maps user keywords to recommendation categories for
// fallback content. Lookup is case-insensitive.
var keywordCategories = map[string]string{
	"temple":    "Historical Sites",
	"shrine":    "Historical Sites",
	"castle":    "Historical Sites",
	"food":      "Local Food",
	"ramen":     "Local Food",
	"sushi":     "Local Food",
	"nature":    "Nature & Parks",
	"garden":    "Nature & Parks",
	"park":      "Nature & Parks",
	"hiking":    "Nature & Parks",
	"museum":    "Museums & Galleries",
	"art":       "Museums & Galleries",
	"onsen":     "Hot Springs",
	"spa":       "Hot Springs",
	"shopping":  "Shopping",
	"beach":     "Beaches",
	"nightlife": "Nightlife",
}

// genericCategories pad the recommendation list when too few keywords matched.
var genericCategories = []string{"Scenic Views", "Local Culture"}

// fallbackContent synthesizes route content deterministically. It is the
// degradation path for every provider failure and never fails itself.
func (s *Service) fallbackContent(c domcluster.Cluster, keywords []string) domroute.GeneratedContent {
	return domroute.GeneratedContent{
		RouteName:         truncate(fallbackName(c, keywords), s.maxNameLength),
		RegionDesc:        truncate(fallbackDescription(c, keywords), s.maxDescLength),
		Recommendations:   fallbackRecommendations(keywords),
		EstimatedDuration: DurationForSpotCount(len(c.Spots)),
		ConfidenceScore:   domroute.FallbackConfidence,
	}
}

// fallbackName joins the first two keywords, capitalized, with the region.
func fallbackName(c domcluster.Cluster, keywords []string) string {
	picked := keywords
	if len(picked) > 2 {
		picked = picked[:2]
	}
	parts := make([]string, len(picked))
	for i, kw := range picked {
		parts[i] = capitalize(kw)
	}

	name := strings.Join(parts, " & ")
	if c.Region != "" && c.Region != domregion.Unknown {
		name += " " + c.Region
	}
	return name
}

func fallbackDescription(c domcluster.Cluster, keywords []string) string {
	region := c.Region
	if region == "" || region == domregion.Unknown {
		region = "the area"
	}
	return fmt.Sprintf(
		"A route through %d hand-picked spots in %s, matched to your interest in %s.",
		len(c.Spots), region, strings.Join(keywords, ", "),
	)
}

// fallbackRecommendations maps keywords to categories, padding with
// generic entries when fewer than three matched.
func fallbackRecommendations(keywords []string) []string {
	var recs []string
	seen := make(map[string]bool)
	for _, kw := range keywords {
		category, ok := keywordCategories[strings.ToLower(kw)]
		if !ok || seen[category] {
			continue
		}
		seen[category] = true
		recs = append(recs, category)
	}

	for _, generic := range genericCategories {
		if len(recs) >= 3 {
			break
		}
		if !seen[generic] {
			seen[generic] = true
			recs = append(recs, generic)
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// DurationForSpotCount is the fixed duration bucket table, monotonic in
// spot count.
func DurationForSpotCount(n int) string {
	switch {
	case n <= 2:
		return "1 day"
	case n <= 4:
		return "2 days"
	case n <= 6:
		return "2-3 days"
	case n <= 8:
		return "3-4 days"
	default:
		return "4-5 days"
	}
}

// capitalize upper-cases the first rune of a keyword.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// truncate caps a string at limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
