package content

import (
	"fmt"
	"math"
	"strings"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
)

// systemPrompt is the fixed instruction for the generation provider.
const systemPrompt = `You are a travel content writer for a Japanese tourism app.
Given a group of nearby tourist spots, write route content in English.
Respond with a single JSON object and nothing else, using exactly these fields:
{"route_name": string, "region_desc": string, "recommendations": [string], "estimated_duration": string}
route_name: a catchy name for the route. region_desc: 2-3 sentences selling the route.
recommendations: 1-5 short interest tags. estimated_duration: a duration estimate like "2 days".`

// AdditionalContext carries optional trip context into the prompt.
type AdditionalContext struct {
	Season      string
	TravelStyle string
	GroupSize   int
}

// buildPrompt assembles the user prompt for one cluster.
func buildPrompt(c domcluster.Cluster, keywords []string, extra *AdditionalContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Region: %s\n", c.Region)
	b.WriteString("Spots:\n")
	for i, s := range c.Spots {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Name)
	}
	fmt.Fprintf(&b, "User interests: %s\n", strings.Join(keywords, ", "))

	if common := CommonHashtags(c.Spots); len(common) > 0 {
		fmt.Fprintf(&b, "Common themes: %s\n", strings.Join(common, ", "))
	}
	if distinct := distinctHashtags(c.Spots); len(distinct) > 0 {
		fmt.Fprintf(&b, "All hashtags: %s\n", strings.Join(distinct, ", "))
	}
	fmt.Fprintf(&b, "Spot count: %d\n", len(c.Spots))
	fmt.Fprintf(&b, "Average distance between spots: %.1f km\n", c.AverageDistanceKm)

	if extra != nil {
		if extra.Season != "" {
			fmt.Fprintf(&b, "Season: %s\n", extra.Season)
		}
		if extra.TravelStyle != "" {
			fmt.Fprintf(&b, "Travel style: %s\n", extra.TravelStyle)
		}
		if extra.GroupSize > 0 {
			fmt.Fprintf(&b, "Group size: %d\n", extra.GroupSize)
		}
	}

	return b.String()
}

// CommonHashtags returns the tags shared by enough members to be
// thematic rather than incidental: at least max(2, ceil(n*0.3)) members
// for a cluster of n. First-seen order is preserved.
func CommonHashtags(spots []domain.TouristSpot) []string {
	threshold := int(math.Ceil(float64(len(spots)) * 0.3))
	if threshold < 2 {
		threshold = 2
	}

	counts := make(map[string]int)
	var order []string
	for _, s := range spots {
		seen := make(map[string]bool, len(s.Hashtags))
		for _, tag := range s.Hashtags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	var common []string
	for _, tag := range order {
		if counts[tag] >= threshold {
			common = append(common, tag)
		}
	}
	return common
}

// distinctHashtags returns every tag present in the cluster, first-seen order.
func distinctHashtags(spots []domain.TouristSpot) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range spots {
		for _, tag := range s.Hashtags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}
