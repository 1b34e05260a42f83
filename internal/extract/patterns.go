package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/meescheck/meescheck/internal/schema"
)

// fieldStrategy locates one field's value in certificate text. Patterns
// are ordered: the first pattern that yields any candidates wins, later
// ones are fallbacks for layouts from other issuing software.
type fieldStrategy struct {
	field     string
	patterns  []*regexp.Regexp
	normalize func(raw string) (string, bool)
}

// match is one located field value.
type match struct {
	value     string
	ambiguous bool // More than one distinct candidate was found
}

var strategies = []fieldStrategy{
	{
		field: schema.FieldCurrentRating,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)current\s+(?:energy\s+)?(?:efficiency\s+)?rating(?:\s+is)?[:\s|]*([A-G])\b`),
			regexp.MustCompile(`(?i)energy\s+(?:efficiency\s+)?rating(?:\s+is)?[:\s|]*([A-G])\b`),
			regexp.MustCompile(`(?i)\bEPC\s+rating[:\s]*([A-G])\b`),
		},
		normalize: normalizeRating,
	},
	{
		field: schema.FieldCurrentScore,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)current\s+(?:energy\s+)?(?:efficiency\s+)?(?:score|rating)\D{0,16}?(\d{1,3})\b`),
			regexp.MustCompile(`(?i)\benergy\s+efficiency\b\D{0,16}?(\d{1,3})\b`),
			regexp.MustCompile(`(?i)\bscore[:\s]*(\d{1,3})\b`),
		},
		normalize: normalizeScore,
	},
	{
		field: schema.FieldPropertyType,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:property\s+type|dwelling\s+type)[:\s]*([^\n]+)`),
			regexp.MustCompile(`(?i)\b((?:detached|semi-detached|terraced|end-terrace|mid-terrace)\s+house|house|flat|apartment|bungalow|maisonette|park\s+home)\b`),
		},
		normalize: normalizePropertyType,
	},
	{
		field: schema.FieldPropertyAge,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:age\s+band|construction(?:\s+age)?(?:\s+band)?|built)[:\s]*([^\n]+)`),
		},
		normalize: normalizeAgeBand,
	},
	{
		field: schema.FieldHeatingType,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)main\s+heat(?:ing)?(?:\s+description)?[:\s]*([^\n]+)`),
			regexp.MustCompile(`(?i)\b(gas\s+boiler|mains\s+gas|storage\s+heaters?|panel\s+heaters?|heat\s+pump|oil\s+boiler|solid\s+fuel)\b`),
		},
		normalize: normalizeHeating,
	},
	{
		field: schema.FieldWallType,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)walls?(?:\s+description)?[:\s]*([^\n]+)`),
			regexp.MustCompile(`(?i)\b(solid\s+brick|cavity\s+wall|granite|sandstone|stone|timber\s+frame|system\s+built)\b`),
		},
		normalize: normalizeWall,
	},
	{
		field: schema.FieldPotentialRating,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)potential\s+(?:energy\s+)?(?:efficiency\s+)?rating[:\s|]*([A-G])\b`),
			regexp.MustCompile(`(?i)potential[:\s|]*([A-G])\b`),
		},
		normalize: normalizeRating,
	},
	{
		field: schema.FieldPotentialScore,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)potential\s+(?:energy\s+)?(?:efficiency\s+)?(?:score|rating)\D{0,16}?(\d{1,3})\b`),
		},
		normalize: normalizeScore,
	},
}

func normalizeRating(raw string) (string, bool) {
	letter := strings.ToUpper(strings.TrimSpace(raw))
	for _, r := range schema.RatingLetters {
		if r == letter {
			return letter, true
		}
	}
	return "", false
}

func normalizeScore(raw string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 100 {
		return "", false
	}
	return strconv.Itoa(n), true
}

func normalizePropertyType(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "maisonette"):
		return "maisonette", true
	case strings.Contains(lower, "bungalow"):
		return "bungalow", true
	case strings.Contains(lower, "park home"):
		return "park-home", true
	case strings.Contains(lower, "flat"), strings.Contains(lower, "apartment"):
		return "flat", true
	case strings.Contains(lower, "house"):
		return "house", true
	}
	return "", false
}

func normalizeAgeBand(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "before 1900") || strings.Contains(lower, "pre-1900") || strings.Contains(lower, "pre 1900") {
		return "pre-1900", true
	}

	// Band boundaries follow the standard SAP construction age bands.
	yearRe := regexp.MustCompile(`(\d{4})`)
	m := yearRe.FindStringSubmatch(lower)
	if m == nil {
		return "", false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	switch {
	case year < 1900:
		return "pre-1900", true
	case year <= 1929:
		return "1900-1929", true
	case year <= 1949:
		return "1930-1949", true
	case year <= 1966:
		return "1950-1966", true
	case year <= 1982:
		return "1967-1982", true
	case year <= 1995:
		return "1983-1995", true
	default:
		return "post-1995", true
	}
}

func normalizeHeating(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "heat pump"):
		return "heat-pump", true
	case strings.Contains(lower, "storage heater"):
		return "electric-storage", true
	case strings.Contains(lower, "panel heater"), strings.Contains(lower, "electric heater"):
		return "electric-panel", true
	case strings.Contains(lower, "oil"):
		return "oil-boiler", true
	case strings.Contains(lower, "solid fuel"), strings.Contains(lower, "coal"), strings.Contains(lower, "wood"):
		return "solid-fuel", true
	case strings.Contains(lower, "gas"), strings.Contains(lower, "boiler"):
		return "gas-boiler", true
	}
	return "", false
}

func normalizeWall(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "cavity") && (strings.Contains(lower, "filled") || strings.Contains(lower, "insulated")):
		return "cavity-filled", true
	case strings.Contains(lower, "cavity"):
		return "cavity", true
	case strings.Contains(lower, "solid brick"), strings.Contains(lower, "solid wall"):
		return "solid-brick", true
	case strings.Contains(lower, "granite"), strings.Contains(lower, "sandstone"), strings.Contains(lower, "whinstone"), strings.Contains(lower, "stone"):
		return "stone", true
	case strings.Contains(lower, "timber"):
		return "timber-frame", true
	case strings.Contains(lower, "system built"), strings.Contains(lower, "system-built"):
		return "system-built", true
	}
	return "", false
}

// locate runs one strategy over the text. The first pattern with at least
// one normalisable candidate wins; distinct candidates under that pattern
// mark the match ambiguous.
func (s fieldStrategy) locate(text string) (match, bool) {
	for _, re := range s.patterns {
		raw := re.FindAllStringSubmatch(text, -1)
		if raw == nil {
			continue
		}

		var candidates []string
		seen := make(map[string]bool)
		for _, m := range raw {
			if v, ok := s.normalize(m[1]); ok && !seen[v] {
				seen[v] = true
				candidates = append(candidates, v)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		return match{value: candidates[0], ambiguous: len(candidates) > 1}, true
	}
	return match{}, false
}
