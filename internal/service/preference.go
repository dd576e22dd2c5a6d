package service

import (
	"strings"
)

// PreferenceSets is the result of classifying a user's raw preference
// tokens. Positive tokens represent ingredients the user wants;
// Excluded and Allergies are stripped of their markers and used to
// drop recipes outright.
type PreferenceSets struct {
	Positive  []string
	Excluded  []string
	Allergies []string
}

// ClassifyPreferences partitions raw preference tokens into positive,
// exclusion and allergy sets. Classification depends only on the token
// text: tokens containing "allergy" land in Allergies with the marker
// stripped, tokens containing "exclude" land in Excluded, everything
// else is positive. Tokens are lowercased, trimmed and deduplicated;
// order of first appearance is preserved.
func ClassifyPreferences(raw []string) PreferenceSets {
	var sets PreferenceSets
	seen := make(map[string]bool, len(raw))

	for _, token := range raw {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true

		switch {
		case strings.Contains(token, "allergy"):
			name := strings.TrimSuffix(token, "-allergy")
			name = strings.TrimSuffix(name, "allergy")
			name = strings.TrimSpace(name)
			if name != "" {
				sets.Allergies = append(sets.Allergies, name)
			}
		case strings.Contains(token, "exclude"):
			name := strings.TrimPrefix(token, "exclude-")
			name = strings.TrimPrefix(name, "exclude_")
			name = strings.TrimSpace(name)
			if name != "" && name != "exclude" {
				sets.Excluded = append(sets.Excluded, name)
			}
		default:
			sets.Positive = append(sets.Positive, token)
		}
	}

	return sets
}

// SplitPreferenceText splits the stored comma-separated preference text
// into raw tokens.
func SplitPreferenceText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
