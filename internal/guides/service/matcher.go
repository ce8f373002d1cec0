package service

import (
	"strings"

	"github.com/carelink-app/carelink-backend/internal/guides/domain"
)

// activeTerms picks the personalization strings matching runs against.
// Main challenges win over help needs when both are present.
func activeTerms(mainChallenges, helpNeeds []string) []string {
	if len(mainChallenges) > 0 {
		return mainChallenges
	}
	return helpNeeds
}

// matchGuides filters guides to those whose tag or help-tag names contain at
// least one of the terms, case-insensitively. An empty term list keeps the
// whole set.
func matchGuides(guides []domain.Guide, terms []string) []domain.Guide {
	if len(terms) == 0 {
		return guides
	}

	lowered := make([]string, len(terms))
	for i, term := range terms {
		lowered[i] = strings.ToLower(term)
	}

	matched := make([]domain.Guide, 0, len(guides))
	for _, g := range guides {
		if guideMatches(g, lowered) {
			matched = append(matched, g)
		}
	}
	return matched
}

func guideMatches(g domain.Guide, loweredTerms []string) bool {
	for _, name := range g.Tags {
		if nameContainsAny(name, loweredTerms) {
			return true
		}
	}
	for _, name := range g.HelpTags {
		if nameContainsAny(name, loweredTerms) {
			return true
		}
	}
	return false
}

func nameContainsAny(name string, loweredTerms []string) bool {
	lowered := strings.ToLower(name)
	for _, term := range loweredTerms {
		if term != "" && strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
