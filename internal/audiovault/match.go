package audiovault

import (
	"strings"

	"github.com/samber/lo"
)

// MatchesCategory reports whether the audio belongs to the category.
//
// The id foreign key is the canonical relationship. Records produced by
// older ingest paths may carry only a category title, or only the legacy
// Categories string array, so a case-insensitive title match and array
// membership are kept as compatibility fallbacks.
func (a Audio) MatchesCategory(c Category) bool {
	if c.ID != 0 && a.CategoryID == c.ID {
		return true
	}
	title := strings.ToLower(strings.TrimSpace(c.Title))
	if title == "" {
		return false
	}
	if strings.ToLower(strings.TrimSpace(a.CategoryTitle)) == title {
		return true
	}
	return lo.ContainsBy(a.Categories, func(name string) bool {
		return strings.ToLower(strings.TrimSpace(name)) == title
	})
}

// FilterByCategory returns the audios matching the category, in input order.
func FilterByCategory(audios []Audio, c Category) []Audio {
	return lo.Filter(audios, func(a Audio, _ int) bool {
		return a.MatchesCategory(c)
	})
}

// Related returns up to limit audios sharing the current record's
// category, excluding the record itself.
func Related(audios []Audio, current Audio, limit int) []Audio {
	category := Category{ID: current.CategoryID, Title: current.CategoryTitle}
	related := lo.Filter(audios, func(a Audio, _ int) bool {
		return a.ID != current.ID && a.MatchesCategory(category)
	})
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related
}
