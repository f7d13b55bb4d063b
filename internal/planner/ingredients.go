package planner

import "github.com/pageza/mealplanner/backend/internal/models"

// Dedupe removes repeated entries, keeping the first occurrence of each.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Aggregate concatenates the ingredient lists of recipes in order and dedupes the result.
func Aggregate(recipes ...*models.Recipe) []string {
	var all []string
	for _, r := range recipes {
		if r == nil {
			continue
		}
		all = append(all, r.Ingredients...)
	}
	return Dedupe(all)
}
