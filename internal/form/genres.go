package form

import "strings"

// Genres is the suggested genre list. Any non-empty genre is accepted.
var Genres = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Science Fiction",
	"Fantasy",
	"Romance",
	"Thriller",
	"Horror",
	"Biography",
	"History",
	"Self-Help",
	"Business",
	"Technology",
	"Science",
	"Arts",
	"Travel",
	"Cooking",
	"Health",
	"Religion",
	"Philosophy",
	"Poetry",
	"Drama",
	"Other",
}

// CompleteGenre extends value to the longest prefix shared by every genre it
// case-insensitively starts. It reports false when nothing matches or the
// value cannot be extended.
func CompleteGenre(value string) (string, bool) {
	prefix := strings.ToLower(strings.TrimSpace(value))
	if prefix == "" {
		return value, false
	}

	var matches []string
	for _, g := range Genres {
		if strings.HasPrefix(strings.ToLower(g), prefix) {
			matches = append(matches, g)
		}
	}
	if len(matches) == 0 {
		return value, false
	}

	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefixFold(common, m)
	}
	if len(common) < len(prefix) || common == value {
		return value, false
	}
	return common, true
}

func commonPrefixFold(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && strings.EqualFold(a[i:i+1], b[i:i+1]) {
		i++
	}
	return a[:i]
}
