// Package skillssh extracts leaderboard rows from skills.sh pages.
//
// Extraction is two-staged: a structural pass over the page's link
// graph, gated by a quality heuristic, and a text-pattern fallback
// that works on the flattened page text when the structural pass
// comes up empty or untrustworthy.
package skillssh

const BaseURL = "https://skills.sh"

const (
	CategoryAllTime  = "all_time"
	CategoryTrending = "trending"
	CategoryHot      = "hot"
)

// Categories returns the leaderboard views in their fixed sync order.
func Categories() []string {
	return []string{CategoryAllTime, CategoryTrending, CategoryHot}
}

// Row is one leaderboard entry. PageURL is the dedup key within a
// single extraction batch. Rank is provisional at extraction time and
// always nil after normalization, static fetches can't recover it
// reliably.
type Row struct {
	Rank      *int   `json:"rank"`
	SkillName string `json:"skill_name"`
	OwnerRepo string `json:"owner_repo"`
	Installs  string `json:"installs"`
	PageURL   string `json:"page_url"`
	Category  string `json:"category"`
}
