package skillssh

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	magnitudeSuffixRegex = regexp.MustCompile(`[KkMm]`)
	groupingPunctRegex   = regexp.MustCompile(`[,.]`)
)

// ValidInstalls reports whether an installs value denotes a magnitude
// credible enough to keep: it carries a thousand/million suffix
// letter, or parses as an integer >= 1000 once grouping punctuation
// is stripped.
func ValidInstalls(s string) bool {
	if s == "" {
		return false
	}
	if magnitudeSuffixRegex.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(groupingPunctRegex.ReplaceAllString(s, ""))
	if err != nil {
		return false
	}
	return n >= 1000
}

func lastPathSegment(pageURL string) string {
	trimmed := strings.TrimRight(pageURL, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}

func ownerRepoFromURL(pageURL string) string {
	parts := strings.Split(pageURL, "/")
	if len(parts) < 6 {
		return ""
	}
	return parts[3] + "/" + parts[4]
}

// Normalize enforces row invariants regardless of which extractor
// produced the batch. It is total: malformed fields become absent,
// never errors. Running it twice is the same as running it once.
func Normalize(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		row.Rank = nil
		if !ValidInstalls(row.Installs) {
			row.Installs = ""
		}
		if row.SkillName == "" && row.PageURL != "" {
			row.SkillName = lastPathSegment(row.PageURL)
		}
		if row.OwnerRepo == "" && row.PageURL != "" {
			row.OwnerRepo = ownerRepoFromURL(row.PageURL)
		}
		out = append(out, row)
	}
	return out
}
