package skillssh

import (
	"regexp"
	"strconv"
	"strings"

	"skillsync-backend/lib/htmlutil"
)

var (
	skillPathRegex = regexp.MustCompile(`^https?://skills\.sh/([^/]+)/([^/]+)/([^/?#]+)$`)
	installsRegex  = regexp.MustCompile(`\d+[.,]?\d*[KkMm]?|\d+`)
	rankRegex      = regexp.MustCompile(`\b(\d{1,3})\b`)
)

// NormalizeHref resolves an href to an absolute URL. Site-relative
// paths are rooted at the skills.sh origin, absolute web URLs pass
// through, everything else (mailto:, fragments, empty) is rejected.
func NormalizeHref(href string) (string, bool) {
	if strings.HasPrefix(href, "/") {
		return BaseURL + href, true
	}
	if strings.HasPrefix(href, "http") {
		return href, true
	}
	return "", false
}

// MatchSkillPath accepts only the three-segment skill page shape
// origin/<owner>/<repo>/<skill>, with no query or fragment.
func MatchSkillPath(pageURL string) (ownerRepo string, skill string, ok bool) {
	groups := skillPathRegex.FindStringSubmatch(pageURL)
	if groups == nil {
		return "", "", false
	}
	return groups[1] + "/" + groups[2], groups[3], true
}

// InstallsToken returns the first token that looks like an install
// count: an integer, an integer with a single thousands separator,
// or a magnitude-suffixed number like "61.0K".
func InstallsToken(text string) string {
	return installsRegex.FindString(text)
}

// RankToken returns the first standalone 1-3 digit number in the
// text, or nil. List numbering usually sits in the anchor's container
// rather than the anchor itself, so callers pass container text here.
func RankToken(text string) *int {
	groups := rankRegex.FindStringSubmatch(text)
	if groups == nil {
		return nil
	}
	n, err := strconv.Atoi(groups[1])
	if err != nil {
		return nil
	}
	return &n
}

// Classify turns one anchor into a candidate leaderboard row, or
// nothing if the anchor doesn't point at a skill page. The skill name
// is always the URL slug, free text is too noisy to trust for names.
func Classify(anchor htmlutil.Anchor, category string) (Row, bool) {
	pageURL, ok := NormalizeHref(anchor.Href)
	if !ok {
		return Row{}, false
	}
	ownerRepo, skill, ok := MatchSkillPath(pageURL)
	if !ok {
		return Row{}, false
	}

	return Row{
		Rank:      RankToken(anchor.ContainerText),
		SkillName: skill,
		OwnerRepo: ownerRepo,
		Installs:  InstallsToken(anchor.Text),
		PageURL:   pageURL,
		Category:  category,
	}, true
}
