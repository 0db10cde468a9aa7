package skillssh

import (
	"context"
	"regexp"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	// markdown-style link syntax, some text renderers emit it even
	// for HTML pages; intentionally independent of tag structure
	bracketLinkRegex = regexp.MustCompile(`\[(.*?)\]\((https?://skills\.sh/[^)]+)\)`)

	ownerRepoRegex        = regexp.MustCompile(`[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+`)
	trailingInstallsRegex = regexp.MustCompile(`(\d+[.,]?\d*[KkMm]?|\d+)$`)
	leadingRankRegex      = regexp.MustCompile(`^(\d{1,3})\b`)
)

// OwnerRepoToken returns the first owner/repo shaped substring, or "".
func OwnerRepoToken(text string) string {
	return ownerRepoRegex.FindString(text)
}

// TrailingInstallsToken returns an installs token anchored at the end
// of the text, or "".
func TrailingInstallsToken(text string) string {
	groups := trailingInstallsRegex.FindStringSubmatch(text)
	if groups == nil {
		return ""
	}
	return groups[1]
}

// LeadingRankToken returns a 1-3 digit rank at the very start of the
// text, or nil.
func LeadingRankToken(text string) *int {
	groups := leadingRankRegex.FindStringSubmatch(text)
	if groups == nil {
		return nil
	}
	n, err := strconv.Atoi(groups[1])
	if err != nil {
		return nil
	}
	return &n
}

// ExtractText is the fallback extractor. It scans flattened page text
// (or raw markup when the document itself wouldn't parse) for
// [inner text](url) pairs pointing at skills.sh and pulls the same
// fields out of the inner text. Its output is accepted
// unconditionally, there is no second quality gate.
func ExtractText(ctx context.Context, text string, category string) []Row {
	_, span := tracer.Start(ctx, "ExtractText", trace.WithAttributes(
		attribute.String("category", category),
	))
	defer span.End()

	var rows []Row
	for _, groups := range bracketLinkRegex.FindAllStringSubmatch(text, -1) {
		inner := groups[1]
		pageURL := groups[2]

		rows = append(rows, Row{
			Rank:      LeadingRankToken(inner),
			SkillName: lastPathSegment(pageURL),
			OwnerRepo: OwnerRepoToken(inner),
			Installs:  TrailingInstallsToken(inner),
			PageURL:   pageURL,
			Category:  category,
		})
	}

	rows = dedupeByURL(rows)
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows
}
