package skillssh

import (
	"context"
	"fmt"
	"regexp"

	"skillsync-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scrapers/skillssh")

type RejectReason string

const (
	// no candidate survived classification, frontend rendering
	// probably hid the list from the HTML structure
	RejectEmpty RejectReason = "empty"
	// most install counts came out as tiny bare integers, a strong
	// signal that rendering noise was captured instead of real counts
	RejectLowQuality RejectReason = "low_quality"
)

// Rejection is the structural extractor refusing to vouch for its
// own output. It is a signal to retry with the text-pattern
// fallback, not a terminal error.
type Rejection struct {
	Reason  RejectReason
	Total   int
	Suspect int
}

func (r Rejection) String() string {
	if r.Reason == RejectLowQuality {
		return fmt.Sprintf("%s (%d/%d suspect)", r.Reason, r.Suspect, r.Total)
	}
	return string(r.Reason)
}

// Result is either a row batch or a rejection, never both.
type Result struct {
	Rows      []Row
	Rejection *Rejection
}

func (r Result) Rejected() bool {
	return r.Rejection != nil
}

var smallIntRegex = regexp.MustCompile(`^\d{1,2}$`)

// ExtractDocument runs the link classifier over every hyperlink in
// the document, dedups by page URL (last seen wins) and applies the
// quality gate.
func ExtractDocument(ctx context.Context, doc *goquery.Document, category string) Result {
	ctx, span := tracer.Start(ctx, "ExtractDocument", trace.WithAttributes(
		attribute.String("category", category),
	))
	defer span.End()

	anchors := htmlutil.GetAnchors(ctx, doc.Find("a[href]"))

	var candidates []Row
	for _, anchor := range anchors {
		row, ok := Classify(anchor, category)
		if !ok {
			continue
		}
		candidates = append(candidates, row)
	}

	rows := dedupeByURL(candidates)
	if len(rows) == 0 {
		rejection := &Rejection{Reason: RejectEmpty}
		span.AddEvent("rejected", trace.WithAttributes(
			attribute.String("reason", string(rejection.Reason)),
		))
		return Result{Rejection: rejection}
	}

	suspect := 0
	for _, row := range rows {
		if row.Installs != "" && smallIntRegex.MatchString(row.Installs) {
			suspect++
		}
	}
	if float64(suspect)/float64(len(rows)) > 0.5 {
		rejection := &Rejection{
			Reason:  RejectLowQuality,
			Total:   len(rows),
			Suspect: suspect,
		}
		span.AddEvent("rejected", trace.WithAttributes(
			attribute.String("reason", string(rejection.Reason)),
			attribute.Int("suspect", suspect),
			attribute.Int("total", len(rows)),
		))
		return Result{Rejection: rejection}
	}

	span.SetAttributes(attribute.Int("rows", len(rows)))
	return Result{Rows: rows}
}

// dedupeByURL keeps each URL at its first-seen position with its
// last-seen value.
func dedupeByURL(rows []Row) []Row {
	var out []Row
	index := map[string]int{}
	for _, row := range rows {
		if i, seen := index[row.PageURL]; seen {
			out[i] = row
			continue
		}
		index[row.PageURL] = len(out)
		out = append(out, row)
	}
	return out
}
