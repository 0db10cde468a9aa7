// Package leaderboard orchestrates one sync run: fetch each category
// page, extract rows (structural first, text-pattern fallback on
// rejection), normalize, persist.
package leaderboard

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"skillsync-backend/lib/htmlutil"
	"skillsync-backend/lib/scrapers/skillssh"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("services/leaderboard")

type Service struct {
	client skillssh.Client
	cfg    Config
}

func NewService(client skillssh.Client, cfg Config) Service {
	return Service{
		client: client,
		cfg:    cfg,
	}
}

// Sync runs one category start to finish and returns the persisted
// snapshot. Structural-extraction rejections are handled internally
// by falling back to the text-pattern extractor; only fetch and
// persistence failures surface as errors.
func (s Service) Sync(ctx context.Context, category string) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Sync", trace.WithAttributes(
		attribute.String("category", category),
	))
	defer span.End()

	pageURL, ok := s.cfg.SourceURLs[category]
	if !ok {
		err := fmt.Errorf("no source url configured for category %q", category)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	slog.InfoContext(ctx, "syncing category", "category", category, "url", pageURL)

	body, err := s.client.FetchPage(ctx, pageURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return Snapshot{}, err
	}

	rows := s.extract(ctx, body, category)
	rows = skillssh.Normalize(rows)

	snapshot, err := WriteSnapshot(s.cfg.OutputDir, category, rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist snapshot")
		return Snapshot{}, err
	}

	slog.InfoContext(ctx, "saved snapshot",
		"category", category,
		"rows", snapshot.Count,
		"json", JsonPath(s.cfg.OutputDir, category),
		"csv", CsvPath(s.cfg.OutputDir, category),
	)
	return snapshot, nil
}

// extract is the two-stage pipeline. A structural rejection is a
// signal, not an error: the same page gets a second pass with the
// text-pattern extractor and that result is taken as-is.
func (s Service) extract(ctx context.Context, body []byte, category string) []skillssh.Row {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.WarnContext(ctx, "failed to parse html, scanning raw markup", "category", category, "err", err)
		return skillssh.ExtractText(ctx, string(body), category)
	}

	result := skillssh.ExtractDocument(ctx, doc, category)
	if !result.Rejected() {
		return result.Rows
	}

	slog.InfoContext(ctx, "structural extraction rejected, using text fallback",
		"category", category,
		"rejection", result.Rejection.String(),
	)
	return skillssh.ExtractText(ctx, htmlutil.FlattenText(ctx, doc), category)
}

// Outcome is the per-category result of a full run.
type Outcome struct {
	Category string
	Rows     int
	Err      error
}

// SyncAll runs every category sequentially in fixed order. A failed
// category is logged and skipped, it never aborts the others.
func (s Service) SyncAll(ctx context.Context) []Outcome {
	ctx, span := tracer.Start(ctx, "SyncAll")
	defer span.End()

	var outcomes []Outcome
	for _, category := range skillssh.Categories() {
		snapshot, err := s.Sync(ctx, category)
		if err != nil {
			slog.ErrorContext(ctx, "failed to sync category", "category", category, "err", err)
			outcomes = append(outcomes, Outcome{Category: category, Err: err})
			continue
		}
		outcomes = append(outcomes, Outcome{Category: category, Rows: snapshot.Count})
	}
	return outcomes
}
