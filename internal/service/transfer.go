package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gosimple/slug"

	"github.com/jask/matchlog/internal/apperr"
	"github.com/jask/matchlog/internal/codec"
	"github.com/jask/matchlog/internal/logging"
	"github.com/jask/matchlog/internal/match"
)

// Export kinds.
const (
	KindJSON = "json"
	KindCSV  = "csv"
)

// IngestResult summarises an import.
type IngestResult struct {
	Imported    int
	Added       int
	Replaced    int
	Rejected    int
	SkippedSets int
	Errors      []error
}

// ExportJSON writes the collection as an indented JSON array.
func (s *MatchService) ExportJSON(w io.Writer) error {
	return codec.EncodeJSON(w, s.records)
}

// ExportCSV writes the collection as quoted CSV with a header row.
func (s *MatchService) ExportCSV(w io.Writer) error {
	return codec.EncodeCSV(w, s.records)
}

// ExportFileName returns "<app>_<YYYY-MM-DD>.<kind>" with the app name slugged.
func (s *MatchService) ExportFileName(kind string, now time.Time) string {
	name := slug.Make(s.appName)
	if name == "" {
		name = "matchlog"
	}
	return fmt.Sprintf("%s_%s.%s", name, now.Format(time.DateOnly), kind)
}

// ImportJSON merges a JSON array into the collection. The document is parsed in
// full first; a parse error leaves the collection untouched. Elements without
// an id or with an invalid date are rejected individually.
func (s *MatchService) ImportJSON(ctx context.Context, r io.Reader) (IngestResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return IngestResult{}, apperr.ParseWrap("import json", err)
	}
	decoded, err := codec.DecodeJSON(data)
	if err != nil {
		return IngestResult{}, err
	}
	res := IngestResult{SkippedSets: decoded.SkippedSets}
	accepted := make([]match.Record, 0, len(decoded.Records))
	for i, rec := range decoded.Records {
		if rec.ID == "" {
			res.reject(i, apperr.Validation("id is required"))
			continue
		}
		prepared, err := match.Prepare(rec)
		if err != nil {
			res.reject(i, err)
			continue
		}
		accepted = append(accepted, prepared)
	}
	return s.ingest(ctx, KindJSON, accepted, res)
}

// ImportCSV merges a CSV document into the collection. Rows without an id get a
// fresh one; malformed set tokens are skipped and counted.
func (s *MatchService) ImportCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	decoded, err := codec.DecodeCSV(r)
	if err != nil {
		return IngestResult{}, err
	}
	res := IngestResult{SkippedSets: decoded.SkippedSets}
	accepted := make([]match.Record, 0, len(decoded.Records))
	for i, rec := range decoded.Records {
		prepared, err := match.Prepare(rec)
		if err != nil {
			res.reject(i, err)
			continue
		}
		accepted = append(accepted, prepared)
	}
	return s.ingest(ctx, KindCSV, accepted, res)
}

func (res *IngestResult) reject(i int, err error) {
	res.Rejected++
	res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", i+1, err))
}

func (s *MatchService) ingest(ctx context.Context, kind string, accepted []match.Record, res IngestResult) (IngestResult, error) {
	if len(accepted) > 0 {
		merged, err := s.AddAll(ctx, accepted)
		if err != nil {
			return IngestResult{}, err
		}
		res.Imported = len(accepted)
		res.Added = merged.Added
		res.Replaced = merged.Replaced
	}
	logging.Info(s.log).
		Add(logging.Str("format", kind)).
		Add(logging.Count("imported", res.Imported)).
		Add(logging.Count("added", res.Added)).
		Add(logging.Count("replaced", res.Replaced)).
		Add(logging.Count("rejected", res.Rejected)).
		Add(logging.Count("skipped_sets", res.SkippedSets)).
		Msg("import finished")
	return res, nil
}
