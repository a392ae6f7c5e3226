// Package pipeline orchestrates one complete run: segment the amendment
// book, classify each amendment, and attribute the earmarks to
// legislators. Parsed artifacts are cached per (fiscal year, chamber)
// and never expire; classification and attribution are cheap enough to
// redo every run while thresholds are being tuned.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beaconhilldata/earmarker/internal/attribute"
	"github.com/beaconhilldata/earmarker/internal/cache"
	"github.com/beaconhilldata/earmarker/internal/classify"
	"github.com/beaconhilldata/earmarker/internal/llm"
	"github.com/beaconhilldata/earmarker/internal/model"
	"github.com/beaconhilldata/earmarker/internal/names"
	"github.com/beaconhilldata/earmarker/internal/segment"
)

// Pipeline wires the stages together. Construct one per run or share
// across runs; all stages are safe for concurrent use except the cache
// write path, which is last-write-wins on identical content.
type Pipeline struct {
	cfg        *model.Config
	log        zerolog.Logger
	segmenter  *segment.Segmenter
	classifier *classify.Classifier
	attributor *attribute.Attributor
	members    []model.Legislator
	assist     *llm.Classifier
	store      cache.Cache
}

// New builds a pipeline from configuration and a roster.
func New(cfg *model.Config, members []model.Legislator, log zerolog.Logger) (*Pipeline, error) {
	p := &Pipeline{
		cfg:        cfg,
		log:        log,
		segmenter:  segment.New(log),
		classifier: classify.New(cfg.Classify),
		members:    members,
	}

	norm := names.New(cfg.Names.ExtraNicknames, cfg.Names.ExtraOverrides)
	p.attributor = attribute.New(cfg.Attribute, norm, members, log)

	if cfg.LLM.Enabled {
		p.assist = llm.New(cfg.LLM, log)
	}

	if cfg.Cache.Enabled {
		store, err := cache.Open(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		p.store = store
	}

	return p, nil
}

// Input is everything one run consumes: the amendment book pages and,
// optionally, the sponsor index pages for the same fiscal year and
// chamber.
type Input struct {
	Book         model.Document
	SponsorPages []string
}

// Run executes the full pass and returns the report.
func (p *Pipeline) Run(ctx context.Context, in Input) (*model.RunReport, error) {
	if in.Book.Chamber != model.ChamberHouse && in.Book.Chamber != model.ChamberSenate {
		return nil, fmt.Errorf("unknown chamber %q", in.Book.Chamber)
	}

	report := &model.RunReport{
		RunID:      uuid.NewString(),
		FiscalYear: in.Book.FiscalYear,
		Chamber:    in.Book.Chamber,
		StartedAt:  time.Now().UTC(),
	}

	seg := p.segmentCached(&in.Book)
	report.AmendmentsFound = len(seg.Amendments)
	report.PagesFailed = seg.PagesFailed

	index := p.sponsorIndexCached(in.Book.FiscalYear, in.Book.Chamber, in.SponsorPages)

	earmarks := p.classifyAll(ctx, seg.Amendments)
	report.EarmarksFound = len(earmarks)

	report.Index = p.attributor.Attribute(earmarks, index)
	report.Summaries = attribute.Summarize(report.Index, p.members)

	p.log.Info().
		Str("run_id", report.RunID).
		Int("fiscal_year", report.FiscalYear).
		Str("chamber", string(report.Chamber)).
		Int("amendments", report.AmendmentsFound).
		Int("earmarks", report.EarmarksFound).
		Msg("run complete")

	return report, nil
}

// segmentCached returns the segmentation result, from cache when a
// previous run already parsed this book.
func (p *Pipeline) segmentCached(doc *model.Document) segment.Result {
	key := cache.Key("amendments", doc.FiscalYear, string(doc.Chamber))

	if p.store != nil {
		if data, found := p.store.Get(key); found {
			var cached segment.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				p.log.Debug().Str("chamber", string(doc.Chamber)).Msg("using cached parsed amendments")
				return cached
			}
			// A corrupt entry is dropped and reparsed.
			_ = p.store.Delete(key)
		}
	}

	res := p.segmenter.Segment(doc)

	if p.store != nil && len(res.Amendments) > 0 {
		if data, err := json.Marshal(res); err == nil {
			if err := p.store.Set(key, data, cache.NoExpiry); err != nil {
				p.log.Warn().Err(err).Msg("cache write failed")
			}
		}
	}
	return res
}

func (p *Pipeline) sponsorIndexCached(fiscalYear int, chamber model.Chamber, pages []string) model.SponsorIndex {
	key := cache.Key("sponsor_index", fiscalYear, string(chamber))

	if p.store != nil {
		if data, found := p.store.Get(key); found {
			var cached model.SponsorIndex
			if err := json.Unmarshal(data, &cached); err == nil {
				p.log.Debug().Str("chamber", string(chamber)).Msg("using cached sponsor index")
				return cached
			}
			_ = p.store.Delete(key)
		}
	}

	index := segment.ParseSponsorIndex(pages)

	if p.store != nil && len(index) > 0 {
		if data, err := json.Marshal(index); err == nil {
			if err := p.store.Set(key, data, cache.NoExpiry); err != nil {
				p.log.Warn().Err(err).Msg("cache write failed")
			}
		}
	}
	return index
}

// classifyAll annotates every amendment and returns only the earmarks.
// The model assist runs on low-confidence decisions and wins only when
// it is more confident than the deterministic result.
func (p *Pipeline) classifyAll(ctx context.Context, amendments []model.AmendmentRecord) []model.AmendmentRecord {
	assist := p.assist
	if assist != nil && !assist.IsAvailable(ctx) {
		assist = nil
	}

	var earmarks []model.AmendmentRecord
	for i := range amendments {
		rec := amendments[i]
		result := p.classifier.Classify(&rec)

		if assist != nil && result.Confidence < p.cfg.LLM.ConfidenceThreshold {
			llmResult, err := assist.Classify(ctx, rec.Description, rec.Amount)
			if err != nil {
				p.log.Warn().Err(err).Str("amendment", rec.AmendmentNumber).Msg("llm assist failed")
			} else if llmResult.Confidence > result.Confidence {
				result = *llmResult
			}
		}

		rec.Classification = &result
		if result.IsEarmark {
			earmarks = append(earmarks, rec)
		}
	}
	return earmarks
}

// ClearCache drops the parsed artifacts for a fiscal year and chamber,
// forcing the next run to reparse.
func (p *Pipeline) ClearCache(fiscalYear int, chamber model.Chamber) error {
	if p.store == nil {
		return nil
	}
	for _, kind := range []string{"amendments", "sponsor_index"} {
		if err := p.store.Delete(cache.Key(kind, fiscalYear, string(chamber))); err != nil {
			p.log.Debug().Err(err).Str("kind", kind).Msg("cache delete")
		}
	}
	return nil
}
