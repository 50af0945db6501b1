package pricesheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/fields"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/learner"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/parser"
	"golang.org/x/sync/errgroup"
)

// ColumnClassifier assigns roles to header labels.
type ColumnClassifier interface {
	ClassifyAll(headers []string) models.ColumnRoles
}

// Trainer retrains the classifier from observed samples.
type Trainer interface {
	Retrain(ctx context.Context, samples []models.Sample, source string) (learner.RetrainResult, error)
}

// FileResult is the outcome of parsing one file in a batch.
type FileResult struct {
	Path    string
	Records []models.ProductRecord
	Err     error
}

// Parser extracts product records from price-list files. It is safe for
// concurrent use.
type Parser struct {
	opts       Options
	classifier ColumnClassifier
	trainer    Trainer
	cache      *parseCache

	mu      sync.Mutex
	pending []models.Sample
	sources []string
}

// New creates a parser. trainer may be nil, in which case SaveLearned is a
// no-op.
func New(c ColumnClassifier, trainer Trainer, opts Options) *Parser {
	return &Parser{
		opts:       opts,
		classifier: c,
		trainer:    trainer,
		cache:      newParseCache(opts.CacheSize),
	}
}

// ParseFile parses every sheet of the file at path and returns the merged
// records in sheet order. brewery overrides the name derived from the file
// name when non-empty. Sheet-level problems yield zero records for that
// sheet; only file-level failures are returned as errors.
func (p *Parser) ParseFile(ctx context.Context, path string, brewery string) ([]models.ProductRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, NewExtractionError(path, "", ComponentOpen, err)
	}
	if info.IsDir() {
		return nil, NewExtractionError(path, "", ComponentOpen, errors.New("is a directory"))
	}
	if limit := p.opts.MaxFileSize; limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %s, limit %s", ErrFileTooLarge, path,
			humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(limit)))
	}
	if _, err := parser.DetectFormat(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewExtractionError(path, "", ComponentRead, err)
	}
	return p.Parse(ctx, path, data, brewery)
}

// Parse parses workbook content. name supplies the format and the default
// brewery.
func (p *Parser) Parse(ctx context.Context, name string, data []byte, brewery string) ([]models.ProductRecord, error) {
	if brewery == "" {
		brewery, _ = fields.BreweryFromFilename(filepath.Base(name))
	}

	key := cacheKey(data, brewery)
	if recs, ok := p.cache.get(key); ok {
		log.Debug().Str("file", name).Int("records", len(recs)).Msg("Using cached parse result")
		return recs, nil
	}

	log.Debug().
		Str("file", name).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Str("brewery", brewery).
		Msg("Parsing price list")

	grids, err := parser.ReadWorkbook(name, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, NewExtractionError(name, "", ComponentOpen, err)
	}

	records := make([]models.ProductRecord, 0)
	var learned []models.Sample
	for i := range grids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, samples := p.parseSheet(&grids[i], i, brewery)
		records = append(records, recs...)
		learned = append(learned, samples...)
	}

	if len(learned) > 0 {
		p.mu.Lock()
		p.pending = append(p.pending, learned...)
		p.sources = append(p.sources, filepath.Base(name))
		p.mu.Unlock()
	}

	p.cache.add(key, records)
	log.Info().Str("file", name).Int("sheets", len(grids)).Int("records", len(records)).Msg("Parsed price list")
	return records, nil
}

// parseSheet extracts the records of one sheet and the header samples it
// contributes for learning.
func (p *Parser) parseSheet(g *models.Grid, sheetIndex int, brewery string) ([]models.ProductRecord, []models.Sample) {
	bounds, ok := parser.DataBounds(g)
	if !ok {
		log.Debug().Str("sheet", g.SheetName).Int("sheet_index", sheetIndex).Msg("Skipping empty sheet")
		return nil, nil
	}

	h := parser.LocateHeader(g, p.opts.Header)
	roles := p.classifier.ClassifyAll(h.Headers)
	recs := parser.ExtractRecords(g, h, roles, brewery, sheetIndex, p.opts.Extract)

	var samples []models.Sample
	if p.opts.ShouldAutoLearn() && h.Detected {
		for col, role := range roles {
			if role == models.RoleIgnore || h.Headers[col] == "" {
				continue
			}
			samples = append(samples, models.Sample{Header: h.Headers[col], Role: role})
		}
	}

	log.Info().
		Str("sheet", g.SheetName).
		Int("sheet_index", sheetIndex).
		Int("header_row", models.SpreadsheetRow(h.Row)).
		Bool("header_detected", h.Detected).
		Str("range", bounds.Range()).
		Int("cells", parser.CountNonEmpty(g, bounds)).
		Int("records", len(recs)).
		Msg("Extracted sheet")
	return recs, samples
}

// ParseFiles parses paths with at most concurrency files in flight and
// returns one result per path in input order. A failing file never stops
// the batch.
func (p *Parser) ParseFiles(ctx context.Context, paths []string, brewery string, concurrency int) []FileResult {
	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			recs, err := p.ParseFile(gctx, path, brewery)
			if err != nil {
				log.Warn().Err(err).Str("file", path).Msg("Skipping file")
			}
			results[i] = FileResult{Path: path, Records: recs, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Pending returns the number of samples collected since the last
// successful SaveLearned.
func (p *Parser) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// SaveLearned hands the collected samples to the trainer. Samples are kept
// for the next call when the trainer skips the batch or fails.
func (p *Parser) SaveLearned(ctx context.Context) (learner.RetrainResult, error) {
	if p.trainer == nil {
		return learner.RetrainResult{Skipped: true}, nil
	}

	p.mu.Lock()
	samples, sources := p.pending, p.sources
	p.pending, p.sources = nil, nil
	p.mu.Unlock()

	res, err := p.trainer.Retrain(ctx, samples, sourceLabel(sources))
	if err != nil || res.Skipped {
		p.mu.Lock()
		p.pending = append(samples, p.pending...)
		p.sources = append(sources, p.sources...)
		p.mu.Unlock()
	}
	return res, err
}

func sourceLabel(sources []string) string {
	uniq := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		uniq[s] = struct{}{}
	}
	names := make([]string, 0, len(uniq))
	for s := range uniq {
		names = append(names, s)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
