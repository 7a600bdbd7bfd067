package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/docrank/internal/chunker"
	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/extract"
	"github.com/dgallion1/docrank/internal/keywords"
	"github.com/dgallion1/docrank/internal/nlp"
	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/rank"
)

// Input is one document to analyze. Data takes precedence over Path.
type Input struct {
	Filename string
	Path     string
	Data     []byte
}

// Request is a single analysis run.
type Request struct {
	Inputs  []Input
	Persona string
	Job     string
}

// Options tune an Analyzer.
type Options struct {
	Parser             parser.Options
	Chunk              chunker.Config
	Limits             output.Limits
	SubsectionSections int
	MaxFeatures        int
}

// OptionsFromConfig maps loaded configuration onto analyzer options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Parser: parser.Options{
			FallbackPdftotext: cfg.PDFFallbackPdftotext,
			ValidatePDF:       cfg.PDFValidate,
		},
		Chunk: chunker.Config{
			WindowSize:    cfg.WindowSize,
			MaxPerSection: cfg.MaxSubsections,
		},
		Limits: output.Limits{
			TopSections:     cfg.TopSections,
			MaxExcerptChars: cfg.MaxExcerptChars,
		},
		SubsectionSections: cfg.SubsectionSections,
		MaxFeatures:        cfg.MaxFeatures,
	}
}

// ParserFunc picks a parser for a filename.
type ParserFunc func(filename string) (parser.Parser, error)

// Analyzer runs the ranking pipeline over a set of documents. It holds no
// per-run state, so one Analyzer may serve concurrent runs.
type Analyzer struct {
	tk      *nlp.Toolkit
	log     *slog.Logger
	opts    Options
	parsers ParserFunc
	stats   *StageStats
	now     func() time.Time
}

// NewAnalyzer returns an Analyzer. stats may be nil.
func NewAnalyzer(tk *nlp.Toolkit, log *slog.Logger, opts Options, stats *StageStats) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	if opts.SubsectionSections <= 0 {
		opts.SubsectionSections = 20
	}
	if stats == nil {
		stats = NewStageStats(time.Hour)
	}
	return &Analyzer{
		tk:   tk,
		log:  log,
		opts: opts,
		parsers: func(filename string) (parser.Parser, error) {
			return parser.ForFile(filename, opts.Parser)
		},
		stats: stats,
		now:   time.Now,
	}
}

// WithParsers replaces the parser lookup, mainly for tests.
func (a *Analyzer) WithParsers(fn ParserFunc) *Analyzer {
	a.parsers = fn
	return a
}

// Stats returns the stage latency recorder.
func (a *Analyzer) Stats() *StageStats {
	return a.stats
}

// Summary describes what a run did, for logs and console output.
type Summary struct {
	RunID     string
	Documents []DocumentSummary
	Sections  int
	Top       []doctree.Section
	Elapsed   time.Duration
}

// DocumentSummary reports per-document extraction results.
type DocumentSummary struct {
	Filename string
	Pages    int
	Sections int
	Language string
	Err      error
}

// Run analyzes req.Inputs in order and returns the assembled result.
// Per-document failures are logged and contribute no sections.
func (a *Analyzer) Run(ctx context.Context, req Request) (*output.Result, *Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := a.log.With("run_id", runID)
	log.Info("analysis started", "documents", len(req.Inputs), "persona", req.Persona, "job", req.Job)

	sum := &Summary{RunID: runID}
	var (
		sections []doctree.Section
		names    []string
	)
	for _, in := range req.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("analysis cancelled: %w", err)
		}
		names = append(names, in.Filename)

		ds, secs := a.processDocument(log, in)
		sum.Documents = append(sum.Documents, ds)
		sections = append(sections, secs...)
	}
	sum.Sections = len(sections)

	kw := keywords.NewExtractor(a.tk)
	persona := kw.Persona(req.Persona)
	job := kw.Job(req.Job)
	log.Debug("keywords extracted", "persona", persona.String(), "job", job.String())

	t := time.Now()
	ranked := rank.NewRanker(a.tk, log, a.opts.MaxFeatures).Rank(sections, persona, job, req.Job)
	a.stats.Observe(StageRank, time.Since(t))

	t = time.Now()
	ranked = extract.NewExtractor(a.tk, a.opts.Chunk).ForSections(ranked, a.opts.SubsectionSections, persona, job)
	a.stats.Observe(StageExtract, time.Since(t))

	res := output.Assemble(ranked, names, req.Persona, req.Job, a.opts.Limits, a.now())

	top := len(res.ExtractedSections)
	sum.Top = ranked[:top]
	sum.Elapsed = time.Since(start)
	a.stats.Observe(StageTotal, sum.Elapsed)

	log.Info("analysis finished",
		"sections", len(sections),
		"extracted", len(res.ExtractedSections),
		"subsections", len(res.SubSectionAnalysis),
		"elapsed_ms", sum.Elapsed.Milliseconds(),
	)
	return res, sum, nil
}
