package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/nlp"
	"github.com/dgallion1/docrank/internal/segment"
)

// processDocument parses and segments one input. Failures are logged and
// reported in the summary; they never abort the run.
func (a *Analyzer) processDocument(log *slog.Logger, in Input) (DocumentSummary, []doctree.Section) {
	ds := DocumentSummary{Filename: in.Filename}
	log = log.With("document", in.Filename)

	t := time.Now()
	doc, err := a.parseInput(in)
	a.stats.Observe(StageParse, time.Since(t))
	if err != nil {
		log.Error("document extraction failed", "error", err)
		ds.Err = err
		return ds, nil
	}
	ds.Pages = len(doc.Pages)

	doc.Language = a.tk.Language(documentText(doc))
	ds.Language = doc.Language
	if !nlp.IsEnglish(doc.Language) {
		log.Warn("document does not look like English, keyword matching may be poor", "language", doc.Language)
	}

	t = time.Now()
	secs := segment.Segment(doc)
	a.stats.Observe(StageSegment, time.Since(t))
	ds.Sections = len(secs)

	log.Info("document segmented", "pages", ds.Pages, "sections", ds.Sections)
	return ds, secs
}

// parseInput opens and parses one input. A parser panic is reported as an
// error so one bad file cannot take down the run.
func (a *Analyzer) parseInput(in Input) (doc *doctree.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parse: panic: %v", r)
		}
	}()

	p, err := a.parsers(in.Filename)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if in.Data != nil {
		r = bytes.NewReader(in.Data)
	} else {
		f, err := os.Open(in.Path)
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err = p.Parse(r, in.Filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}

// documentText joins page text for language detection.
func documentText(doc *doctree.Document) string {
	var b bytes.Buffer
	for _, p := range doc.Pages {
		b.WriteString(p.Text)
		b.WriteByte('\n')
		if b.Len() > 16*1024 {
			break
		}
	}
	return b.String()
}

// Worker runs queued analysis jobs.
type Worker struct {
	analyzer *Analyzer
	log      *slog.Logger
}

func NewWorker(analyzer *Analyzer, log *slog.Logger) *Worker {
	return &Worker{analyzer: analyzer, log: log}
}

// Process runs the analysis for a job and records its outcome.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	job.SetStatus(StatusRunning, "analyzing")
	res, sum, err := w.analyzer.Run(ctx, job.Request())
	job.ReleaseInputs()
	if err != nil {
		log.Error("analysis failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "analyzing")
		return
	}

	for _, d := range sum.Documents {
		if d.Err != nil {
			job.AddError(fmt.Sprintf("%s: %s", d.Filename, d.Err))
		}
	}
	job.SetResult(res)
	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed", "run_id", sum.RunID, "sections", sum.Sections)
}
