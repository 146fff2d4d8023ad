// Package pipeline runs a credit report through extraction, cleaning,
// classification, bureau parsing and summary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/insightdelivered/credit-report-parser/internal/extractor"
	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/parser"
	"github.com/insightdelivered/credit-report-parser/internal/summary"
)

// HeadLines is how many cleaned lines an UnknownFormatError carries.
const HeadLines = 20

// UnknownFormatError reports a document that matched no bureau. Head holds
// the first cleaned lines for diagnosis.
type UnknownFormatError struct {
	Head   string
	Scores parser.Scores
}

func (e *UnknownFormatError) Error() string {
	return parser.ErrUnknownFormat.Error()
}

func (e *UnknownFormatError) Unwrap() error {
	return parser.ErrUnknownFormat
}

// Pipeline turns documents into reports.
type Pipeline struct {
	Extractor *extractor.Extractor
	Logger    *logrus.Logger
}

// New returns a Pipeline using ext for PDF text extraction.
func New(ext *extractor.Extractor, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if ext == nil {
		ext = extractor.New(extractor.DefaultMinChars, logger)
	}
	return &Pipeline{Extractor: ext, Logger: logger}
}

// ParseFile parses the PDF at path. Files ending in .txt are taken as
// already-extracted text.
func (p *Pipeline) ParseFile(path string) (*models.Report, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return p.parse(string(data), logrus.Fields{"path": path})
	}
	doc, err := p.Extractor.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return p.parseDocument(doc, logrus.Fields{"path": path})
}

// ParseBytes parses an in-memory PDF.
func (p *Pipeline) ParseBytes(data []byte) (*models.Report, error) {
	doc, err := p.Extractor.ExtractBytes(data)
	if err != nil {
		return nil, err
	}
	return p.parseDocument(doc, logrus.Fields{"bytes": len(data)})
}

// ParseText parses already-extracted full text, page delimiters included.
func (p *Pipeline) ParseText(fullText string) (*models.Report, error) {
	return p.parse(fullText, logrus.Fields{"chars": len(fullText)})
}

func (p *Pipeline) parseDocument(doc *extractor.Document, fields logrus.Fields) (*models.Report, error) {
	fields["engine"] = doc.Engine
	fields["pages"] = len(doc.Pages)
	return p.parse(doc.FullText, fields)
}

func (p *Pipeline) parse(fullText string, fields logrus.Fields) (*models.Report, error) {
	log := p.Logger.WithFields(fields)
	text := extractor.Clean(fullText)

	bureau, scores, err := parser.Classify(text)
	if err != nil {
		if errors.Is(err, parser.ErrUnknownFormat) {
			log.WithField("scores", scores).Debug("no bureau signals found")
			return nil, &UnknownFormatError{Head: extractor.Head(text, HeadLines), Scores: scores}
		}
		return nil, err
	}
	log = log.WithFields(logrus.Fields{"bureau": bureau, "scores": scores})
	log.Debug("classified report")

	bp, err := parser.New(bureau)
	if err != nil {
		return nil, err
	}
	report, err := bp.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s report: %w", bp.BureauName(), err)
	}

	report.Bureau = bureau
	report.BureauScores = map[models.Bureau]int(scores)
	summary.Apply(report)

	log.WithFields(logrus.Fields{
		"accounts":       len(report.Accounts),
		"inquiries":      len(report.Inquiries),
		"public_records": len(report.PublicRecords),
	}).Debug("parsed report")
	return report, nil
}

// Result is the outcome for one document of a batch.
type Result struct {
	Path   string
	Report *models.Report
	Err    error
}

// ParseFiles parses independent documents with up to workers running at
// once. Results keep the input order; a failed document does not stop the
// others. The returned error is only set when ctx is cancelled.
func (p *Pipeline) ParseFiles(ctx context.Context, paths []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			report, err := p.ParseFile(path)
			results[i] = Result{Path: path, Report: report, Err: err}
			if err != nil {
				p.Logger.WithFields(logrus.Fields{"path": path, "error": err}).Warn("report failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
