package parser

import (
	"fmt"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// Parser defines the interface for bureau-specific report parsers.
type Parser interface {
	// Parse takes the cleaned report text and returns the structured report.
	// Fields that cannot be found are left empty; Parse does not fail on
	// unexpected layouts.
	Parse(text string) (*models.Report, error)
	// BureauName returns the human-readable bureau name.
	BureauName() string
}

// New returns the appropriate parser for the given bureau.
func New(bureau models.Bureau) (Parser, error) {
	switch bureau {
	case models.BureauTransUnion:
		return &TransUnionParser{}, nil
	case models.BureauExperian:
		return &ExperianParser{}, nil
	case models.BureauEquifax:
		return &EquifaxParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported bureau: %q", bureau)
	}
}

// AutoDetect classifies text and returns the matching parser.
func AutoDetect(text string) (Parser, Scores, error) {
	bureau, scores, err := Classify(text)
	if err != nil {
		return nil, scores, err
	}
	p, err := New(bureau)
	return p, scores, err
}

// appendChunks adds the non-nil chunks to the report's audit trail.
func appendChunks(r *models.Report, chunks ...[]string) {
	for _, c := range chunks {
		r.RawChunks = append(r.RawChunks, c...)
	}
}
