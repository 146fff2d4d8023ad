// Package writer renders parsed reports as a text table, JSON, CSV or XLSX.
package writer

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// Writer renders a report to out.
type Writer interface {
	Write(out io.Writer, r *models.Report) error
}

// Formats lists the accepted output format names.
var Formats = []string{"table", "json", "csv", "xlsx"}

// New returns the writer for format.
func New(format string) (Writer, error) {
	switch format {
	case "table", "":
		return &TableWriter{}, nil
	case "json":
		return &JSONWriter{Indent: "  "}, nil
	case "csv":
		return &CSVWriter{IncludeHeader: true}, nil
	case "xlsx":
		return &XLSXWriter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (supported: table, json, csv, xlsx)", format)
}

// WriteToFile renders r with w into a new file at path.
func WriteToFile(w Writer, path string, r *models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	return strconv.FormatFloat(*amount, 'f', 2, 64)
}

func formatDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
