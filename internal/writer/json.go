package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// JSONWriter writes the full report document.
type JSONWriter struct {
	Indent string
}

func (w *JSONWriter) Write(out io.Writer, r *models.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", w.Indent)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
