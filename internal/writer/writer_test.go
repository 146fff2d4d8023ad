package writer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

func TestNew(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			if _, err := New(format); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	if _, err := New("pdf"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestTableWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"bureau: transunion",
		"pulled_on: 2024-10-01",
		"counts: installment=1, revolving=1",
		"utilization: 0.00",
		"Creditor    | Kind        | Status  | Limit   | Balance",
		"------------+-------------+---------+---------+--------",
		"CAPITAL ONE | revolving   | current | $35,000 | $1,109 ",
		"SANTANDER   | installment | paid    | -       | $12,000",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTableWriter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableWriter{}).Write(&buf, models.NewReport(models.BureauEquifax)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	if strings.Contains(output, "counts:") {
		t.Error("counts line should be omitted without accounts")
	}
	if !strings.Contains(output, "utilization: -") {
		t.Errorf("expected unknown utilization, got %q", output)
	}
}

func TestJSONWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{Indent: "  "}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc["bureau"] != "transunion" {
		t.Errorf("got bureau %v, want transunion", doc["bureau"])
	}
	if doc["pulled_on"] != "2024-10-01" {
		t.Errorf("got pulled_on %v, want 2024-10-01", doc["pulled_on"])
	}
	if _, ok := doc["public_records"].([]any); !ok {
		t.Errorf("public_records should be an empty array, got %v", doc["public_records"])
	}
}

func TestXLSXWriter_Workbook(t *testing.T) {
	f, err := (&XLSXWriter{}).Workbook(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	want := []string{SheetAccounts, SheetInquiries, SheetPublicRecords, SheetSummary}
	got := f.GetSheetList()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got sheets %v, want %v", got, want)
	}

	tests := []struct {
		sheet, cell, want string
	}{
		{SheetAccounts, "A1", "Creditor"},
		{SheetAccounts, "A2", "CAPITAL ONE"},
		{SheetAccounts, "G2", "35000"},
		{SheetAccounts, "G3", ""},
		{SheetInquiries, "A2", "ACME AUTO"},
		{SheetInquiries, "C2", "2024-10-01"},
		{SheetSummary, "B1", "transunion"},
		{SheetSummary, "B6", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.sheet+"!"+tt.cell, func(t *testing.T) {
			v, err := f.GetCellValue(tt.sheet, tt.cell)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != tt.want {
				t.Errorf("got %q, want %q", v, tt.want)
			}
		})
	}
}

func TestWriteToFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteToFile(&XLSXWriter{}, path, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("could not reopen workbook: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(SheetAccounts, "A3"); v != "SANTANDER" {
		t.Errorf("got %q, want SANTANDER", v)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file on disk: %v", err)
	}
}
