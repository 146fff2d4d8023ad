package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// Sheet names in the workbook.
const (
	SheetAccounts      = "Accounts"
	SheetInquiries     = "Inquiries"
	SheetPublicRecords = "Public Records"
	SheetSummary       = "Summary"
)

// XLSXWriter writes a workbook with one sheet per report section.
type XLSXWriter struct{}

func (w *XLSXWriter) Write(out io.Writer, r *models.Report) error {
	f, err := w.Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Workbook builds the in-memory workbook for r.
func (w *XLSXWriter) Workbook(r *models.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	accounts := [][]any{toRow(csvColumns)}
	for _, a := range r.Accounts {
		accounts = append(accounts, []any{
			a.Creditor,
			deref(a.MaskedNumber),
			string(a.Kind),
			string(a.Status),
			formatDate(a.OpenedOn),
			formatDate(a.ClosedOn),
			cellAmount(a.CreditLimit),
			cellAmount(a.HighBalance),
			cellAmount(a.Balance),
			cellAmount(a.ScheduledPayment),
			cellAmount(a.PastDue),
			strings.Join(a.Remarks, "; "),
		})
	}

	inquiries := [][]any{{"Name", "Kind", "Date"}}
	for _, q := range r.Inquiries {
		inquiries = append(inquiries, []any{q.Name, string(q.Kind), q.Date.String()})
	}

	records := [][]any{{"Type", "Date", "Details"}}
	for _, p := range r.PublicRecords {
		text, _ := p.Details["text"].(string)
		records = append(records, []any{p.Type, formatDate(p.Date), text})
	}

	s := r.Summary
	summary := [][]any{
		{"Bureau", string(r.Bureau)},
		{"Pulled On", formatDate(r.PulledOn)},
		{"Total Revolving Limit", s.TotalRevolvingLimit},
		{"Total Revolving Balance", s.TotalRevolvingBalance},
		{"Utilization", cellAmount(s.Utilization)},
		{"Open Cards", s.OpenCards},
		{"Mortgages", s.Mortgages},
		{"Student Loans", s.StudentLoans},
		{"Auto Loans", s.AutoLoans},
	}

	// The default sheet is renamed so the workbook opens on Accounts.
	if err := f.SetSheetName("Sheet1", SheetAccounts); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetInquiries, SheetPublicRecords, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetAccounts, accounts},
		{SheetInquiries, inquiries},
		{SheetPublicRecords, records},
		{SheetSummary, summary},
	}
	for _, sh := range sheets {
		if err := setRows(f, sh.name, sh.rows); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toRow(cols []string) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}

// cellAmount leaves unknown amounts as empty cells.
func cellAmount(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
