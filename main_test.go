package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const equifaxText = `Your Credit Report Summary
Credit Accounts
WELLS FARGO
Account Number: 4000****
Account Type: Revolving
Credit Limit: $10,000
Balance: $2,500
Account Status: Pays As Agreed
Narrative Code: Description
Inquiries
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	report := writeInput(t, "equifax.txt", equifaxText)
	unknown := writeInput(t, "notes.txt", "dear diary\ntoday was fine\n")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "version", args: []string{"-version"}, wantCode: exitOK, wantStdout: "credit-report-parser v"},
		{name: "no inputs", args: nil, wantCode: exitUsage, wantStderr: "Usage:"},
		{name: "bad flag", args: []string{"-nope"}, wantCode: exitUsage},
		{name: "bad format", args: []string{"-format=pdf", report}, wantCode: exitUsage, wantStderr: "unknown output format"},
		{name: "table", args: []string{report}, wantCode: exitOK, wantStdout: "bureau: equifax"},
		{name: "json", args: []string{"-json", report}, wantCode: exitOK, wantStdout: `"bureau": "equifax"`},
		{name: "unknown format", args: []string{unknown}, wantCode: exitUnknown, wantStderr: "dear diary"},
		{name: "missing file", args: []string{"/no/such/report.pdf"}, wantCode: exitFailure, wantStderr: "Error processing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("got exit code %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRun_CSVNextToInput(t *testing.T) {
	report := writeInput(t, "equifax.txt", equifaxText)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-format=csv", report}, &stdout, &stderr); code != exitOK {
		t.Fatalf("got exit code %d, stderr %q", code, stderr.String())
	}

	data, err := os.ReadFile(strings.TrimSuffix(report, ".txt") + ".csv")
	if err != nil {
		t.Fatalf("expected csv output: %v", err)
	}
	if !strings.Contains(string(data), "WELLS FARGO") {
		t.Errorf("expected account row, got %q", data)
	}
}
