package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/credit-report-parser/internal/api"
	"github.com/insightdelivered/credit-report-parser/internal/config"
	"github.com/insightdelivered/credit-report-parser/internal/extractor"
	"github.com/insightdelivered/credit-report-parser/internal/pipeline"
	"github.com/insightdelivered/credit-report-parser/internal/writer"
)

const version = "1.0.0"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitUnknown = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	format     string
	json       bool
	output     string
	configPath string
	serve      bool
	addr       string
	workers    int
	version    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("credit-report-parser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.format, "format", "", "Output format: table, json, csv, xlsx (default from config, else table)")
	fs.BoolVar(&opts.json, "json", false, "Shorthand for -format=json")
	fs.StringVar(&opts.output, "output", "", "Output file path (csv/xlsx default to the input name with the format's extension)")
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&opts.serve, "serve", false, "Run the HTTP upload server instead of parsing files")
	fs.StringVar(&opts.addr, "addr", "", "Server listen address (overrides config)")
	fs.IntVar(&opts.workers, "workers", 0, "Documents parsed concurrently (overrides config)")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Credit Report Parser
by Insight Delivered

Parses TransUnion, Experian and Equifax consumer credit report PDFs
into a normalized report with accounts, inquiries and public records.

Usage:
  credit-report-parser [flags] <report.pdf|report.txt> [more ...]
  credit-report-parser -serve [-addr=:8080]

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  # Summary table on stdout
  credit-report-parser report.pdf

  # Full JSON document
  credit-report-parser -json report.pdf

  # Spreadsheet next to each input
  credit-report-parser -format=xlsx jan.pdf feb.pdf

Exit codes:
  0  success
  1  extraction, parse or write failure
  2  usage error
  3  report format not recognised
`)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "credit-report-parser v%s\n", version)
		return exitOK
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitUsage
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	switch {
	case opts.json:
		cfg.Output.Format = "json"
	case opts.format != "":
		cfg.Output.Format = strings.ToLower(opts.format)
	}

	logger := config.NewLogger(cfg.Log, stderr)
	p := pipeline.New(extractor.New(cfg.Extract.MinChars, logger), logger)

	if opts.serve {
		return serve(cfg, p, logger, stderr)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	w, err := writer.New(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}
	if opts.output != "" && fs.NArg() > 1 {
		fmt.Fprintln(stderr, "-output can only be used with a single input file")
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := p.ParseFiles(ctx, fs.Args(), cfg.Workers)
	if err != nil {
		fmt.Fprintf(stderr, "Interrupted: %v\n", err)
		return exitFailure
	}

	code := exitOK
	for _, res := range results {
		if c := report(res, w, cfg.Output.Format, opts.output, stdout, stderr); code == exitOK {
			code = c
		}
	}
	return code
}

// report writes one result and returns its exit code.
func report(res pipeline.Result, w writer.Writer, format, output string, stdout, stderr io.Writer) int {
	if res.Err != nil {
		var unknown *pipeline.UnknownFormatError
		if errors.As(res.Err, &unknown) {
			fmt.Fprintf(stderr, "%s: %v\n", res.Path, res.Err)
			fmt.Fprintln(stderr, unknown.Head)
			return exitUnknown
		}
		fmt.Fprintf(stderr, "Error processing %s: %v\n", res.Path, res.Err)
		return exitFailure
	}

	outPath := output
	if outPath == "" && (format == "csv" || format == "xlsx") {
		outPath = strings.TrimSuffix(res.Path, filepath.Ext(res.Path)) + "." + format
	}
	if outPath == "" {
		if err := w.Write(stdout, res.Report); err != nil {
			fmt.Fprintf(stderr, "Error writing %s: %v\n", res.Path, err)
			return exitFailure
		}
		return exitOK
	}

	if err := writer.WriteToFile(w, outPath, res.Report); err != nil {
		fmt.Fprintf(stderr, "Error writing %s: %v\n", res.Path, err)
		return exitFailure
	}
	fmt.Fprintf(stderr, "%s: %s report, %d account(s) -> %s\n",
		res.Path, res.Report.Bureau, len(res.Report.Accounts), outPath)
	return exitOK
}

func serve(cfg *config.Config, p *pipeline.Pipeline, logger *logrus.Logger, stderr io.Writer) int {
	h := &api.Handler{
		Pipeline:       p,
		Logger:         logger,
		Version:        version,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}
	app := h.NewApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	logger.WithField("addr", cfg.Server.Addr).Info("listening")
	if err := app.Listen(cfg.Server.Addr); err != nil {
		fmt.Fprintf(stderr, "Server error: %v\n", err)
		return exitFailure
	}
	return exitOK
}
