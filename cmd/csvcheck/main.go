// Command csvcheck validates dataset files from the command line.
//
// Usage:
//
//	csvcheck -dataset enrolment [-encoding windows-1252] [-json] file...
//
// Each file is read, parsed against the dataset's required columns and
// validated. The exit status is 1 if any file is invalid or unreadable and
// 2 on usage errors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/csvingest/internal/config"
	"github.com/JonMunkholm/csvingest/internal/core"
	_ "github.com/JonMunkholm/csvingest/internal/core/datasets" // Register all datasets
	"github.com/JonMunkholm/csvingest/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// fileReport is the outcome for one path.
type fileReport struct {
	Path   string             `json:"path"`
	Result *core.IngestResult `json:"result,omitempty"`
	Error  *core.UserMessage  `json:"error,omitempty"`

	err error
}

func (r fileReport) ok() bool {
	return r.err == nil && r.Result != nil && r.Result.Valid
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csvcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataset := fs.String("dataset", "", "dataset key: "+datasetKeys())
	encoding := fs.String("encoding", "", "text encoding: "+strings.Join(core.SupportedEncodings(), ", "))
	asJSON := fs.Bool("json", false, "print results as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *dataset == "" || fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: csvcheck -dataset <key> [-encoding <name>] [-json] file...")
		return 2
	}
	if _, err := core.Lookup(*dataset); err != nil {
		fmt.Fprintf(stderr, "csvcheck: %v (known: %s)\n", err, datasetKeys())
		return 2
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "csvcheck: %v\n", err)
		return 2
	}
	// Logs go to stderr so stdout stays machine-readable.
	slog.SetDefault(logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format))

	svc, err := core.NewService(core.ServiceOptions{
		MaxFileSize:     cfg.Ingest.MaxFileSize,
		MaxConcurrent:   cfg.Ingest.MaxConcurrent,
		MaxWaitTime:     cfg.Ingest.MaxWaitTime,
		DefaultEncoding: cfg.Ingest.DefaultEncoding,
	})
	if err != nil {
		fmt.Fprintf(stderr, "csvcheck: %v\n", err)
		return 2
	}

	reports := checkFiles(context.Background(), svc, *dataset, *encoding, fs.Args(), cfg.Ingest.MaxConcurrent)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			fmt.Fprintf(stderr, "csvcheck: %v\n", err)
			return 1
		}
	} else {
		for _, r := range reports {
			printReport(stdout, r)
		}
	}

	for _, r := range reports {
		if !r.ok() {
			return 1
		}
	}
	return 0
}

// checkFiles ingests every path, at most limit at a time. Reports keep the
// order of paths.
func checkFiles(ctx context.Context, svc *core.Service, dataset, encoding string, paths []string, limit int) []fileReport {
	reports := make([]fileReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			reports[i] = checkFile(ctx, svc, dataset, encoding, path)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

func checkFile(ctx context.Context, svc *core.Service, dataset, encoding, path string) fileReport {
	report := fileReport{Path: path}

	f, err := os.Open(path)
	if err != nil {
		report.err = &core.ReadError{Name: path, Err: err}
	} else {
		defer f.Close()
		report.Result, report.err = svc.Ingest(ctx, dataset, f, encoding)
	}

	if report.err != nil {
		msg := core.MapError(report.err)
		report.Error = &msg
	}
	return report
}

func printReport(w io.Writer, r fileReport) {
	switch {
	case r.err != nil:
		fmt.Fprintf(w, "%s: ERROR %s\n", r.Path, core.FormatUserError(r.err))
	case r.Result.Valid:
		fmt.Fprintf(w, "%s: OK (%d rows)\n", r.Path, len(r.Result.Parse.Data))
	default:
		fmt.Fprintf(w, "%s: INVALID\n", r.Path)
		for _, e := range r.Result.Errors() {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

func datasetKeys() string {
	var keys []string
	for _, ds := range core.All() {
		keys = append(keys, ds.Key)
	}
	return strings.Join(keys, ", ")
}
