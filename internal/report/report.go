// Package report renders scan results into the supported output formats:
// raw text, structured JSON, Markdown, and HTML. Writers are pure
// transformations of a finished scan result; the only failure mode is
// filesystem I/O.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrios/netrecon/internal/errors"
	"github.com/mrios/netrecon/internal/logging"
	"github.com/mrios/netrecon/internal/parse"
	"github.com/mrios/netrecon/internal/scanning"
)

const (
	reportDirPerm  = 0o750
	reportFilePerm = 0o644

	timestampLayout = "20060102_150405"
	headerRule      = 60
)

// Metadata is the metadata block of the JSON report schema.
type Metadata struct {
	Target          string    `json:"target"`
	Profile         string    `json:"profile"`
	Timestamp       time.Time `json:"timestamp"`
	Command         string    `json:"command"`
	Success         bool      `json:"success"`
	ReturnCode      int       `json:"return_code"`
	DurationSeconds float64   `json:"duration_seconds"`
	Error           string    `json:"error,omitempty"`
}

// Document is the on-disk JSON report schema.
type Document struct {
	ReportID   string         `json:"report_id"`
	Metadata   Metadata       `json:"metadata"`
	RawOutput  string         `json:"raw_output"`
	RawErrors  string         `json:"raw_errors"`
	Statistics *parse.Summary `json:"statistics"`
}

// NewDocument maps a scan result onto the JSON schema.
func NewDocument(result *scanning.Result) *Document {
	return &Document{
		ReportID: result.ReportID,
		Metadata: Metadata{
			Target:          result.Target,
			Profile:         result.Profile,
			Timestamp:       result.Timestamp,
			Command:         result.Command,
			Success:         result.Success,
			ReturnCode:      result.ReturnCode,
			DurationSeconds: result.Duration.Seconds(),
			Error:           result.Error,
		},
		RawOutput:  result.RawOutput,
		RawErrors:  result.RawErrors,
		Statistics: result.Stats,
	}
}

// Writer emits report files for scan results.
type Writer struct {
	dir     string
	formats []string
	log     *logging.Logger
}

// NewWriter creates a report writer for the given output directory and
// format list (txt, json, md, html).
func NewWriter(dir string, formats []string) *Writer {
	return &Writer{
		dir:     dir,
		formats: formats,
		log:     logging.Default().WithComponent("report"),
	}
}

// BaseName returns the shared file stem for one scan's reports:
// <sanitized-target>_<profile>_<timestamp>.
func BaseName(result *scanning.Result) string {
	replacer := strings.NewReplacer("/", "_", ".", "_", ":", "_")
	safeTarget := replacer.Replace(result.Target)
	return fmt.Sprintf("%s_%s_%s", safeTarget, result.Profile,
		result.Timestamp.Format(timestampLayout))
}

// WriteAll writes one file per configured format and returns the paths
// written, in format order.
func (w *Writer) WriteAll(result *scanning.Result) ([]string, error) {
	if err := os.MkdirAll(w.dir, reportDirPerm); err != nil {
		return nil, errors.Wrap(errors.CodeReportWrite,
			"failed to create report directory", err)
	}

	base := filepath.Join(w.dir, BaseName(result))
	var written []string

	for _, format := range w.formats {
		var (
			path string
			err  error
		)
		switch format {
		case "txt":
			path = base + ".txt"
			err = w.writeText(path, result)
		case "json":
			path = base + ".json"
			err = w.writeJSON(path, result)
		case "md":
			path = base + ".md"
			err = w.writeMarkdown(path, result)
		case "html":
			path = base + "_report.html"
			err = w.writeHTML(path, result)
		default:
			return written, errors.New(errors.CodeReportWrite,
				fmt.Sprintf("unknown report format %q", format))
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	w.log.InfoReport("reports written", "count", len(written), "base", base)
	return written, nil
}

// writeText writes the framed header plus the tool's raw output.
func (w *Writer) writeText(path string, result *scanning.Result) error {
	var b strings.Builder
	rule := strings.Repeat("=", headerRule)

	b.WriteString("Network Security Scan Report\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Target: %s\n", result.Target)
	fmt.Fprintf(&b, "Profile: %s\n", result.Profile)
	fmt.Fprintf(&b, "Timestamp: %s\n", result.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Command: %s\n", result.Command)
	fmt.Fprintf(&b, "Success: %t\n", result.Success)
	b.WriteString(rule + "\n\n")

	if result.RawOutput != "" {
		b.WriteString(result.RawOutput)
	} else {
		b.WriteString("No scan output available\n")
	}

	if result.RawErrors != "" {
		b.WriteString("\n" + rule + "\nERRORS/WARNINGS:\n" + rule + "\n")
		b.WriteString(result.RawErrors)
	}

	return w.writeFile(path, []byte(b.String()))
}

// writeJSON writes the structured report document.
func (w *Writer) writeJSON(path string, result *scanning.Result) error {
	data, err := json.MarshalIndent(NewDocument(result), "", "    ")
	if err != nil {
		return errors.Wrap(errors.CodeReportWrite, "failed to encode JSON report", err)
	}
	return w.writeFile(path, append(data, '\n'))
}

func (w *Writer) writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, reportFilePerm); err != nil {
		return errors.Wrap(errors.CodeReportWrite,
			fmt.Sprintf("failed to write %s", filepath.Base(path)), err)
	}
	return nil
}

// ReadJSON loads a previously written JSON report document.
func ReadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse report JSON: %w", err)
	}
	return doc, nil
}
