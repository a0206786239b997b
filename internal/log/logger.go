// Package log provides progress logging and the final report of a brb run.
// Progress and warnings are written as the run goes; the report is either a
// one-line text summary or the whole run result as JSON.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"brb/internal/config"
	"brb/internal/pipeline"
)

// Report is the JSON form of a finished run.
type Report struct {
	*pipeline.Result
	Error          string        `json:"error,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// Logger prints run progress according to the verbosity settings of a
// Config. It implements pipeline.Logger.
type Logger struct {
	config    *config.Config
	writer    io.Writer
	errWriter io.Writer
	elapsed   time.Duration
}

// New creates a Logger with explicit destinations. Progress lines go to out
// for text reports and to errOut for JSON reports so stdout stays a single
// JSON document. Warnings always go to errOut.
func New(cfg *config.Config, out, errOut io.Writer) *Logger {
	return &Logger{
		config:    cfg,
		writer:    out,
		errWriter: errOut,
	}
}

// Step prints a progress line in verbose mode.
func (l *Logger) Step(format string, args ...any) {
	if !l.config.IsVerbose() {
		return
	}
	w := l.writer
	if l.config.LogFormat == config.LogFormatJSON {
		w = l.errWriter
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Warn prints a recoverable condition unless quiet.
func (l *Logger) Warn(w pipeline.Warning) {
	if !l.config.ShouldLog() {
		return
	}
	if l.config.IsDebug() {
		fmt.Fprintf(l.errWriter, "WARNING [%s]: %s\n", w.Kind, w.Message)
		return
	}
	fmt.Fprintf(l.errWriter, "WARNING: %s\n", w.Message)
}

// SetProcessingTime records the run duration for the report.
func (l *Logger) SetProcessingTime(d time.Duration) {
	l.elapsed = d
}

// WriteReport writes the final report for res. A failed run produces a text
// report only in JSON mode; in text mode the caller prints the error.
func (l *Logger) WriteReport(res *pipeline.Result, runErr error) error {
	if l.config.Quiet {
		return nil
	}

	if l.config.LogFormat == config.LogFormatJSON {
		return l.writeJSONReport(res, runErr)
	}
	if runErr != nil {
		return nil
	}
	return l.writeTextReport(res)
}

func (l *Logger) writeJSONReport(res *pipeline.Result, runErr error) error {
	report := Report{Result: res, ProcessingTime: l.elapsed}
	if runErr != nil {
		report.Error = runErr.Error()
	}

	encoder := json.NewEncoder(l.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (l *Logger) writeTextReport(res *pipeline.Result) error {
	fmt.Fprintf(l.writer, "wrote %d rows to %s\n", res.Rows, res.OutputPath)

	if !l.config.IsVerbose() {
		return nil
	}

	if len(res.Summaries) > 0 {
		fmt.Fprintf(l.writer, "\n%-12s %8s %8s %12s %12s %12s %12s\n",
			"CURVE", "COUNT", "MISSING", "MIN", "MAX", "MEAN", "MEDIAN")
		for _, s := range res.Summaries {
			fmt.Fprintf(l.writer, "%-12s %8d %8d %12.4g %12.4g %12.4g %12.4g\n",
				s.Name, s.Count, s.Missing, s.Min, s.Max, s.Mean, s.Median)
		}
	}

	if l.config.IsDebug() {
		fmt.Fprintf(l.writer, "\nColumns: %v\n", res.Columns)
		fmt.Fprintf(l.writer, "Warnings: %d\n", len(res.Warnings))
		fmt.Fprintf(l.writer, "Processing time: %v\n", l.elapsed)
	}
	return nil
}
