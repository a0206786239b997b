package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"brb/internal/config"
	"brb/internal/dataset"
	brberrors "brb/internal/errors"
	"brb/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(cfg *config.Config) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(cfg, &out, &errOut), &out, &errOut
}

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Input:      "well.las",
		WellName:   "15/9-F-1 C",
		Identifier: "15!9-F-1_C",
		OutputPath: "15!9-F-1_C.csv",
		Rows:       5,
		Columns:    []string{"DEPT", "GR"},
		Warnings:   []pipeline.Warning{},
		Summaries: []dataset.CurveSummary{
			{Name: "DEPT", Count: 5, Min: 3000, Max: 3000.5, Mean: 3000.25, Median: 3000.25},
			{Name: "GR", Count: 5, Min: 45.1, Max: 52.8, Mean: 49.02, Median: 49.9},
		},
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		name      string
		config    *config.Config
		expectOut string
		expectErr string
	}{
		{
			name:   "default is silent",
			config: &config.Config{LogFormat: config.LogFormatText},
		},
		{
			name:      "verbose text",
			config:    &config.Config{Verbose: true, LogFormat: config.LogFormatText},
			expectOut: "reading well.las\n",
		},
		{
			name:      "verbose json goes to stderr",
			config:    &config.Config{Verbose: true, LogFormat: config.LogFormatJSON},
			expectErr: "reading well.las\n",
		},
		{
			name:   "quiet wins",
			config: &config.Config{Debug: true, Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, out, errOut := newTestLogger(tt.config)
			logger.Step("reading %s", "well.las")

			assert.Equal(t, tt.expectOut, out.String())
			assert.Equal(t, tt.expectErr, errOut.String())
		})
	}
}

func TestWarn(t *testing.T) {
	w := pipeline.Warning{
		Kind:    brberrors.ErrTypeUnknownColumn,
		Message: "no such column NPHI",
		Err:     brberrors.NewUnknownColumnError("NPHI"),
	}

	tests := []struct {
		name   string
		config *config.Config
		expect string
	}{
		{"default", &config.Config{}, "WARNING: no such column NPHI\n"},
		{"debug shows kind", &config.Config{Debug: true}, "WARNING [column]: no such column NPHI\n"},
		{"quiet", &config.Config{Quiet: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, out, errOut := newTestLogger(tt.config)
			logger.Warn(w)

			assert.Equal(t, tt.expect, errOut.String())
			assert.Zero(t, out.Len(), "warnings must not reach stdout")
		})
	}
}

func TestWriteTextReport(t *testing.T) {
	logger, out, _ := newTestLogger(&config.Config{LogFormat: config.LogFormatText})

	require.NoError(t, logger.WriteReport(sampleResult(), nil))
	assert.Equal(t, "wrote 5 rows to 15!9-F-1_C.csv\n", out.String())
}

func TestWriteTextReportVerbose(t *testing.T) {
	logger, out, _ := newTestLogger(&config.Config{Debug: true, LogFormat: config.LogFormatText})
	logger.SetProcessingTime(1500 * time.Millisecond)

	require.NoError(t, logger.WriteReport(sampleResult(), nil))

	report := out.String()
	for _, want := range []string{"CURVE", "MEDIAN", "GR", "52.8", "Columns: [DEPT GR]", "Processing time: 1.5s"} {
		assert.Contains(t, report, want)
	}
}

func TestWriteTextReportFailedRun(t *testing.T) {
	logger, out, _ := newTestLogger(&config.Config{LogFormat: config.LogFormatText})

	require.NoError(t, logger.WriteReport(&pipeline.Result{}, errors.New("boom")))
	assert.Zero(t, out.Len(), "no text report for a failed run")
}

func TestWriteJSONReport(t *testing.T) {
	logger, out, _ := newTestLogger(&config.Config{LogFormat: config.LogFormatJSON})
	logger.SetProcessingTime(time.Second)

	res := sampleResult()
	res.Warnings = append(res.Warnings, pipeline.Warning{
		Kind:    brberrors.ErrTypeMissingIdentifier,
		Message: "unable to fetch wellname",
	})

	runErr := brberrors.NewOutputExistsError("15!9-F-1_C.csv")
	require.NoError(t, logger.WriteReport(res, runErr))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded), out.String())

	assert.Equal(t, "15!9-F-1_C", decoded["identifier"])
	assert.Equal(t, float64(5), decoded["rows"])
	assert.Equal(t, runErr.Error(), decoded["error"])

	warnings, ok := decoded["warnings"].([]any)
	require.True(t, ok)
	require.Len(t, warnings, 1)
	assert.Equal(t, "identifier", warnings[0].(map[string]any)["kind"])
}

func TestWriteReportQuiet(t *testing.T) {
	for _, format := range []config.LogFormat{config.LogFormatText, config.LogFormatJSON} {
		logger, out, errOut := newTestLogger(&config.Config{Quiet: true, LogFormat: format})

		require.NoError(t, logger.WriteReport(sampleResult(), nil))
		assert.Zero(t, out.Len()+errOut.Len(), "%s: quiet mode wrote output", format)
	}
}
